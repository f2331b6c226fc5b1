// Package main is the entry point for the docstub CLI.
package main

import "github.com/pulp/docstub/cmd"

func main() {
	cmd.Execute()
}
