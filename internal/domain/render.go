package domain

import (
	"strings"
	"unicode/utf8"

	m "github.com/pulp/docstub/internal/model"
)

const (
	// DefaultDocExt is the extension of generated stub documents.
	DefaultDocExt = ".rst"

	titleUnderline = "="

	// breadcrumbPrefix encodes the fixed navigational hierarchy of the docs
	// site; the module name is appended as the final crumb.
	breadcrumbPrefix = "Location: :doc:`/index` → :doc:`/api` → "

	introspectDirective = ".. automodule:: "
)

// RenderStub produces the reference-documentation stub for a module. The
// document defers actual content rendering to the documentation build via
// the introspection directive; file name and content are pure functions of
// the module name.
func RenderStub(module m.Module, docExt string) m.Stub {
	name := string(module.Name)

	var b strings.Builder

	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(titleUnderline, utf8.RuneCountInString(name)))
	b.WriteString("\n\n")
	b.WriteString(breadcrumbPrefix)
	b.WriteString(name)
	b.WriteString("\n\n")
	b.WriteString(introspectDirective)
	b.WriteString(name)
	b.WriteString("\n")

	return m.Stub{
		Module:   module,
		FileName: name + docExt,
		Content:  b.String(),
	}
}
