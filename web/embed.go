// Package web holds the site templates and static assets compiled into the
// binary.
package web

import "embed"

//go:embed templates/*.html static
var FS embed.FS

const TemplatesDir = "templates"
