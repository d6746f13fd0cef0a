// Package pompractice provides embedded assets for production builds.
package pompractice

import "embed"

// TemplateFS holds the HTML templates. In dev mode they are read from disk instead.
//
//go:embed all:frontend/templates
var TemplateFS embed.FS
