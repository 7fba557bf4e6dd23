// Package web holds the embedded page templates and static assets of the list
// surfaces.
package web

import (
	"embed"
	"io/fs"
)

// Templates embeds HTML templates.
//
//go:embed templates/**/*.html
var Templates embed.FS

//go:embed static/**/*
var static embed.FS

// StaticFiles returns the assets served under /static/.
func StaticFiles() (fs.FS, error) {
	return fs.Sub(static, "static")
}
