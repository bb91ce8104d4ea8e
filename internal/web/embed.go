package web

import (
	"embed"
	"io/fs"
	"net/http"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// templatesFS returns the embedded page templates rooted at the templates directory.
func templatesFS() http.FileSystem {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// the directory is part of the binary
		panic(err)
	}

	return http.FS(sub)
}
