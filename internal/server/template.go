// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package server

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/CloudyKit/jet/v6"

	"codeberg.org/readeck/distiller/configs"
)

//go:embed templates/*.jet.html
var templateFS embed.FS

// views holds all the views (templates).
var views = newViews()

func newViews() *jet.Set {
	loader := jet.NewInMemLoader()

	names, err := fs.Glob(templateFS, "templates/*.jet.html")
	if err != nil {
		panic(err)
	}
	for _, name := range names {
		b, err := templateFS.ReadFile(name)
		if err != nil {
			panic(err)
		}
		loader.Set("/"+path.Base(name), string(b))
	}

	return jet.NewSet(loader)
}

// RenderTemplate yields an HTML response using the given template
// and variables.
func RenderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, vars jet.VarMap) {
	t, err := views.GetTemplate("/" + name)
	if err != nil {
		Log(r).Error("template error", slog.Any("err", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if vars == nil {
		vars = make(jet.VarMap)
	}
	vars.Set("version", configs.Version)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err = t.Execute(w, vars, nil); err != nil {
		panic(err)
	}
}
