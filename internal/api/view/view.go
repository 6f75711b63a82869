// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

// Page names understood by Renderer.
const (
	PageLogin    = "login"
	PageRegister = "register"
	PageHome     = "home"
	PageNewPost  = "newpost"
)

//go:embed templates/*.html
var embedded embed.FS

// Renderer implements echo.Renderer on top of html/template.
type Renderer struct {
	tpls *template.Template
}

// New parses the embedded templates, or the *.html files in dir when dir is
// not empty.
func New(dir string) (*Renderer, error) {
	var fsys fs.FS = embedded
	pattern := "templates/*.html"
	if dir != "" {
		fsys = os.DirFS(dir)
		pattern = "*.html"
	}

	tpls, err := template.New("").Funcs(template.FuncMap{
		"datetime": func(t time.Time) string { return t.Local().Format("2006-01-02 15:04") },
	}).ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpls: tpls}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tpls.ExecuteTemplate(w, name, data)
}

// FormPage backs the login, register and new-post views.
type FormPage struct {
	Error  string
	Values map[string]string
}

// PostItem is a single entry of the home page list.
type PostItem struct {
	ID        string
	Title     string
	Content   string
	Signature string
	CreatedAt time.Time
	// Owned marks posts the viewer may delete.
	Owned bool
}

type HomePage struct {
	Username string
	Posts    []PostItem
}
