package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Page writes the HTML dashboard
func Page(w io.Writer, d Dashboard) error {
	if err := pages.ExecuteTemplate(w, "dashboard.html", d); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}
	return nil
}

// SignInPage writes the landing page shown without a session
func SignInPage(w io.Writer) error {
	if err := pages.ExecuteTemplate(w, "signin.html", nil); err != nil {
		return fmt.Errorf("render sign-in page: %w", err)
	}
	return nil
}
