// Package view owns the HTML templates and static assets, embedded so the
// binary serves them without a working directory dependency.
package view

import (
	"embed"
	"io/fs"
	"math"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Engine builds the fiber view engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("percent", Percent)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	return engine
}

// StaticFS exposes the embedded static assets for the filesystem middleware.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Percent computes a completion percentage rounded to the nearest whole
// percent; an empty module list counts as zero, not a division by zero.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
