package views

import (
	"embed"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer renders the embedded pongo2 page templates.
type Renderer struct {
	set    *pongo2.TemplateSet
	Logger zerolog.Logger
}

func New(logger zerolog.Logger) (*Renderer, error) {
	loader, err := pongo2.NewHttpFileSystemLoader(http.FS(templatesFS), "templates")
	if err != nil {
		return nil, err
	}
	set := pongo2.NewSet("pages", loader)
	set.Debug = gin.IsDebugging()
	return &Renderer{set: set, Logger: logger}, nil
}

// HTML writes the named template. Template failures become a plain 500.
func (r *Renderer) HTML(c *gin.Context, code int, name string, data pongo2.Context) {
	tpl, err := r.set.FromFile(name)
	if err != nil {
		r.Logger.Error().Err(err).Str("template", name).Msg("template load failed")
		c.String(http.StatusInternalServerError, "Template error")
		return
	}
	out, err := tpl.ExecuteBytes(data)
	if err != nil {
		r.Logger.Error().Err(err).Str("template", name).Msg("template execution failed")
		c.String(http.StatusInternalServerError, "Template error")
		return
	}
	c.Data(code, "text/html; charset=utf-8", out)
}
