// internal/handlers/chart.go
package handlers

import (
	"html/template"
	"net/http"

	"github.com/richard-senior/barchart/internal/chart"
	"github.com/richard-senior/barchart/internal/dataset"
	"github.com/richard-senior/barchart/internal/logger"
	"github.com/richard-senior/barchart/internal/templates"
)

// EmployeeBars plots each employee's age, one color per gender.
var EmployeeBars = chart.BarSpec{X: "Name", Y: "Age", Color: "Gender"}

// ChartHandler serves the bar chart page. The data file is read on every
// request so edits show up on refresh.
type ChartHandler struct {
	DataFile  string
	Template  string
	Spec      chart.BarSpec
	Templates templates.Renderer
}

type chartPage struct {
	GraphJSON template.JS
}

func (h *ChartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	graphJSON, err := BuildFigure(h.DataFile, h.Spec)
	if err != nil {
		serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.Render(w, h.Template, chartPage{GraphJSON: template.JS(graphJSON)}); err != nil {
		serverError(w, r, err)
		return
	}
}

// BuildFigure loads path and returns the encoded figure for spec.
func BuildFigure(path string, spec chart.BarSpec) ([]byte, error) {
	df, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	fig, err := chart.NewBar(df, spec)
	if err != nil {
		return nil, err
	}
	return fig.JSON()
}

// serverError logs the cause and answers with a bare 500; details stay in
// the log.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
