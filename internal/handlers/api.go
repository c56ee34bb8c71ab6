// handlers/api.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/richard-senior/barchart/internal/chart"
)

// FigureHandler responds with the same figure the chart page embeds, for
// clients that draw it themselves.
func FigureHandler(dataFile string, spec chart.BarSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		graphJSON, err := BuildFigure(dataFile, spec)
		if err != nil {
			serverError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(graphJSON)
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		http.Error(w, "Failed to encode status", http.StatusInternalServerError)
	}
}
