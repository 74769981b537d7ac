package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", app.AnalyzeHandler)

		r.Route("/scans", func(r chi.Router) {
			r.Post("/", app.UploadScanHandler)
			r.Get("/", app.ListScansHandler)
			r.Get("/{id}", app.GetScanHandler)
			r.Get("/{id}/photo", app.ScanPhotoHandler)
			r.Post("/{id}/adjust", app.AdjustScanHandler)
			r.Post("/{id}/corrections", app.SaveCorrectionHandler)
		})
	})

	return r
}
