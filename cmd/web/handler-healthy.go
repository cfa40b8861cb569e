package main

import (
	"log/slog"
	"net/http"

	"github.com/alphafounders/site/internal/errors"
)

// healthy responds with a JSON object indicating whether the server can reach its database.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := app.db.ReadOnly.PingContext(r.Context()); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "health check failed",
			errors.SlogError(errors.Wrap(err, "ping database")))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
