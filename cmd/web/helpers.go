package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alphafounders/site/internal/contexthelpers"
	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/profile"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status),
		slog.String("method", method), slog.String("uri", uri), slog.Any("formdata", r.PostForm))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// seeOther finishes a form post with a redirect so that reloading the page does not resubmit.
func seeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// visitor reads the profile of the visitor making the request.
func (app *application) visitor(r *http.Request) profile.Profile {
	return profile.Load(r.Context(), app.profiles)
}

// isHTMX reports whether htmx made the request and expects a fragment back.
func isHTMX(r *http.Request) bool {
	return contexthelpers.IsHTMX(r.Context())
}

// contactError validates the first name and email asked by the lead forms outside the diagnostic.
func contactError(firstName, email string) string {
	switch {
	case strings.TrimSpace(firstName) == "":
		return "Please enter your first name."
	case strings.TrimSpace(email) == "":
		return "Please enter your email address."
	case !strings.Contains(email, "@"):
		return "Please enter a valid email address."
	}
	return ""
}
