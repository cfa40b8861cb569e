package main

import (
	"context"
	"net/http"
	"time"

	"github.com/alphafounders/site/internal/diagnostic"
	"github.com/alphafounders/site/internal/errors"
)

// diagnosticSessionKey holds the open wizard. It is removed when the visitor closes the modal.
const diagnosticSessionKey = "diagnostic"

// storedDiagnostic returns the wizard stored in the visitor's session, if any.
func (app *application) storedDiagnostic(r *http.Request) (diagnostic.Session, bool) {
	s, ok := app.sessionManager.Get(r.Context(), diagnosticSessionKey).(diagnostic.Session)
	return s, ok
}

// openDiagnostic returns the stored wizard or opens a new one pre-filled from the visitor's profile.
func (app *application) openDiagnostic(r *http.Request) diagnostic.Session {
	if s, ok := app.storedDiagnostic(r); ok {
		return s
	}
	visitor := app.visitor(r)
	return diagnostic.New(diagnostic.Contact{
		FirstName:   visitor.FirstName,
		LastName:    visitor.LastName,
		Email:       visitor.Email,
		CompanyName: visitor.Company,
		Sector:      visitor.Sector,
		Stage:       "",
	})
}

func (app *application) saveDiagnostic(r *http.Request, s diagnostic.Session) {
	app.sessionManager.Put(r.Context(), diagnosticSessionKey, s)
}

// completeSearch completes the search that started at startedAt and reports whether it did.
//
// The session in ctx was loaded when the phase stream opened, so the wizard is read again from the store. When the
// visitor closed or restarted it in the meantime nothing is written.
func (app *application) completeSearch(ctx context.Context, startedAt time.Time) (bool, error) {
	// Load is a no-op on a context that already carries session data.
	storeCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	storeCtx, err := app.sessionManager.Load(storeCtx, app.sessionManager.Token(ctx))
	if err != nil {
		return false, errors.Wrap(err, "reload session")
	}

	s, ok := app.sessionManager.Get(storeCtx, diagnosticSessionKey).(diagnostic.Session)
	if !ok || s.View != diagnostic.ViewSearching || !s.SearchStartedAt.Equal(startedAt) {
		return false, nil
	}
	app.sessionManager.Put(storeCtx, diagnosticSessionKey, s.Complete())
	if _, _, err = app.sessionManager.Commit(storeCtx); err != nil {
		return false, errors.Wrap(err, "commit session")
	}
	return true, nil
}
