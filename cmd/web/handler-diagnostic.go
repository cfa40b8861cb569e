package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alphafounders/site/internal/diagnostic"
	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/profile"
)

type MatchTemplateData struct {
	Match      diagnostic.Match
	Shadow     []diagnostic.ShadowContact
	BookingURL string
}

type diagnosticTemplateData struct {
	BaseTemplateData
	MatchTemplateData

	// Open is false once the visitor closed the modal.
	Open    bool
	Session diagnostic.Session
	Step    diagnostic.StepDefinition
	Steps   []diagnostic.StepDefinition
	Values  map[diagnostic.Field]string
	Phases  diagnostic.Phases
}

type resultsTemplateData struct {
	BaseTemplateData
	MatchTemplateData

	FirstName string
}

func (app *application) newMatchTemplateData(contact diagnostic.Contact) MatchTemplateData {
	data := MatchTemplateData{
		Match:      diagnostic.MatchFor(contact.Sector),
		Shadow:     diagnostic.ShadowNetwork,
		BookingURL: app.links.BookingURL,
	}
	if contact.Email != "" {
		data.BookingURL = app.links.BookingURLFor(contact)
	}
	return data
}

func (app *application) newDiagnosticTemplateData(r *http.Request, s diagnostic.Session, open bool) diagnosticTemplateData {
	values := make(map[diagnostic.Field]string, len(diagnostic.AllFields()))
	for _, field := range diagnostic.AllFields() {
		values[field] = s.Value(field)
	}
	return diagnosticTemplateData{
		BaseTemplateData:  app.newBaseTemplateData(r),
		MatchTemplateData: app.newMatchTemplateData(s.Contact),
		Open:              open,
		Session:           s,
		Step:              diagnostic.Definition(s.Step),
		Steps:             diagnostic.Steps(),
		Values:            values,
		Phases:            app.phases,
	}
}

// respondWizard answers htmx with the modal fragment and everyone else with a redirect to the page showing it.
func (app *application) respondWizard(w http.ResponseWriter, r *http.Request, s diagnostic.Session) {
	if isHTMX(r) {
		app.renderPartial(w, r, http.StatusOK, "diagnostic", "modal", app.newDiagnosticTemplateData(r, s, true))
		return
	}
	seeOther(w, r, "/diagnostic")
}

func (app *application) diagnosticPage(w http.ResponseWriter, r *http.Request) {
	s := app.openDiagnostic(r)
	app.saveDiagnostic(r, s)
	data := app.newDiagnosticTemplateData(r, s, true)
	if isHTMX(r) {
		app.renderPartial(w, r, http.StatusOK, "diagnostic", "modal", data)
		return
	}
	app.render(w, r, http.StatusOK, "diagnostic", data)
}

func (app *application) diagnosticNext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	s := app.openDiagnostic(r)
	for _, field := range diagnostic.Fields(s.Step) {
		if r.PostForm.Has(string(field)) {
			s = s.WithValue(field, r.PostForm.Get(string(field)))
		}
	}

	next, err := s.Next(app.now())
	var validationErr *diagnostic.ValidationError
	switch {
	case errors.As(err, &validationErr):
		app.logger.LogAttrs(ctx, slog.LevelDebug, "diagnostic step incomplete",
			slog.Int("step", int(s.Step)), slog.String("field", string(validationErr.Field)))
	case errors.Is(err, diagnostic.ErrNotEditable):
		// A repeated submit of the last step while the search runs changes nothing.
	case err != nil:
		app.serverError(w, r, errors.Wrap(err, "advance diagnostic", slog.Int("step", int(s.Step))))
		return
	case next.View == diagnostic.ViewSearching:
		app.submitDiagnostic(r, next)
	}

	app.saveDiagnostic(r, next)
	app.respondWizard(w, r, next)
}

// submitDiagnostic hands the finished questionnaire to the lead dispatcher and remembers the founder for later forms.
func (app *application) submitDiagnostic(r *http.Request, s diagnostic.Session) {
	ctx := r.Context()
	record := app.leads.Dispatch(ctx, leads.FormDiagnostic, s.LeadFields(app.links))
	app.logger.LogAttrs(ctx, slog.LevelInfo, "diagnostic submitted",
		slog.String("submissionId", record.SubmissionID()), slog.String("sector", s.Contact.Sector))

	profile.Remember(ctx, app.profiles, profile.Profile{
		Email:           s.Contact.Email,
		FirstName:       s.Contact.FirstName,
		LastName:        s.Contact.LastName,
		Company:         s.Contact.CompanyName,
		Sector:          s.Contact.Sector,
		IRIScore:        "",
		IsPremiumMember: false,
	})
}

func (app *application) diagnosticBack(w http.ResponseWriter, r *http.Request) {
	s := app.openDiagnostic(r).Back()
	app.saveDiagnostic(r, s)
	app.respondWizard(w, r, s)
}

func (app *application) diagnosticClose(w http.ResponseWriter, r *http.Request) {
	if s, ok := app.storedDiagnostic(r); ok {
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "diagnostic closed",
			slog.Int("step", int(s.Step)), slog.String("view", string(s.View)))
	}
	// Dropping the stored wizard resets it. The next open starts over on the first step, pre-filled from the profile.
	app.sessionManager.Remove(r.Context(), diagnosticSessionKey)

	if isHTMX(r) {
		app.renderPartial(w, r, http.StatusOK, "diagnostic", "modal",
			app.newDiagnosticTemplateData(r, diagnostic.Session{}.Close(), false))
		return
	}
	seeOther(w, r, "/")
}

// diagnosticPhases streams the searching phases as Server-Sent Events and completes the search when they finish.
//
// A reconnecting client resumes where the search is by now. When the client goes away the pending timer stops and
// the search stays incomplete until the results page settles it. A search closed while it played is left alone and
// the stream ends without a done event.
func (app *application) diagnosticPhases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := app.storedDiagnostic(r)
	if !ok || s.View == diagnostic.ViewForm {
		app.clientError(w, r, http.StatusConflict)
		return
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if s.View == diagnostic.ViewSearching {
		offset, rest := app.phases.From(app.now().Sub(s.SearchStartedAt))
		err := rest.Play(ctx, func(i int, phase diagnostic.Phase) error {
			return writeEvent(rc, w, "phase", fmt.Sprint(offset+i), phase.Label)
		})
		if err != nil {
			if ctx.Err() != nil {
				app.logger.LogAttrs(ctx, slog.LevelDebug, "phase stream closed by client")
				return
			}
			app.logger.LogAttrs(ctx, slog.LevelError, "stream phases", errors.SlogError(err))
			return
		}

		completed, err := app.completeSearch(ctx, s.SearchStartedAt)
		if err != nil {
			app.logger.LogAttrs(ctx, slog.LevelError, "complete diagnostic search", errors.SlogError(err))
			return
		}
		if !completed {
			app.logger.LogAttrs(ctx, slog.LevelDebug, "diagnostic closed during search")
			return
		}
	}

	if err := writeEvent(rc, w, "done", "", "/diagnostic"); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "write done event", errors.SlogError(err))
	}
}

func writeEvent(rc *http.ResponseController, w http.ResponseWriter, event, id, data string) error {
	if id != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", id); err != nil {
			return errors.Wrap(err, "write event id")
		}
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return errors.Wrap(err, "write event", slog.String("event", event))
	}
	if err := rc.Flush(); err != nil {
		return errors.Wrap(err, "flush event", slog.String("event", event))
	}
	return nil
}

// diagnosticResults shows an advisor match. With a sector parameter it is the shareable match link sent along with
// the lead, otherwise it is the end of the visitor's own diagnostic.
func (app *application) diagnosticResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Has("sector") {
		app.render(w, r, http.StatusOK, "results", resultsTemplateData{
			BaseTemplateData:  app.newBaseTemplateData(r),
			MatchTemplateData: app.newMatchTemplateData(diagnostic.Contact{Sector: query.Get("sector")}),
			FirstName:         "",
		})
		return
	}

	s, ok := app.storedDiagnostic(r)
	if !ok || s.View == diagnostic.ViewForm {
		seeOther(w, r, "/diagnostic")
		return
	}

	// Clients that never opened the phase stream complete here once the phases had their time.
	s = s.Settle(app.now(), app.phases)
	app.saveDiagnostic(r, s)
	if s.View == diagnostic.ViewSearching {
		app.render(w, r, http.StatusOK, "diagnostic", app.newDiagnosticTemplateData(r, s, true))
		return
	}

	app.render(w, r, http.StatusOK, "results", resultsTemplateData{
		BaseTemplateData:  app.newBaseTemplateData(r),
		MatchTemplateData: app.newMatchTemplateData(s.Contact),
		FirstName:         s.Contact.FirstName,
	})
}
