package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/profile"
	"github.com/alphafounders/site/internal/resources"
)

type resourceTemplateData struct {
	BaseTemplateData
	Guide resources.Guide
	Form  reportForm
	// Unlocked guides show the download link instead of the gate form.
	Unlocked bool
}

func (app *application) resource(w http.ResponseWriter, r *http.Request) {
	guide, ok := resources.Find(r.PathValue("slug"))
	if !ok {
		app.notFound(w, r)
		return
	}
	visitor := app.visitor(r)
	app.render(w, r, http.StatusOK, "resource", resourceTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Guide:            guide,
		Form:             reportForm{FirstName: visitor.FirstName, Email: visitor.Email, Error: "", Sent: false},
		Unlocked:         visitor.HasEmail(),
	})
}

func (app *application) resourceSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guide, ok := resources.Find(r.PathValue("slug"))
	if !ok {
		app.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	form := reportForm{
		FirstName: r.PostForm.Get("firstName"),
		Email:     r.PostForm.Get("email"),
		Error:     "",
		Sent:      false,
	}
	if form.Error = contactError(form.FirstName, form.Email); form.Error != "" {
		app.render(w, r, http.StatusUnprocessableEntity, "resource", resourceTemplateData{
			BaseTemplateData: app.newBaseTemplateData(r),
			Guide:            guide,
			Form:             form,
			Unlocked:         false,
		})
		return
	}

	record := app.leads.Dispatch(ctx, leads.FormPDFDownload, map[string]string{
		"firstName":  form.FirstName,
		"email":      form.Email,
		"guide":      guide.Slug,
		"guideTitle": guide.Title,
	})
	app.logger.LogAttrs(ctx, slog.LevelInfo, "guide unlocked",
		slog.String("guide", guide.Slug), slog.String("submissionId", record.SubmissionID()))
	profile.Remember(ctx, app.profiles, profile.Profile{ //nolint:exhaustruct // only what the form asked for
		Email:     form.Email,
		FirstName: form.FirstName,
	})

	form.Sent = true
	app.render(w, r, http.StatusOK, "resource", resourceTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Guide:            guide,
		Form:             form,
		Unlocked:         true,
	})
}

// download serves a guide to visitors who passed its gate. Everyone else is sent to the gate.
func (app *application) download(w http.ResponseWriter, r *http.Request) {
	guide, ok := resources.Find(r.PathValue("slug"))
	if !ok {
		app.notFound(w, r)
		return
	}
	if !app.visitor(r).HasEmail() {
		http.Redirect(w, r, "/resources/"+guide.Slug, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", guide.File))
	http.ServeFileFS(w, r, app.downloads, guide.File)
}
