package main

import (
	"net/http"

	"github.com/alphafounders/site/internal/resources"
)

type homeTemplateData struct {
	BaseTemplateData
	FirstName string
	Guides    []resources.Guide
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		FirstName:        app.visitor(r).FirstName,
		Guides:           resources.Guides,
	}

	app.render(w, r, http.StatusOK, "home", data)
}
