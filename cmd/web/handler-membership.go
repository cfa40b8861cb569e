package main

import (
	"log/slog"
	"net/http"

	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/profile"
)

type membershipPlan struct {
	ID    string
	Name  string
	Price string
	Perks []string
}

var membershipPlans = []membershipPlan{
	{
		ID:    "alpha-monthly",
		Name:  "Alpha Monthly",
		Price: "$49 / month",
		Perks: []string{"Full advisor matches", "Shadow network introductions", "Complete investor tier list"},
	},
	{
		ID:    "alpha-annual",
		Name:  "Alpha Annual",
		Price: "$490 / year",
		Perks: []string{
			"Everything in Alpha Monthly",
			"Quarterly pitch review",
			"Priority intro calls",
		},
	},
}

const defaultMembershipPlan = "alpha-annual"

type membershipTemplateData struct {
	BaseTemplateData
	Plans []membershipPlan
	Plan  string
	Form  reportForm
}

func (app *application) membership(w http.ResponseWriter, r *http.Request) {
	visitor := app.visitor(r)
	app.render(w, r, http.StatusOK, "membership", membershipTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Plans:            membershipPlans,
		Plan:             defaultMembershipPlan,
		Form:             reportForm{FirstName: visitor.FirstName, Email: visitor.Email, Error: "", Sent: false},
	})
}

func (app *application) membershipSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	plan := r.PostForm.Get("plan")
	known := false
	for _, p := range membershipPlans {
		known = known || p.ID == plan
	}
	if !known {
		plan = defaultMembershipPlan
	}

	form := reportForm{
		FirstName: r.PostForm.Get("firstName"),
		Email:     r.PostForm.Get("email"),
		Error:     "",
		Sent:      false,
	}
	if form.Error = contactError(form.FirstName, form.Email); form.Error != "" {
		app.render(w, r, http.StatusUnprocessableEntity, "membership", membershipTemplateData{
			BaseTemplateData: app.newBaseTemplateData(r),
			Plans:            membershipPlans,
			Plan:             plan,
			Form:             form,
		})
		return
	}

	record := app.leads.Dispatch(ctx, leads.FormMembership, map[string]string{
		"firstName": form.FirstName,
		"email":     form.Email,
		"plan":      plan,
	})
	app.logger.LogAttrs(ctx, slog.LevelInfo, "membership requested",
		slog.String("plan", plan), slog.String("submissionId", record.SubmissionID()))
	profile.Remember(ctx, app.profiles, profile.Profile{ //nolint:exhaustruct // only what the form asked for
		Email:           form.Email,
		FirstName:       form.FirstName,
		IsPremiumMember: true,
	})

	seeOther(w, r, "/membership")
}
