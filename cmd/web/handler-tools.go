package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alphafounders/site/internal/calculator"
	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/profile"
	"github.com/alphafounders/site/internal/sectors"
)

type option struct {
	Value string
	Label string
}

// reportForm is the optional "email me this" form under every calculator and the gate forms elsewhere.
type reportForm struct {
	FirstName string
	Email     string
	Error     string
	Sent      bool
}

type toolTemplateData struct {
	BaseTemplateData
	Slug string
	// Inputs are the calculator inputs. The report form carries them along as hidden fields.
	Inputs    url.Values
	HasInputs bool
	Report    reportForm
}

// toolView is the page data of a calculator.
type toolView interface {
	// leadFields describes the inputs and the result for the lead spreadsheet.
	leadFields() map[string]string
}

type calculatorTool struct {
	slug     string
	page     string
	formType leads.FormType
	view     func(base toolTemplateData) toolView
}

var (
	equityTool = calculatorTool{
		slug: "equity", page: "equity", formType: leads.FormEquityCalculator, view: equityView,
	}
	valuationTool = calculatorTool{
		slug: "valuation", page: "valuation", formType: leads.FormValuationTool, view: valuationView,
	}
	checklistTool = calculatorTool{
		slug: "checklist", page: "checklist", formType: leads.FormAcceleratorChecklist, view: checklistView,
	}
	tierListTool = calculatorTool{
		slug: "tier-list", page: "tierlist", formType: leads.FormInvestorTierList, view: tierListView,
	}
)

func findTool(slug string) (calculatorTool, bool) {
	for _, tool := range []calculatorTool{equityTool, valuationTool, checklistTool, tierListTool} {
		if tool.slug == slug {
			return tool, true
		}
	}
	return calculatorTool{}, false //nolint:exhaustruct // not found
}

func (app *application) toolPage(tool calculatorTool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := app.visitor(r)
		inputs := r.URL.Query()
		base := toolTemplateData{
			BaseTemplateData: app.newBaseTemplateData(r),
			Slug:             tool.slug,
			Inputs:           inputs,
			HasInputs:        len(inputs) > 0,
			Report:           reportForm{FirstName: visitor.FirstName, Email: visitor.Email, Error: "", Sent: false},
		}
		app.render(w, r, http.StatusOK, tool.page, tool.view(base))
	}
}

// toolReport sends the calculator result to the visitor by way of a lead.
func (app *application) toolReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tool, ok := findTool(r.PathValue("tool"))
	if !ok {
		app.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	inputs := url.Values{}
	for key, values := range r.PostForm {
		switch key {
		case "csrf_token", "firstName", "email":
			continue
		}
		inputs[key] = values
	}
	base := toolTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Slug:             tool.slug,
		Inputs:           inputs,
		HasInputs:        true,
		Report: reportForm{
			FirstName: r.PostForm.Get("firstName"),
			Email:     r.PostForm.Get("email"),
			Error:     "",
			Sent:      false,
		},
	}

	if email := strings.TrimSpace(base.Report.Email); email == "" || !strings.Contains(email, "@") {
		base.Report.Error = "Please enter a valid email address."
		app.render(w, r, http.StatusUnprocessableEntity, tool.page, tool.view(base))
		return
	}

	base.Report.Sent = true
	view := tool.view(base)
	fields := view.leadFields()
	fields["firstName"] = base.Report.FirstName
	fields["email"] = base.Report.Email
	record := app.leads.Dispatch(ctx, tool.formType, fields)
	app.logger.LogAttrs(ctx, slog.LevelInfo, "calculator report requested",
		slog.String("tool", tool.slug), slog.String("submissionId", record.SubmissionID()))

	remembered := profile.Profile{ //nolint:exhaustruct // only what the form asked for
		Email:     base.Report.Email,
		FirstName: base.Report.FirstName,
	}
	if scored, isScored := view.(interface{ iriScore() string }); isScored {
		remembered.IRIScore = scored.iriScore()
	}
	profile.Remember(ctx, app.profiles, remembered)

	app.render(w, r, http.StatusOK, tool.page, view)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Equity

var (
	equityStageOptions = []option{
		{Value: string(calculator.StageIdea), Label: "Idea"},
		{Value: string(calculator.StagePreSeed), Label: "Pre-seed"},
		{Value: string(calculator.StageSeed), Label: "Seed"},
		{Value: string(calculator.StageSeriesA), Label: "Series A"},
		{Value: string(calculator.StageGrowth), Label: "Growth"},
	}
	equityRoleOptions = []option{
		{Value: string(calculator.RoleBoard), Label: "Board member"},
		{Value: string(calculator.RoleStrategic), Label: "Strategic advisor"},
		{Value: string(calculator.RoleOperational), Label: "Operational advisor"},
		{Value: string(calculator.RoleMentor), Label: "Mentor"},
	}
	equityExperienceOptions = []option{
		{Value: string(calculator.ExperienceSerialFounder), Label: "Serial founder"},
		{Value: string(calculator.ExperienceIndustryExpert), Label: "Industry expert"},
		{Value: string(calculator.ExperienceOperator), Label: "Operator"},
	}
)

type equityTemplateData struct {
	toolTemplateData
	Stages      []option
	Roles       []option
	Experiences []option
	Input       calculator.EquityInput
	Result      calculator.EquityResult
}

func equityView(base toolTemplateData) toolView {
	// Unparsable hours count as zero like any other unknown input.
	hours, _ := strconv.ParseFloat(strings.TrimSpace(base.Inputs.Get("hours")), 64)
	in := calculator.EquityInput{
		Stage:         calculator.Stage(base.Inputs.Get("stage")),
		Role:          calculator.Role(base.Inputs.Get("role")),
		Experience:    calculator.Experience(base.Inputs.Get("experience")),
		HoursPerMonth: hours,
	}
	return equityTemplateData{
		toolTemplateData: base,
		Stages:           equityStageOptions,
		Roles:            equityRoleOptions,
		Experiences:      equityExperienceOptions,
		Input:            in,
		Result:           calculator.Equity(in),
	}
}

func (d equityTemplateData) leadFields() map[string]string {
	return map[string]string{
		"stage":             string(d.Input.Stage),
		"role":              string(d.Input.Role),
		"experience":        string(d.Input.Experience),
		"hoursPerMonth":     formatFloat(d.Input.HoursPerMonth),
		"equityMin":         formatFloat(d.Result.Min),
		"equityMax":         formatFloat(d.Result.Max),
		"equityRecommended": formatFloat(d.Result.Recommended),
	}
}

// Valuation

var valuationRoundOptions = []option{
	{Value: string(calculator.RoundPreSeed), Label: "Pre-seed"},
	{Value: string(calculator.RoundSeed), Label: "Seed"},
	{Value: string(calculator.RoundSeriesA), Label: "Series A"},
	{Value: string(calculator.RoundSeriesB), Label: "Series B"},
}

func sectorOptions() []option {
	options := make([]option, 0, len(sectors.All))
	for _, s := range sectors.All {
		options = append(options, option{Value: string(s), Label: s.Label()})
	}
	return options
}

type valuationTemplateData struct {
	toolTemplateData
	Rounds  []option
	Sectors []option
	Input   calculator.ValuationInput
	Result  calculator.ValuationResult
}

func valuationView(base toolTemplateData) toolView {
	in := calculator.ValuationInput{
		Round:          calculator.Round(base.Inputs.Get("round")),
		Sector:         sectors.Sector(base.Inputs.Get("sector")),
		MonthlyRevenue: base.Inputs.Get("revenue"),
	}
	return valuationTemplateData{
		toolTemplateData: base,
		Rounds:           valuationRoundOptions,
		Sectors:          sectorOptions(),
		Input:            in,
		Result:           calculator.Valuation(in),
	}
}

func (d valuationTemplateData) leadFields() map[string]string {
	return map[string]string{
		"round":          string(d.Result.Round),
		"sector":         string(d.Result.Sector),
		"monthlyRevenue": d.Input.MonthlyRevenue,
		"valuationLow":   formatFloat(d.Result.Low),
		"valuationMid":   formatFloat(d.Result.Mid),
		"valuationHigh":  formatFloat(d.Result.High),
		"multiple":       d.Result.Multiple,
		"basis":          string(d.Result.Basis),
	}
}

// Accelerator checklist

type checklistEntry struct {
	calculator.ChecklistItem
	Checked bool
}

type checklistGroup struct {
	Score calculator.CategoryScore
	Items []checklistEntry
}

type checklistTemplateData struct {
	toolTemplateData
	Groups []checklistGroup
	Result calculator.ChecklistResult
}

func checklistView(base toolTemplateData) toolView {
	result := calculator.Checklist(base.Inputs["item"])
	checked := make(map[string]bool, len(result.Checked))
	for _, id := range result.Checked {
		checked[id] = true
	}

	groups := make([]checklistGroup, 0, len(result.Categories))
	for _, score := range result.Categories {
		group := checklistGroup{Score: score, Items: nil}
		for _, item := range calculator.ChecklistItems {
			if item.Category == score.Category.ID {
				group.Items = append(group.Items, checklistEntry{ChecklistItem: item, Checked: checked[item.ID]})
			}
		}
		groups = append(groups, group)
	}

	return checklistTemplateData{
		toolTemplateData: base,
		Groups:           groups,
		Result:           result,
	}
}

func (d checklistTemplateData) leadFields() map[string]string {
	fields := map[string]string{
		"total":        strconv.Itoa(d.Result.Total),
		"readiness":    d.Result.Readiness,
		"checkedItems": strings.Join(d.Result.Checked, ","),
	}
	for _, score := range d.Result.Categories {
		fields[string(score.Category.ID)+"Percentage"] = strconv.Itoa(score.Percentage)
	}
	return fields
}

// iriScore is the readiness total remembered in the visitor's profile.
func (d checklistTemplateData) iriScore() string {
	return strconv.Itoa(d.Result.Total)
}

// Investor tier list

type tierListTemplateData struct {
	toolTemplateData
	Rounds  []option
	Sectors []option
	Sector  sectors.Sector
	Round   calculator.Round
	Groups  []calculator.TierGroup
}

func tierListView(base toolTemplateData) toolView {
	// Unknown sectors and rounds rank on nothing rather than on a default.
	sector, known := sectors.Parse(base.Inputs.Get("sector"))
	if !known {
		sector = ""
	}
	round := calculator.Round(base.Inputs.Get("round"))
	return tierListTemplateData{
		toolTemplateData: base,
		Rounds:           valuationRoundOptions,
		Sectors:          sectorOptions(),
		Sector:           sector,
		Round:            round,
		Groups:           calculator.Rank(sector, round),
	}
}

func (d tierListTemplateData) leadFields() map[string]string {
	fields := map[string]string{
		"sector": string(d.Sector),
		"round":  string(d.Round),
	}
	for _, group := range d.Groups {
		matching := 0
		for _, investor := range group.Investors {
			if investor.Fit > 0 {
				matching++
			}
		}
		fields["tier"+string(group.Tier)+"Matches"] = strconv.Itoa(matching)
	}
	return fields
}
