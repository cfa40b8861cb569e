package diagnostic

import "github.com/alphafounders/site/internal/sectors"

// Field is the form field name of a wizard input. It doubles as the column name in the lead spreadsheet.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldEmail       Field = "email"
	FieldCompanyName Field = "companyName"
	FieldSector      Field = "sector"
	FieldStage       Field = "stage"

	FieldPMFRetention        Field = "pmfRetention"
	FieldPMFCustomerEvidence Field = "pmfCustomerEvidence"
	FieldPMFGrowthChannel    Field = "pmfGrowthChannel"

	FieldFinModel         Field = "finModel"
	FieldFinRunway        Field = "finRunway"
	FieldFinUnitEconomics Field = "finUnitEconomics"

	FieldTeamFounders   Field = "teamFounders"
	FieldTeamCommitment Field = "teamCommitment"
	FieldTeamGaps       Field = "teamGaps"

	FieldAdvisorCurrent      Field = "advisorCurrent"
	FieldAdvisorNeed         Field = "advisorNeed"
	FieldAdvisorCompensation Field = "advisorCompensation"
)

// Option is a selectable answer.
type Option struct {
	Value string
	Label string
}

// Question is one input on a step.
type Question struct {
	Field Field
	Label string
	// Kind is "text", "email" or "select" on the contact step and "choice" for the radio groups elsewhere.
	Kind    string
	Options []Option
}

// StepDefinition describes the questions of a step.
type StepDefinition struct {
	Step      Step
	Title     string
	Questions []Question
}

var StageOptions = []Option{
	{Value: "idea", Label: "Idea / pre-product"},
	{Value: "preSeed", Label: "Pre-seed"},
	{Value: "seed", Label: "Seed"},
	{Value: "seriesA", Label: "Series A"},
	{Value: "growth", Label: "Series B and beyond"},
}

func sectorOptions() []Option {
	options := make([]Option, 0, len(sectors.All))
	for _, s := range sectors.All {
		options = append(options, Option{Value: string(s), Label: s.Label()})
	}
	return options
}

var steps = []StepDefinition{
	{
		Step:  StepContact,
		Title: "About you",
		Questions: []Question{
			{Field: FieldFirstName, Label: "First name", Kind: "text", Options: nil},
			{Field: FieldLastName, Label: "Last name", Kind: "text", Options: nil},
			{Field: FieldEmail, Label: "Work email", Kind: "email", Options: nil},
			{Field: FieldCompanyName, Label: "Company", Kind: "text", Options: nil},
			{Field: FieldSector, Label: "Sector", Kind: "select", Options: sectorOptions()},
			{Field: FieldStage, Label: "Stage", Kind: "select", Options: StageOptions},
		},
	},
	{
		Step:  StepProductMarketFit,
		Title: "Product-market fit evidence",
		Questions: []Question{
			{Field: FieldPMFRetention, Label: "How many users are still active after 90 days?", Kind: "choice",
				Options: []Option{
					{Value: "under20", Label: "Under 20%"},
					{Value: "20to40", Label: "20-40%"},
					{Value: "over40", Label: "Over 40%"},
					{Value: "unknown", Label: "We don't track it yet"},
				}},
			{Field: FieldPMFCustomerEvidence, Label: "What is your strongest customer evidence?", Kind: "choice",
				Options: []Option{
					{Value: "interviews", Label: "Discovery interviews"},
					{Value: "pilots", Label: "Paid pilots or LOIs"},
					{Value: "revenue", Label: "Recurring revenue"},
				}},
			{Field: FieldPMFGrowthChannel, Label: "Where do new customers come from?", Kind: "choice",
				Options: []Option{
					{Value: "founderSales", Label: "Founder-led sales"},
					{Value: "referrals", Label: "Referrals and word of mouth"},
					{Value: "paid", Label: "Paid acquisition"},
					{Value: "none", Label: "No repeatable channel yet"},
				}},
		},
	},
	{
		Step:  StepFinancials,
		Title: "Financial modeling",
		Questions: []Question{
			{Field: FieldFinModel, Label: "Do you have a financial model?", Kind: "choice",
				Options: []Option{
					{Value: "none", Label: "Not yet"},
					{Value: "basic", Label: "A basic spreadsheet"},
					{Value: "driverBased", Label: "A driver-based 3-statement model"},
				}},
			{Field: FieldFinRunway, Label: "How much runway do you have?", Kind: "choice",
				Options: []Option{
					{Value: "under6", Label: "Under 6 months"},
					{Value: "6to12", Label: "6-12 months"},
					{Value: "12to18", Label: "12-18 months"},
					{Value: "over18", Label: "Over 18 months"},
				}},
			{Field: FieldFinUnitEconomics, Label: "How well do you know your unit economics?", Kind: "choice",
				Options: []Option{
					{Value: "unknown", Label: "We haven't calculated them"},
					{Value: "estimated", Label: "Estimated CAC and LTV"},
					{Value: "measured", Label: "Measured per cohort"},
				}},
		},
	},
	{
		Step:  StepTeam,
		Title: "Team composition",
		Questions: []Question{
			{Field: FieldTeamFounders, Label: "How many founders are there?", Kind: "choice",
				Options: []Option{
					{Value: "solo", Label: "Solo founder"},
					{Value: "two", Label: "Two founders"},
					{Value: "threePlus", Label: "Three or more"},
				}},
			{Field: FieldTeamCommitment, Label: "Are the founders full-time?", Kind: "choice",
				Options: []Option{
					{Value: "allFullTime", Label: "Everyone is full-time"},
					{Value: "mixed", Label: "Some are part-time"},
					{Value: "allPartTime", Label: "Everyone is part-time"},
				}},
			{Field: FieldTeamGaps, Label: "What is the biggest gap in the team?", Kind: "choice",
				Options: []Option{
					{Value: "technical", Label: "Technical"},
					{Value: "commercial", Label: "Sales and marketing"},
					{Value: "finance", Label: "Finance and fundraising"},
					{Value: "domain", Label: "Industry expertise"},
				}},
		},
	},
	{
		Step:  StepAdvisors,
		Title: "Advisor network",
		Questions: []Question{
			{Field: FieldAdvisorCurrent, Label: "How many advisors do you work with today?", Kind: "choice",
				Options: []Option{
					{Value: "none", Label: "None"},
					{Value: "informal", Label: "Informal mentors"},
					{Value: "formal", Label: "Formal advisors with agreements"},
				}},
			{Field: FieldAdvisorNeed, Label: "What should an advisor help with first?", Kind: "choice",
				Options: []Option{
					{Value: "fundraising", Label: "Fundraising"},
					{Value: "goToMarket", Label: "Go-to-market"},
					{Value: "hiring", Label: "Hiring"},
					{Value: "regulatory", Label: "Regulation and compliance"},
				}},
			{Field: FieldAdvisorCompensation, Label: "How do you plan to compensate advisors?", Kind: "choice",
				Options: []Option{
					{Value: "equity", Label: "Equity"},
					{Value: "cash", Label: "Cash retainer"},
					{Value: "mixed", Label: "Equity and cash"},
					{Value: "undecided", Label: "Not sure yet"},
				}},
		},
	},
}

// Steps returns the step definitions in order.
func Steps() []StepDefinition {
	return steps
}

// Definition returns the definition for step. Out of range steps clamp to the nearest valid step.
func Definition(step Step) StepDefinition {
	step = min(max(step, FirstStep), LastStep)
	return steps[step-FirstStep]
}

// Fields lists the fields collected on step.
func Fields(step Step) []Field {
	def := Definition(step)
	fields := make([]Field, 0, len(def.Questions))
	for _, q := range def.Questions {
		fields = append(fields, q.Field)
	}
	return fields
}

// AllFields lists every field in step order.
func AllFields() []Field {
	var fields []Field
	for _, def := range steps {
		fields = append(fields, Fields(def.Step)...)
	}
	return fields
}
