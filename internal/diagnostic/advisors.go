package diagnostic

import "github.com/alphafounders/site/internal/sectors"

// Advisor is a profile in the advisor network.
type Advisor struct {
	ID      string
	Title   string
	Summary string
}

// Match is the result shown after the search: one advisor anyone can see and two reserved for members.
type Match struct {
	Sector  sectors.Sector
	Primary Advisor
	Locked  []Advisor
}

// ShadowContact is an operator from the members-only shadow network.
type ShadowContact struct {
	Name string
	Role string
	Firm string
}

var matches = map[sectors.Sector]Match{
	sectors.Fintech: {
		Sector: sectors.Fintech,
		Primary: Advisor{ID: "fintech-regulatory", Title: "FinTech Regulatory Specialist",
			Summary: "Former compliance lead who has taken three payment licences from application to approval."},
		Locked: []Advisor{
			{ID: "fintech-payments", Title: "Former Payments Network Executive",
				Summary: "Ran issuer partnerships at a global card network for a decade."},
			{ID: "fintech-baas", Title: "Banking-as-a-Service Operator",
				Summary: "Built the sponsor bank programme behind two neobanks."},
		},
	},
	sectors.Healthtech: {
		Sector: sectors.Healthtech,
		Primary: Advisor{ID: "healthtech-reimbursement", Title: "Digital Health Reimbursement Advisor",
			Summary: "Secured billing codes and payer contracts for remote monitoring products."},
		Locked: []Advisor{
			{ID: "healthtech-fda", Title: "Former FDA Device Reviewer",
				Summary: "Reviewed software as a medical device submissions for eight years."},
			{ID: "healthtech-cio", Title: "Hospital Systems CIO",
				Summary: "Buys and integrates clinical software across a twelve hospital network."},
		},
	},
	sectors.SaaS: {
		Sector: sectors.SaaS,
		Primary: Advisor{ID: "saas-gtm", Title: "B2B SaaS Go-To-Market Operator",
			Summary: "Took two startups from first sales hire to $20M ARR."},
		Locked: []Advisor{
			{ID: "saas-enterprise", Title: "Enterprise Sales Leader",
				Summary: "Closed seven figure contracts with Fortune 500 procurement teams."},
			{ID: "saas-plg", Title: "PLG Growth Architect",
				Summary: "Designed the self-serve funnel of a developer tools unicorn."},
		},
	},
	sectors.Climatetech: {
		Sector: sectors.Climatetech,
		Primary: Advisor{ID: "climate-finance", Title: "Climate Project Finance Advisor",
			Summary: "Structured debt for first-of-a-kind energy projects."},
		Locked: []Advisor{
			{ID: "climate-utility", Title: "Energy Utility Partnerships Lead",
				Summary: "Ran pilot programmes with regional utilities."},
			{ID: "climate-carbon", Title: "Carbon Markets Specialist",
				Summary: "Built verification pipelines for voluntary carbon credits."},
		},
	},
	sectors.Consumer: {
		Sector: sectors.Consumer,
		Primary: Advisor{ID: "consumer-dtc", Title: "DTC Brand Scaling Advisor",
			Summary: "Scaled a direct-to-consumer brand from Shopify store to national retail."},
		Locked: []Advisor{
			{ID: "consumer-retail", Title: "Retail Distribution Executive",
				Summary: "Negotiated shelf space with the largest grocery chains."},
			{ID: "consumer-subscription", Title: "Consumer Subscription Strategist",
				Summary: "Cut churn in half for a meal kit subscription."},
		},
	},
	sectors.Manufacturing: {
		Sector: sectors.Manufacturing,
		Primary: Advisor{ID: "manufacturing-supply", Title: "Industrial Supply Chain Advisor",
			Summary: "Moved hardware production from prototype shop to contract manufacturers."},
		Locked: []Advisor{
			{ID: "manufacturing-operator", Title: "Advanced Manufacturing Operator",
				Summary: "Ran a robotics assembly plant through two expansions."},
			{ID: "manufacturing-economics", Title: "Hardware Unit Economics Specialist",
				Summary: "Brought bill of materials costs down by forty percent at scale."},
		},
	},
}

// ShadowNetwork is shown to every visitor, with names masked for non-members.
var ShadowNetwork = []ShadowContact{
	{Name: "Priya Raman", Role: "Partner", Firm: "Tier 1 growth fund"},
	{Name: "Marcus Hale", Role: "Former CFO", Firm: "Public SaaS company"},
	{Name: "Elena Sorensen", Role: "Head of Platform", Firm: "Top decile seed fund"},
	{Name: "David Okafor", Role: "Angel investor", Firm: "Three exits in fintech"},
	{Name: "Hannah Cho", Role: "Chief Medical Officer", Firm: "Digital health scale-up"},
}

// MatchFor returns the advisor match for the sector option id. Unknown sectors get the manufacturing match.
func MatchFor(sector string) Match {
	return matches[sectors.OrDefault(sector)]
}

// AdvisorByID finds an advisor in any sector.
func AdvisorByID(id string) (Advisor, bool) {
	for _, s := range sectors.All {
		m := matches[s]
		if m.Primary.ID == id {
			return m.Primary, true
		}
		for _, a := range m.Locked {
			if a.ID == id {
				return a, true
			}
		}
	}
	return Advisor{}, false
}
