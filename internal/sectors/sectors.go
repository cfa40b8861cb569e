// Package sectors enumerates the industry sectors shared by the diagnostic wizard and the calculators.
package sectors

// Sector identifies an industry vertical by its form option id.
type Sector string

const (
	Fintech       Sector = "fintech"
	Healthtech    Sector = "healthtech"
	SaaS          Sector = "saas"
	Climatetech   Sector = "climatetech"
	Consumer      Sector = "consumer"
	Manufacturing Sector = "manufacturing"
)

// Default is used whenever a sector is missing or unknown.
const Default = Manufacturing

// All lists the sectors in display order.
var All = []Sector{Fintech, Healthtech, SaaS, Climatetech, Consumer, Manufacturing}

var labels = map[Sector]string{
	Fintech:       "FinTech",
	Healthtech:    "HealthTech",
	SaaS:          "B2B SaaS",
	Climatetech:   "ClimateTech",
	Consumer:      "Consumer",
	Manufacturing: "Manufacturing & Hardware",
}

// Parse returns the sector matching s and whether it is known.
func Parse(s string) (Sector, bool) {
	sector := Sector(s)
	_, ok := labels[sector]
	return sector, ok
}

// OrDefault resolves s to a known sector, falling back to [Default].
func OrDefault(s string) Sector {
	if sector, ok := Parse(s); ok {
		return sector
	}
	return Default
}

// Label is the human readable name.
func (s Sector) Label() string {
	if label, ok := labels[s]; ok {
		return label
	}
	return string(s)
}
