package calculator

import (
	"cmp"
	"slices"

	"github.com/alphafounders/site/internal/sectors"
)

// Tier ranks investors by signal and access difficulty.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Tiers in display order.
var Tiers = []Tier{TierS, TierA, TierB, TierC}

// Premium reports whether investor names in this tier are reserved for members.
func (t Tier) Premium() bool {
	return t == TierS || t == TierA
}

// Investor is an entry in the tier list catalogue.
type Investor struct {
	Name      string
	Tier      Tier
	Sectors   []sectors.Sector
	Rounds    []Round
	CheckSize string
}

const (
	sectorFit = 2
	roundFit  = 1
)

var Investors = []Investor{
	{Name: "Northstar Ventures", Tier: TierS, Sectors: []sectors.Sector{sectors.Fintech, sectors.SaaS},
		Rounds: []Round{RoundSeriesA, RoundSeriesB}, CheckSize: "$10M-$40M"},
	{Name: "Helix Health Partners", Tier: TierS, Sectors: []sectors.Sector{sectors.Healthtech},
		Rounds: []Round{RoundSeed, RoundSeriesA}, CheckSize: "$3M-$15M"},
	{Name: "Greenline Capital", Tier: TierS, Sectors: []sectors.Sector{sectors.Climatetech, sectors.Manufacturing},
		Rounds: []Round{RoundSeriesA, RoundSeriesB}, CheckSize: "$8M-$30M"},
	{Name: "Ledger Street Fund", Tier: TierA, Sectors: []sectors.Sector{sectors.Fintech},
		Rounds: []Round{RoundSeed, RoundSeriesA}, CheckSize: "$2M-$8M"},
	{Name: "Cloudbridge Partners", Tier: TierA, Sectors: []sectors.Sector{sectors.SaaS},
		Rounds: []Round{RoundPreSeed, RoundSeed}, CheckSize: "$1M-$4M"},
	{Name: "Brandhouse Growth", Tier: TierA, Sectors: []sectors.Sector{sectors.Consumer},
		Rounds: []Round{RoundSeed, RoundSeriesA}, CheckSize: "$2M-$10M"},
	{Name: "Foundry Works Capital", Tier: TierB, Sectors: []sectors.Sector{sectors.Manufacturing},
		Rounds: []Round{RoundPreSeed, RoundSeed}, CheckSize: "$500K-$2M"},
	{Name: "Carebridge Angels", Tier: TierB, Sectors: []sectors.Sector{sectors.Healthtech, sectors.Consumer},
		Rounds: []Round{RoundPreSeed}, CheckSize: "$100K-$750K"},
	{Name: "Tidewater Climate Fund", Tier: TierB, Sectors: []sectors.Sector{sectors.Climatetech},
		Rounds: []Round{RoundPreSeed, RoundSeed}, CheckSize: "$500K-$3M"},
	{Name: "Launchpad Syndicate", Tier: TierC, Sectors: []sectors.Sector{sectors.SaaS, sectors.Consumer, sectors.Fintech},
		Rounds: []Round{RoundPreSeed}, CheckSize: "$25K-$250K"},
	{Name: "Regional Angels Network", Tier: TierC, Sectors: sectors.All,
		Rounds: []Round{RoundPreSeed, RoundSeed}, CheckSize: "$50K-$500K"},
	{Name: "Maker Micro Fund", Tier: TierC, Sectors: []sectors.Sector{sectors.Manufacturing, sectors.Climatetech},
		Rounds: []Round{RoundPreSeed}, CheckSize: "$50K-$200K"},
}

// RankedInvestor is an investor with its fit for the founder's sector and round.
type RankedInvestor struct {
	Investor
	Fit int
}

// TierGroup is one tier of the ranked list.
type TierGroup struct {
	Tier      Tier
	Premium   bool
	Investors []RankedInvestor
}

// Rank groups the catalogue by tier and orders each tier by fit, breaking ties by name.
//
// A sector match is worth more than a round match. An empty sector or round simply contributes no fit.
func Rank(sector sectors.Sector, round Round) []TierGroup {
	groups := make([]TierGroup, 0, len(Tiers))
	for _, tier := range Tiers {
		group := TierGroup{Tier: tier, Premium: tier.Premium(), Investors: nil}
		for _, investor := range Investors {
			if investor.Tier != tier {
				continue
			}
			fit := 0
			if slices.Contains(investor.Sectors, sector) {
				fit += sectorFit
			}
			if slices.Contains(investor.Rounds, round) {
				fit += roundFit
			}
			group.Investors = append(group.Investors, RankedInvestor{Investor: investor, Fit: fit})
		}
		slices.SortStableFunc(group.Investors, func(a, b RankedInvestor) int {
			if c := cmp.Compare(b.Fit, a.Fit); c != 0 {
				return c
			}
			return cmp.Compare(a.Name, b.Name)
		})
		groups = append(groups, group)
	}
	return groups
}
