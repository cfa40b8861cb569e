package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/alphafounders/site/internal/sectors"
)

// Round is the funding round for the valuation tool.
type Round string

const (
	RoundPreSeed Round = "preSeed"
	RoundSeed    Round = "seed"
	RoundSeriesA Round = "seriesA"
	RoundSeriesB Round = "seriesB"
)

// DefaultRound is used for unknown rounds.
const DefaultRound = RoundSeed

var ValuationRounds = []Round{RoundPreSeed, RoundSeed, RoundSeriesA, RoundSeriesB}

// Basis tells how a valuation was derived.
type Basis string

const (
	BasisBenchmark Basis = "benchmark"
	BasisRevenue   Basis = "revenue"
)

// ValuationInput holds the valuation tool inputs as they arrive from the form.
type ValuationInput struct {
	Round  Round
	Sector sectors.Sector
	// MonthlyRevenue is free text; anything unparsable counts as zero.
	MonthlyRevenue string
}

// ValuationResult is a pre-money valuation range in millions of US dollars.
type ValuationResult struct {
	Round    Round
	Sector   sectors.Sector
	Low      float64
	Mid      float64
	High     float64
	Multiple string
	Basis    Basis
}

type benchmark struct {
	low, mid, high float64
	multiple       string
}

type revenueMultiple struct {
	low, mid, high float64
}

// benchmarks are pre-money valuations in $M for companies without meaningful revenue.
var benchmarks = map[Round]map[sectors.Sector]benchmark{
	RoundPreSeed: {
		sectors.Fintech:       {low: 2.4, mid: 4.8, high: 7.2, multiple: "5-8x ARR"},
		sectors.Healthtech:    {low: 2.2, mid: 4.4, high: 6.6, multiple: "4-7x ARR"},
		sectors.SaaS:          {low: 2.6, mid: 5.2, high: 7.8, multiple: "8-12x ARR"},
		sectors.Climatetech:   {low: 2, mid: 4, high: 6, multiple: "4-6x ARR"},
		sectors.Consumer:      {low: 1.6, mid: 3.2, high: 4.8, multiple: "1-3x revenue"},
		sectors.Manufacturing: {low: 1.4, mid: 2.8, high: 4.2, multiple: "1-2x revenue"},
	},
	RoundSeed: {
		sectors.Fintech:       {low: 7.2, mid: 12, high: 18, multiple: "5-8x ARR"},
		sectors.Healthtech:    {low: 6.6, mid: 11, high: 16.5, multiple: "4-7x ARR"},
		sectors.SaaS:          {low: 7.8, mid: 13, high: 19.5, multiple: "8-12x ARR"},
		sectors.Climatetech:   {low: 6, mid: 10, high: 15, multiple: "4-6x ARR"},
		sectors.Consumer:      {low: 4.8, mid: 8, high: 12, multiple: "1-3x revenue"},
		sectors.Manufacturing: {low: 4.2, mid: 7, high: 10.5, multiple: "1-2x revenue"},
	},
	RoundSeriesA: {
		sectors.Fintech:       {low: 24, mid: 42, high: 60, multiple: "5-8x ARR"},
		sectors.Healthtech:    {low: 22, mid: 38.5, high: 55, multiple: "4-7x ARR"},
		sectors.SaaS:          {low: 26, mid: 45.5, high: 65, multiple: "8-12x ARR"},
		sectors.Climatetech:   {low: 20, mid: 35, high: 50, multiple: "4-6x ARR"},
		sectors.Consumer:      {low: 16, mid: 28, high: 40, multiple: "1-3x revenue"},
		sectors.Manufacturing: {low: 14, mid: 24.5, high: 35, multiple: "1-2x revenue"},
	},
	RoundSeriesB: {
		sectors.Fintech:       {low: 72, mid: 120, high: 180, multiple: "5-8x ARR"},
		sectors.Healthtech:    {low: 66, mid: 110, high: 165, multiple: "4-7x ARR"},
		sectors.SaaS:          {low: 78, mid: 130, high: 195, multiple: "8-12x ARR"},
		sectors.Climatetech:   {low: 60, mid: 100, high: 150, multiple: "4-6x ARR"},
		sectors.Consumer:      {low: 48, mid: 80, high: 120, multiple: "1-3x revenue"},
		sectors.Manufacturing: {low: 42, mid: 70, high: 105, multiple: "1-2x revenue"},
	},
}

var revenueMultiples = map[sectors.Sector]revenueMultiple{
	sectors.Fintech:       {low: 5, mid: 6.5, high: 8},
	sectors.Healthtech:    {low: 4, mid: 5.5, high: 7},
	sectors.SaaS:          {low: 8, mid: 10, high: 12},
	sectors.Climatetech:   {low: 4, mid: 5, high: 6},
	sectors.Consumer:      {low: 1, mid: 2, high: 3},
	sectors.Manufacturing: {low: 1, mid: 1.5, high: 2},
}

// ParseRevenue reads a monthly revenue figure such as "42000", "$42,000" or "42000.50".
// Anything else, including negative, infinite and NaN values, is zero.
func ParseRevenue(s string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", "_", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// Valuation estimates a pre-money valuation.
//
// Companies with revenue are valued at annualised revenue times the sector multiples, everything else gets the
// stage and sector benchmark.
func Valuation(in ValuationInput) ValuationResult {
	round := in.Round
	if _, ok := benchmarks[round]; !ok {
		round = DefaultRound
	}
	sector := sectors.OrDefault(string(in.Sector))
	b := benchmarks[round][sector]

	result := ValuationResult{
		Round:    round,
		Sector:   sector,
		Low:      b.low,
		Mid:      b.mid,
		High:     b.high,
		Multiple: b.multiple,
		Basis:    BasisBenchmark,
	}

	if monthly := ParseRevenue(in.MonthlyRevenue); monthly > 0 {
		annualMillions := monthly * 12 / 1_000_000 //nolint:mnd // months per year, dollars per million
		m := revenueMultiples[sector]
		result.Low = round2(annualMillions * m.low)
		result.Mid = round2(annualMillions * m.mid)
		result.High = round2(annualMillions * m.high)
		result.Basis = BasisRevenue
	}

	return result
}
