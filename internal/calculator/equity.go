package calculator

import "math"

// Stage is the company stage for the equity calculator.
type Stage string

const (
	StageIdea    Stage = "idea"
	StagePreSeed Stage = "preSeed"
	StageSeed    Stage = "seed"
	StageSeriesA Stage = "seriesA"
	StageGrowth  Stage = "growth"
)

// Role is the advisor's engagement type.
type Role string

const (
	RoleBoard       Role = "board"
	RoleStrategic   Role = "strategic"
	RoleOperational Role = "operational"
	RoleMentor      Role = "mentor"
)

// Experience is the advisor's background.
type Experience string

const (
	ExperienceSerialFounder  Experience = "serialFounder"
	ExperienceIndustryExpert Experience = "industryExpert"
	ExperienceOperator       Experience = "operator"
)

const (
	baseEquity     = 0.25
	hourlyEquity   = 0.02
	maxHoursEquity = 0.4
	minEquity      = 0.05
	maxEquity      = 2.0
	rangeLow       = 0.8
	rangeHigh      = 1.2
)

var (
	EquityStages      = []Stage{StageIdea, StagePreSeed, StageSeed, StageSeriesA, StageGrowth}
	EquityRoles       = []Role{RoleBoard, RoleStrategic, RoleOperational, RoleMentor}
	EquityExperiences = []Experience{ExperienceSerialFounder, ExperienceIndustryExpert, ExperienceOperator}
)

var stageFactors = map[Stage]float64{
	StageIdea:    1.5,
	StagePreSeed: 1.25,
	StageSeed:    1.0,
	StageSeriesA: 0.75,
	StageGrowth:  0.5,
}

var roleFactors = map[Role]float64{
	RoleBoard:       1.5,
	RoleStrategic:   1.25,
	RoleOperational: 1.0,
	RoleMentor:      0.75,
}

var experienceFactors = map[Experience]float64{
	ExperienceSerialFounder:  1.3,
	ExperienceIndustryExpert: 1.15,
	ExperienceOperator:       1.0,
}

// EquityInput is what the founder tells about the advisor engagement.
type EquityInput struct {
	Stage         Stage
	Role          Role
	Experience    Experience
	HoursPerMonth float64
}

// EquityResult is an advisory equity range in percent of fully diluted shares.
type EquityResult struct {
	Min         float64
	Max         float64
	Recommended float64
}

// factor looks up key and defaults to a neutral 1.0 for unknown keys.
func factor[K comparable](table map[K]float64, key K) float64 {
	if f, ok := table[key]; ok {
		return f
	}
	return 1.0
}

// Equity recommends an advisor equity grant.
//
// The hours component grows linearly and is capped, so commitments above 20 hours a month no longer change the
// result. Negative and NaN hours count as none. The range is derived from the rounded recommendation and clamped to [0.05, 2.0].
func Equity(in EquityInput) EquityResult {
	hours := in.HoursPerMonth
	if math.IsNaN(hours) || hours < 0 {
		hours = 0
	}
	recommended := baseEquity*
		factor(stageFactors, in.Stage)*
		factor(roleFactors, in.Role)*
		factor(experienceFactors, in.Experience) +
		min(hours*hourlyEquity, maxHoursEquity)
	recommended = round2(recommended)

	return EquityResult{
		Min:         round2(clamp(recommended*rangeLow, minEquity, maxEquity)),
		Max:         round2(clamp(recommended*rangeHigh, minEquity, maxEquity)),
		Recommended: recommended,
	}
}
