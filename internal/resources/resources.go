// Package resources lists the downloadable guides offered behind the email gate.
package resources

import "slices"

// Guide is a downloadable PDF.
type Guide struct {
	Slug    string
	Title   string
	Summary string
	// File is the name inside the downloads directory.
	File string
}

var Guides = []Guide{
	{
		Slug:    "advisor-equity-playbook",
		Title:   "The Advisor Equity Playbook",
		Summary: "Vesting schedules, FAST agreements and the grants founders regret.",
		File:    "advisor-equity-playbook.pdf",
	},
	{
		Slug:    "seed-fundraising-checklist",
		Title:   "Seed Fundraising Checklist",
		Summary: "Forty items investors check before a first meeting turns into a term sheet.",
		File:    "seed-fundraising-checklist.pdf",
	},
	{
		Slug:    "financial-model-template",
		Title:   "Driver-Based Financial Model Guide",
		Summary: "Build a three statement model your board will trust.",
		File:    "financial-model-guide.pdf",
	},
	{
		Slug:    "accelerator-application-guide",
		Title:   "Accelerator Application Guide",
		Summary: "How partners read applications and what gets founders to interview.",
		File:    "accelerator-application-guide.pdf",
	},
}

// Find returns the guide with slug.
func Find(slug string) (Guide, bool) {
	idx := slices.IndexFunc(Guides, func(g Guide) bool {
		return g.Slug == slug
	})
	if idx < 0 {
		return Guide{}, false
	}
	return Guides[idx], true
}
