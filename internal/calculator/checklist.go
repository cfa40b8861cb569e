package calculator

import "math"

// Category groups checklist items.
type Category string

const (
	CategoryTeam        Category = "team"
	CategoryProduct     Category = "product"
	CategoryMarket      Category = "market"
	CategoryTraction    Category = "traction"
	CategoryFundraising Category = "fundraising"
)

// Status is the traffic light for a category.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

const (
	greenThreshold  = 80
	yellowThreshold = 50
	readyScore      = 71
	closeScore      = 41
)

// ChecklistItem is one accelerator readiness criterion.
type ChecklistItem struct {
	ID       string
	Category Category
	Label    string
	Points   int
}

// ChecklistCategory describes a category and its maximum points.
type ChecklistCategory struct {
	ID        Category
	Label     string
	MaxPoints int
}

var ChecklistCategories = []ChecklistCategory{
	{ID: CategoryTeam, Label: "Team", MaxPoints: 20},
	{ID: CategoryProduct, Label: "Product", MaxPoints: 25},
	{ID: CategoryMarket, Label: "Market", MaxPoints: 20},
	{ID: CategoryTraction, Label: "Traction", MaxPoints: 20},
	{ID: CategoryFundraising, Label: "Fundraising", MaxPoints: 15},
}

var ChecklistItems = []ChecklistItem{
	{ID: "team-1", Category: CategoryTeam, Points: 7, Label: "Full-time founding team of two or more"},
	{ID: "team-2", Category: CategoryTeam, Points: 7, Label: "Technical capability in-house"},
	{ID: "team-3", Category: CategoryTeam, Points: 6, Label: "Founder-market fit you can explain in one sentence"},
	{ID: "product-1", Category: CategoryProduct, Points: 8, Label: "Working product in users' hands"},
	{ID: "product-2", Category: CategoryProduct, Points: 6, Label: "Clear problem statement validated with customers"},
	{ID: "product-3", Category: CategoryProduct, Points: 6, Label: "Roadmap for the next two quarters"},
	{ID: "product-4", Category: CategoryProduct, Points: 5, Label: "Defensible technology or data advantage"},
	{ID: "market-1", Category: CategoryMarket, Points: 6, Label: "Bottom-up market size estimate"},
	{ID: "market-2", Category: CategoryMarket, Points: 7, Label: "Named competitors and positioning"},
	{ID: "market-3", Category: CategoryMarket, Points: 7, Label: "Repeatable go-to-market channel identified"},
	{ID: "traction-1", Category: CategoryTraction, Points: 8, Label: "Paying customers or signed pilots"},
	{ID: "traction-2", Category: CategoryTraction, Points: 7, Label: "Month-over-month growth for three months"},
	{ID: "traction-3", Category: CategoryTraction, Points: 5, Label: "Retention or engagement cohort data"},
	{ID: "fundraising-1", Category: CategoryFundraising, Points: 5, Label: "Pitch deck reviewed by an investor"},
	{ID: "fundraising-2", Category: CategoryFundraising, Points: 5, Label: "Clean cap table"},
	{ID: "fundraising-3", Category: CategoryFundraising, Points: 5, Label: "Use of funds mapped to milestones"},
}

// CategoryScore is the result for one category.
type CategoryScore struct {
	Category   ChecklistCategory
	Points     int
	Percentage int
	Status     Status
}

// ChecklistResult is the readiness score.
type ChecklistResult struct {
	Total      int
	MaxTotal   int
	Categories []CategoryScore
	Readiness  string
	// Checked lists the recognised item ids, each once, in catalogue order.
	Checked []string
}

// Checklist scores the checked item ids. Unknown ids are ignored and duplicates count once, so the result does not
// depend on order or repetition.
func Checklist(checked []string) ChecklistResult {
	seen := make(map[string]bool, len(checked))
	for _, id := range checked {
		seen[id] = true
	}

	points := make(map[Category]int, len(ChecklistCategories))
	result := ChecklistResult{}
	for _, item := range ChecklistItems {
		if !seen[item.ID] {
			continue
		}
		points[item.Category] += item.Points
		result.Total += item.Points
		result.Checked = append(result.Checked, item.ID)
	}

	for _, category := range ChecklistCategories {
		percentage := int(math.Round(float64(points[category.ID]) / float64(category.MaxPoints) * 100)) //nolint:mnd // percent
		result.MaxTotal += category.MaxPoints
		result.Categories = append(result.Categories, CategoryScore{
			Category:   category,
			Points:     points[category.ID],
			Percentage: percentage,
			Status:     statusFor(percentage),
		})
	}
	result.Readiness = readinessFor(result.Total)

	return result
}

func statusFor(percentage int) Status {
	switch {
	case percentage >= greenThreshold:
		return StatusGreen
	case percentage >= yellowThreshold:
		return StatusYellow
	default:
		return StatusRed
	}
}

func readinessFor(total int) string {
	switch {
	case total >= readyScore:
		return "Accelerator ready: apply to the top programs this cycle."
	case total >= closeScore:
		return "Getting close: close the red gaps before the next application window."
	default:
		return "Early stage: focus on team and product fundamentals first."
	}
}
