// Package leads delivers lead records to the spreadsheet endpoint.
//
// Delivery is fire-and-forget: [Dispatcher.Dispatch] returns immediately and the outcome is only logged, counted and
// journalled. Visitors never see a delivery failure.
package leads

import "slices"

// FormType tells which form produced a lead.
type FormType string

const (
	FormDiagnostic           FormType = "diagnostic"
	FormPDFDownload          FormType = "pdf_download"
	FormEquityCalculator     FormType = "equity_calculator"
	FormValuationTool        FormType = "valuation_tool"
	FormAcceleratorChecklist FormType = "accelerator_checklist"
	FormInvestorTierList     FormType = "investor_tierlist"
	FormMembership           FormType = "membership"
)

var FormTypes = []FormType{
	FormDiagnostic,
	FormPDFDownload,
	FormEquityCalculator,
	FormValuationTool,
	FormAcceleratorChecklist,
	FormInvestorTierList,
	FormMembership,
}

// Valid reports whether f is a known form type.
func (f FormType) Valid() bool {
	return slices.Contains(FormTypes, f)
}

const (
	KeyFormType     = "formType"
	KeyTimestamp    = "timestamp"
	KeySubmissionID = "submissionId"
	KeyEmail        = "email"
)

// Record is a flat lead as sent to the spreadsheet. Keys become columns.
type Record map[string]string

func (r Record) FormType() FormType {
	return FormType(r[KeyFormType])
}

func (r Record) SubmissionID() string {
	return r[KeySubmissionID]
}

func (r Record) Email() string {
	return r[KeyEmail]
}
