// Package diagnostic implements the five step founder diagnostic: the wizard state machine, its questions and
// validation, the searching interstitial phases and the advisor match shown at the end.
//
// A [Session] is an immutable value. Every transition returns a new Session so callers can store the result in the
// visitor's session without aliasing.
package diagnostic

import (
	"time"

	"github.com/alphafounders/site/internal/errors"
)

// Step is the wizard step, 1 to 5.
type Step int

const (
	StepContact Step = iota + 1
	StepProductMarketFit
	StepFinancials
	StepTeam
	StepAdvisors
)

const (
	FirstStep = StepContact
	LastStep  = StepAdvisors
)

// View is the phase of the wizard modal.
type View string

const (
	ViewForm      View = "form"
	ViewSearching View = "searching"
	ViewSuccess   View = "success"
)

var ErrNotEditable = errors.NewSentinel("diagnostic is not accepting input")

// Contact is the founder's details from the first step.
type Contact struct {
	FirstName   string
	LastName    string
	Email       string
	CompanyName string
	Sector      string
	Stage       string
}

// Answers holds the option ids picked on steps 2 to 5.
type Answers struct {
	PMFRetention        string
	PMFCustomerEvidence string
	PMFGrowthChannel    string
	FinModel            string
	FinRunway           string
	FinUnitEconomics    string
	TeamFounders        string
	TeamCommitment      string
	TeamGaps            string
	AdvisorCurrent      string
	AdvisorNeed         string
	AdvisorCompensation string
}

// Session is the state of one visitor's wizard.
type Session struct {
	Step            Step
	View            View
	Contact         Contact
	Answers         Answers
	ValidationError string
	SearchStartedAt time.Time
}

// New opens a wizard on the first step with the contact pre-filled, typically from the visitor's stored profile.
func New(prefill Contact) Session {
	return Session{
		Step:            FirstStep,
		View:            ViewForm,
		Contact:         prefill,
		Answers:         Answers{},
		ValidationError: "",
		SearchStartedAt: time.Time{},
	}
}

// Value returns the current value of field.
func (s Session) Value(field Field) string {
	if p := s.fieldPtr(field); p != nil {
		return *p
	}
	return ""
}

// WithValue sets field. Unknown fields and sessions that left the form are returned unchanged.
func (s Session) WithValue(field Field, value string) Session {
	if s.View != ViewForm {
		return s
	}
	if p := s.fieldPtr(field); p != nil {
		*p = value
	}
	return s
}

// Next validates the current step and advances. Leaving the last step starts the search at now.
//
// On a validation failure the returned session carries the message in ValidationError and stays on the same step,
// and the error is a [*ValidationError].
func (s Session) Next(now time.Time) (Session, error) {
	if s.View != ViewForm {
		return s, ErrNotEditable
	}
	if err := s.Validate(); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			s.ValidationError = validationErr.Message
		}
		return s, err
	}
	s.ValidationError = ""
	if s.Step < LastStep {
		s.Step++
		return s, nil
	}
	s.View = ViewSearching
	s.SearchStartedAt = now
	return s, nil
}

// Back returns to the previous step without validating. Answers are kept.
func (s Session) Back() Session {
	if s.View != ViewForm || s.Step <= FirstStep {
		return s
	}
	s.Step--
	s.ValidationError = ""
	return s
}

// Close discards everything. The returned session is a fresh first step.
func (s Session) Close() Session {
	return New(Contact{})
}

// Complete ends the search and shows the match.
func (s Session) Complete() Session {
	if s.View != ViewSearching {
		return s
	}
	s.View = ViewSuccess
	return s
}

// Settle completes the search once its phases had time to play out.
//
// It serves clients that never open the phase stream.
func (s Session) Settle(now time.Time, phases Phases) Session {
	if s.View == ViewSearching && now.Sub(s.SearchStartedAt) >= phases.Total() {
		return s.Complete()
	}
	return s
}

func (s *Session) fieldPtr(field Field) *string {
	switch field {
	case FieldFirstName:
		return &s.Contact.FirstName
	case FieldLastName:
		return &s.Contact.LastName
	case FieldEmail:
		return &s.Contact.Email
	case FieldCompanyName:
		return &s.Contact.CompanyName
	case FieldSector:
		return &s.Contact.Sector
	case FieldStage:
		return &s.Contact.Stage
	case FieldPMFRetention:
		return &s.Answers.PMFRetention
	case FieldPMFCustomerEvidence:
		return &s.Answers.PMFCustomerEvidence
	case FieldPMFGrowthChannel:
		return &s.Answers.PMFGrowthChannel
	case FieldFinModel:
		return &s.Answers.FinModel
	case FieldFinRunway:
		return &s.Answers.FinRunway
	case FieldFinUnitEconomics:
		return &s.Answers.FinUnitEconomics
	case FieldTeamFounders:
		return &s.Answers.TeamFounders
	case FieldTeamCommitment:
		return &s.Answers.TeamCommitment
	case FieldTeamGaps:
		return &s.Answers.TeamGaps
	case FieldAdvisorCurrent:
		return &s.Answers.AdvisorCurrent
	case FieldAdvisorNeed:
		return &s.Answers.AdvisorNeed
	case FieldAdvisorCompensation:
		return &s.Answers.AdvisorCompensation
	}
	return nil
}
