package diagnostic

import (
	"fmt"
	"strings"
)

// ValidationError names the first field that blocks advancing.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the fields of the current step and reports the first failure.
//
// Values are trimmed for the checks only, the stored values keep their whitespace.
func (s Session) Validate() error {
	if s.Step == StepContact {
		return validateContact(s.Contact)
	}
	for _, q := range Definition(s.Step).Questions {
		if strings.TrimSpace(s.Value(q.Field)) == "" {
			return &ValidationError{Field: q.Field, Message: "Please answer: " + q.Label}
		}
	}
	return nil
}

func validateContact(c Contact) error {
	switch {
	case strings.TrimSpace(c.FirstName) == "":
		return &ValidationError{Field: FieldFirstName, Message: "Please enter your first name."}
	case strings.TrimSpace(c.LastName) == "":
		return &ValidationError{Field: FieldLastName, Message: "Please enter your last name."}
	case strings.TrimSpace(c.Email) == "":
		return &ValidationError{Field: FieldEmail, Message: "Please enter your email address."}
	case !strings.Contains(c.Email, "@"):
		return &ValidationError{Field: FieldEmail, Message: "Please enter a valid email address."}
	case strings.TrimSpace(c.CompanyName) == "":
		return &ValidationError{Field: FieldCompanyName, Message: "Please enter your company name."}
	case strings.TrimSpace(c.Sector) == "":
		return &ValidationError{Field: FieldSector, Message: "Please select your sector."}
	case strings.TrimSpace(c.Stage) == "":
		return &ValidationError{Field: FieldStage, Message: "Please select your stage."}
	}
	return nil
}
