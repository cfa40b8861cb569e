package diagnostic_test

import (
	"testing"
	"time"

	"github.com/alphafounders/site/internal/diagnostic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func validContact() diagnostic.Contact {
	return diagnostic.Contact{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		CompanyName: "Analytical Engines",
		Sector:      "fintech",
		Stage:       "seed",
	}
}

// fill answers every unanswered question on the current step with its first option.
func fill(s diagnostic.Session) diagnostic.Session {
	for _, q := range diagnostic.Definition(s.Step).Questions {
		if len(q.Options) > 0 && s.Value(q.Field) == "" {
			s = s.WithValue(q.Field, q.Options[0].Value)
		}
	}
	return s
}

func completedForm(t *testing.T) diagnostic.Session {
	t.Helper()
	s := diagnostic.New(validContact())
	var err error
	for s.View == diagnostic.ViewForm {
		s, err = fill(s).Next(now)
		require.NoError(t, err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := diagnostic.New(diagnostic.Contact{Email: "ada@example.com"})
	assert.Equal(t, diagnostic.StepContact, s.Step)
	assert.Equal(t, diagnostic.ViewForm, s.View)
	assert.Equal(t, "ada@example.com", s.Contact.Email)
	assert.Equal(t, diagnostic.Answers{}, s.Answers)
}

func TestNextRequiresEveryField(t *testing.T) {
	for _, def := range diagnostic.Steps() {
		t.Run(def.Title, func(t *testing.T) {
			// Walk to the step under test.
			s := diagnostic.New(validContact())
			var err error
			for s.Step < def.Step {
				s, err = fill(s).Next(now)
				require.NoError(t, err)
			}
			s = fill(s)

			for _, field := range diagnostic.Fields(def.Step) {
				blank := s.WithValue(field, "   ")
				got, err := blank.Next(now)
				var validationErr *diagnostic.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, field, validationErr.Field)
				assert.Equal(t, def.Step, got.Step)
				assert.Equal(t, validationErr.Message, got.ValidationError)

				// Correcting the field and retrying succeeds.
				fixed, err := got.WithValue(field, s.Value(field)).Next(now)
				require.NoError(t, err)
				assert.Empty(t, fixed.ValidationError)
			}
		})
	}
}

func TestContactValidationOrder(t *testing.T) {
	s := diagnostic.New(diagnostic.Contact{})
	_, err := s.Next(now)
	var validationErr *diagnostic.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, diagnostic.FieldFirstName, validationErr.Field)

	c := validContact()
	c.Email = "not-an-email"
	_, err = diagnostic.New(c).Next(now)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, diagnostic.FieldEmail, validationErr.Field)
	assert.Equal(t, "Please enter a valid email address.", validationErr.Message)
}

func TestNextKeepsWhitespace(t *testing.T) {
	c := validContact()
	c.FirstName = "  Ada "
	s, err := diagnostic.New(c).Next(now)
	require.NoError(t, err)
	assert.Equal(t, "  Ada ", s.Contact.FirstName)
}

func TestBackNeverValidatesNorClears(t *testing.T) {
	s := diagnostic.New(validContact())
	s, err := fill(s).Next(now)
	require.NoError(t, err)
	s, err = fill(s).Next(now)
	require.NoError(t, err)
	require.Equal(t, diagnostic.StepFinancials, s.Step)

	answers := s.Answers
	s = s.WithValue(diagnostic.FieldFinModel, "")
	s = s.Back()
	assert.Equal(t, diagnostic.StepProductMarketFit, s.Step)
	assert.Equal(t, answers.PMFRetention, s.Answers.PMFRetention)

	s = s.Back()
	assert.Equal(t, diagnostic.StepContact, s.Step)
	s = s.Back()
	assert.Equal(t, diagnostic.StepContact, s.Step, "back on the first step stays put")
	assert.Equal(t, validContact(), s.Contact)
}

func TestLastStepStartsSearch(t *testing.T) {
	s := completedForm(t)
	assert.Equal(t, diagnostic.ViewSearching, s.View)
	assert.Equal(t, diagnostic.StepAdvisors, s.Step)
	assert.Equal(t, now, s.SearchStartedAt)

	_, err := s.Next(now)
	require.ErrorIs(t, err, diagnostic.ErrNotEditable)

	assert.Equal(t, s, s.WithValue(diagnostic.FieldEmail, "changed@example.com"))
	assert.Equal(t, s, s.Back())

	done := s.Complete()
	assert.Equal(t, diagnostic.ViewSuccess, done.View)
}

func TestCloseResetsFromAnyState(t *testing.T) {
	searching := completedForm(t)
	states := []diagnostic.Session{
		diagnostic.New(validContact()),
		fill(diagnostic.New(validContact())),
		searching,
		searching.Complete(),
	}
	for _, s := range states {
		closed := s.Close()
		assert.Equal(t, diagnostic.StepContact, closed.Step)
		assert.Equal(t, diagnostic.ViewForm, closed.View)
		assert.Equal(t, diagnostic.Answers{}, closed.Answers)
		assert.Equal(t, diagnostic.Contact{}, closed.Contact)
	}
}

func TestSettle(t *testing.T) {
	s := completedForm(t)
	phases := diagnostic.SearchPhases

	assert.Equal(t, diagnostic.ViewSearching, s.Settle(now.Add(time.Second), phases).View)
	assert.Equal(t, diagnostic.ViewSuccess, s.Settle(now.Add(phases.Total()), phases).View)

	form := diagnostic.New(validContact())
	assert.Equal(t, form, form.Settle(now.Add(time.Hour), phases))
}

func TestLeadFields(t *testing.T) {
	s := completedForm(t)
	fields := s.LeadFields(diagnostic.Links{
		PublicURL:  "https://alphafounders.example/",
		BookingURL: "https://cal.com/alpha-advisors/intro",
	})

	assert.Len(t, fields, 20)
	assert.Equal(t, "Ada", fields["firstName"])
	assert.Equal(t, "fintech", fields["sector"])
	assert.Equal(t, "under20", fields["pmfRetention"])
	assert.Equal(t, "equity", fields["advisorCompensation"])
	assert.Equal(t, "https://alphafounders.example/diagnostic/results?sector=fintech", fields["matchUrl"])
	assert.Equal(t, "https://cal.com/alpha-advisors/intro?email=ada%40example.com&name=Ada+Lovelace",
		fields["bookingUrl"])
}
