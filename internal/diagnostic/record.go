package diagnostic

import (
	"net/url"
	"strings"
)

// Links builds the URLs that accompany a diagnostic lead.
type Links struct {
	// PublicURL is the site origin, e.g. https://alphafounders.example.
	PublicURL string
	// BookingURL is the scheduling page for intro calls.
	BookingURL string
}

// MatchURL links back to the advisor match for sector.
func (l Links) MatchURL(sector string) string {
	return strings.TrimSuffix(l.PublicURL, "/") + "/diagnostic/results?sector=" + url.QueryEscape(sector)
}

// BookingURLFor pre-fills the booking page with the founder's email and name.
func (l Links) BookingURLFor(c Contact) string {
	query := url.Values{}
	query.Set("email", c.Email)
	query.Set("name", strings.TrimSpace(c.FirstName+" "+c.LastName))
	separator := "?"
	if strings.Contains(l.BookingURL, "?") {
		separator = "&"
	}
	return l.BookingURL + separator + query.Encode()
}

// LeadFields flattens the session into spreadsheet columns: every wizard field plus matchUrl and bookingUrl.
func (s Session) LeadFields(links Links) map[string]string {
	fields := make(map[string]string, len(AllFields())+2) //nolint:mnd // the two derived urls
	for _, field := range AllFields() {
		fields[string(field)] = s.Value(field)
	}
	fields["matchUrl"] = links.MatchURL(s.Contact.Sector)
	fields["bookingUrl"] = links.BookingURLFor(s.Contact)
	return fields
}
