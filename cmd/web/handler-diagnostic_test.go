package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/alphafounders/site/internal/e2etest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var diagnosticAnswers = []url.Values{
	{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"email":       {"ada@example.com"},
		"companyName": {"Analytical Engines"},
		"sector":      {"fintech"},
		"stage":       {"seed"},
	},
	{"pmfRetention": {"over40"}, "pmfCustomerEvidence": {"revenue"}, "pmfGrowthChannel": {"referrals"}},
	{"finModel": {"basic"}, "finRunway": {"12to18"}, "finUnitEconomics": {"estimated"}},
	{"teamFounders": {"two"}, "teamCommitment": {"allFullTime"}, "teamGaps": {"commercial"}},
	{"advisorCurrent": {"informal"}, "advisorNeed": {"regulatory"}, "advisorCompensation": {"equity"}},
}

func stepCount(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(".step-count").Text())
}

// completeDiagnostic walks through all five steps and returns the page shown after the last one.
func completeDiagnostic(ctx context.Context, t *testing.T, client *e2etest.Client) *goquery.Document {
	t.Helper()
	doc, err := client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)
	for i, answers := range diagnosticAnswers {
		require.Equal(t, fmt.Sprintf("Step %d of 5", i+1), stepCount(doc))
		doc, err = client.SubmitDocForm(ctx, doc, "/diagnostic/next", answers)
		require.NoError(t, err)
	}
	return doc
}

func Test_application_diagnostic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sink := newLeadSink(t)
	server := startTestServer(t, map[string]string{"SITE_LEAD_ENDPOINT": sink.URL()})
	client := server.Client()

	doc := completeDiagnostic(ctx, t, client)
	assert.Equal(t, 1, doc.Find("[data-phase-stream='/diagnostic/phases']").Length(), "searching view")
	assert.Equal(t, 4, doc.Find("[data-phase]").Length())

	leads := sink.waitForLeads(t, 1)
	require.Len(t, leads, 1)
	lead := leads[0]
	assert.Equal(t, "diagnostic", lead["formType"])
	assert.NotEmpty(t, lead["submissionId"])
	assert.NotEmpty(t, lead["timestamp"])
	assert.Equal(t, "Ada", lead["firstName"])
	assert.Equal(t, "ada@example.com", lead["email"])
	assert.Equal(t, "regulatory", lead["advisorNeed"])
	assert.Equal(t, "https://alphafounders.test/diagnostic/results?sector=fintech", lead["matchUrl"])
	assert.Equal(t, "https://cal.test/intro?email=ada%40example.com&name=Ada+Lovelace", lead["bookingUrl"])

	// Without the phase stream the results page completes the search once the phases had their time.
	var results *goquery.Document
	require.Eventually(t, func() bool {
		var err error
		results, err = client.GetDoc(ctx, "/diagnostic/results")
		return err == nil && results.Find(".advisor.unlocked").Length() == 1
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, "FinTech Regulatory Specialist", strings.TrimSpace(results.Find(".advisor.unlocked h3").Text()))
	assert.Equal(t, 2, results.Find(".advisor.locked").Length())
	assert.Equal(t, 2, results.Find(".advisor.locked .gated-placeholder").Length())
	assert.Equal(t, 5, results.Find(".shadow-contact .gated-placeholder").Length())
	assert.NotContains(t, results.Text(), "Former Payments Network Executive")
	booking, _ := results.Find(".advisor.unlocked a").Attr("href")
	assert.Equal(t, "https://cal.test/intro?email=ada%40example.com&name=Ada+Lovelace", booking)

	// The founder is remembered: after closing, a new diagnostic starts pre-filled.
	modal, err := client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)
	assert.Contains(t, modal.Find("#diagnostic-title").Text(), "Thanks Ada")
	_, err = client.SubmitDocForm(ctx, modal, "/diagnostic/close", nil)
	require.NoError(t, err)
	doc, err = client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)
	assert.Equal(t, "Step 1 of 5", stepCount(doc))
	assert.Equal(t, "Ada", doc.Find("input[name=firstName]").AttrOr("value", ""))
	assert.Equal(t, "Analytical Engines", doc.Find("input[name=companyName]").AttrOr("value", ""))
}

func Test_application_diagnosticValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)
	client := server.Client()

	incomplete := url.Values{}
	for key, values := range diagnosticAnswers[0] {
		incomplete[key] = values
	}
	incomplete.Set("lastName", "   ")

	doc, err := client.SubmitForm(ctx, "/diagnostic", "/diagnostic/next", incomplete)
	require.NoError(t, err)
	assert.Equal(t, "Step 1 of 5", stepCount(doc))
	assert.Equal(t, "Please enter your last name.", strings.TrimSpace(doc.Find(".form-error").Text()))
	assert.Equal(t, "Ada", doc.Find("input[name=firstName]").AttrOr("value", ""))

	incomplete.Set("lastName", "Lovelace")
	incomplete.Set("email", "ada.example.com")
	doc, err = client.SubmitDocForm(ctx, doc, "/diagnostic/next", incomplete)
	require.NoError(t, err)
	assert.Equal(t, "Please enter a valid email address.", strings.TrimSpace(doc.Find(".form-error").Text()))

	doc, err = client.SubmitDocForm(ctx, doc, "/diagnostic/next", diagnosticAnswers[0])
	require.NoError(t, err)
	assert.Equal(t, "Step 2 of 5", stepCount(doc))
	assert.Equal(t, 0, doc.Find(".form-error").Length())

	// Two of three answers is not enough.
	doc, err = client.SubmitDocForm(ctx, doc, "/diagnostic/next", url.Values{
		"pmfRetention": {"over40"}, "pmfCustomerEvidence": {"revenue"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Step 2 of 5", stepCount(doc))
	assert.Equal(t, "Please answer: Where do new customers come from?",
		strings.TrimSpace(doc.Find(".form-error").Text()))
	assert.Equal(t, "over40", doc.Find("input[name=pmfRetention][checked]").AttrOr("value", ""))
}

func Test_application_diagnosticBackAndClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)
	client := server.Client()

	doc, err := client.SubmitForm(ctx, "/diagnostic", "/diagnostic/next", diagnosticAnswers[0])
	require.NoError(t, err)
	doc, err = client.SubmitDocForm(ctx, doc, "/diagnostic/next", diagnosticAnswers[1])
	require.NoError(t, err)
	require.Equal(t, "Step 3 of 5", stepCount(doc))

	doc, err = client.SubmitDocForm(ctx, doc, "/diagnostic/back", nil)
	require.NoError(t, err)
	assert.Equal(t, "Step 2 of 5", stepCount(doc))
	assert.Equal(t, "over40", doc.Find("input[name=pmfRetention][checked]").AttrOr("value", ""))

	doc, err = client.SubmitDocForm(ctx, doc, "/diagnostic/back", nil)
	require.NoError(t, err)
	assert.Equal(t, "Step 1 of 5", stepCount(doc))
	assert.Equal(t, "Lovelace", doc.Find("input[name=lastName]").AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("form[action='/diagnostic/back']").Length(), "no back on the first step")

	home, err := client.SubmitDocForm(ctx, doc, "/diagnostic/close", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, home.Find(".modal").Length())

	doc, err = client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)
	assert.Equal(t, "Step 1 of 5", stepCount(doc))
	assert.Equal(t, "", doc.Find("input[name=firstName]").AttrOr("value", ""), "closing clears the answers")
}

func Test_application_diagnosticHTMX(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)

	htmxHeaders := http.Header{"HX-Request": {"true"}}
	resp, err := client.PostDocForm(ctx, doc, "/diagnostic/next", url.Values{"firstName": {"Ada"}}, htmxHeaders)
	require.NoError(t, err)
	defer func(Body io.ReadCloser) {
		err = Body.Close()
		assert.NoError(t, err)
	}(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	fragment, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, fragment.Find("#diagnostic-modal").Length())
	assert.Equal(t, 0, fragment.Find("header.site-header").Length(), "only the modal is rendered")
	assert.Equal(t, "Please enter your last name.", strings.TrimSpace(fragment.Find(".form-error").Text()))
}

func Test_application_diagnosticPhases(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, map[string]string{"SITE_PHASE_SCALE": "0.5"})
	client := server.Client()

	completeDiagnostic(ctx, t, client)

	resp, err := client.Get(ctx, "/diagnostic/phases")
	require.NoError(t, err)
	defer func(Body io.ReadCloser) {
		err = Body.Close()
		assert.NoError(t, err)
	}(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	events := string(body)
	assert.Contains(t, events, "event: phase\ndata: Preparing your results\n\n")
	assert.True(t, strings.HasSuffix(events, "event: done\ndata: /diagnostic\n\n"), events)

	// The stream completed the search.
	doc, err := client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)
	assert.Equal(t, "FinTech Regulatory Specialist", strings.TrimSpace(doc.Find(".advisor.unlocked h3").Text()))
}

func Test_application_diagnosticCloseDuringSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, map[string]string{"SITE_PHASE_SCALE": "0.3"})
	client := server.Client()

	completeDiagnostic(ctx, t, client)

	streamed := make(chan string, 1)
	go func() {
		resp, err := client.Get(ctx, "/diagnostic/phases")
		if err != nil {
			streamed <- err.Error()
			return
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		streamed <- string(body)
	}()

	time.Sleep(200 * time.Millisecond)
	modal, err := client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)
	require.Equal(t, 1, modal.Find("[data-phase-stream]").Length(), "still searching")
	_, err = client.SubmitDocForm(ctx, modal, "/diagnostic/close", nil)
	require.NoError(t, err)

	var events string
	select {
	case events = <-streamed:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "phase stream did not end")
	}
	assert.Contains(t, events, "event: phase\n")
	assert.NotContains(t, events, "event: done", "a closed search is not completed")

	doc, err := client.GetDoc(ctx, "/diagnostic")
	require.NoError(t, err)
	assert.Equal(t, "Step 1 of 5", stepCount(doc))
	assert.Equal(t, "Ada", doc.Find("input[name=firstName]").AttrOr("value", ""))
}

func Test_application_diagnosticCloseHTMX(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)
	client := server.Client()

	doc, err := client.SubmitForm(ctx, "/diagnostic", "/diagnostic/next", diagnosticAnswers[0])
	require.NoError(t, err)
	require.Equal(t, "Step 2 of 5", stepCount(doc))

	resp, err := client.PostDocForm(ctx, doc, "/diagnostic/close", nil, http.Header{"HX-Request": {"true"}})
	require.NoError(t, err)
	defer func(Body io.ReadCloser) {
		err = Body.Close()
		assert.NoError(t, err)
	}(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode, "htmx requests are answered in place instead of redirected")

	fragment, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, fragment.Find("header.site-header").Length(), "only the modal is rendered")
	assert.Equal(t, 1, fragment.Find("#diagnostic-modal").Length())
	assert.Equal(t, 0, fragment.Find("#diagnostic-modal .modal").Length(), "the closed modal is empty")
}

func Test_application_diagnosticPhasesWithoutSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)

	resp, err := server.Client().Get(ctx, "/diagnostic/phases")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_application_diagnosticResultsBySector(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)

	tests := []struct {
		sector string
		want   string
	}{
		{sector: "fintech", want: "FinTech Regulatory Specialist"},
		{sector: "saas", want: "B2B SaaS Go-To-Market Operator"},
		{sector: "robotics", want: "Industrial Supply Chain Advisor"},
		{sector: "", want: "Industrial Supply Chain Advisor"},
	}
	for _, tt := range tests {
		t.Run(tt.sector, func(t *testing.T) {
			doc, err := server.Client().GetDoc(ctx, "/diagnostic/results?sector="+url.QueryEscape(tt.sector))
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(doc.Find(".advisor.unlocked h3").Text()))
			assert.Equal(t, 2, doc.Find(".advisor.locked .gated-placeholder").Length())
		})
	}
}
