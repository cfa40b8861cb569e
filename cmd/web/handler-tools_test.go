package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_equityTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/tools/equity")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("#equity-result").Length(), "no result before the form is submitted")

	doc, err = client.GetDoc(ctx, "/tools/equity?stage=idea&role=board&experience=serialFounder&hours=5")
	require.NoError(t, err)
	assert.Equal(t, "0.83%", doc.Find(".recommended").Text())
	assert.Equal(t, "0.66%", doc.Find(".range-min").Text())
	assert.Equal(t, "1%", doc.Find(".range-max").Text())
	assert.Equal(t, "board", doc.Find("select[name=role] option[selected]").AttrOr("value", ""))

	doc, err = client.GetDoc(ctx, "/tools/equity?stage=seed&role=operational&experience=operator&hours=NaN")
	require.NoError(t, err)
	assert.Equal(t, "0.25%", doc.Find(".recommended").Text(), "NaN hours count as none")
}

func Test_application_checklistTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)

	doc, err := server.Client().GetDoc(ctx, "/tools/checklist?scored=1&item=product-1&item=market-2")
	require.NoError(t, err)
	assert.Equal(t, "15", doc.Find(".total").Text())
	assert.Contains(t, doc.Find(".readiness").Text(), "Early stage")

	product := doc.Find(".category-scores li[data-category=product]")
	assert.Equal(t, "red", product.AttrOr("data-status", ""))
	assert.Equal(t, "32%", product.Find(".percentage").Text())
	assert.Equal(t, 2, doc.Find("input[name=item][checked]").Length())

	// An empty checklist still scores.
	doc, err = server.Client().GetDoc(ctx, "/tools/checklist?scored=1")
	require.NoError(t, err)
	assert.Equal(t, "0", doc.Find(".total").Text())
}

func Test_application_toolReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sink := newLeadSink(t)
	server := startTestServer(t, map[string]string{"SITE_LEAD_ENDPOINT": sink.URL()})
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/tools/checklist?scored=1&item=product-1&item=market-2")
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Find("#report input[type=hidden]:not([name=csrf_token])").Length())

	resp, err := client.PostDocForm(ctx, doc, "/tools/checklist/report", url.Values{
		"scored": {"1"}, "item": {"product-1", "market-2"}, "email": {"not-an-email"},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	sent, err := client.SubmitDocForm(ctx, doc, "/tools/checklist/report", url.Values{
		"scored": {"1"}, "item": {"product-1", "market-2"}, "firstName": {"Ada"}, "email": {"ada@example.com"},
	})
	require.NoError(t, err)
	assert.Contains(t, sent.Find("#report .notice").Text(), "ada@example.com")
	assert.Equal(t, "15", sent.Find(".total").Text())

	leads := sink.waitForLeads(t, 1)
	require.Len(t, leads, 1)
	lead := leads[0]
	assert.Equal(t, "accelerator_checklist", lead["formType"])
	assert.Equal(t, "ada@example.com", lead["email"])
	assert.Equal(t, "Ada", lead["firstName"])
	assert.Equal(t, "15", lead["total"])
	assert.Equal(t, "32", lead["productPercentage"])
	assert.Equal(t, "product-1,market-2", lead["checkedItems"])

	// The email is remembered and pre-fills the next tool.
	doc, err = client.GetDoc(ctx, "/tools/equity?stage=seed")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", doc.Find("#report input[name=email]").AttrOr("value", ""))
}

func Test_application_tierListTool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)

	doc, err := server.Client().GetDoc(ctx, "/tools/tier-list?sector=fintech&round=seed")
	require.NoError(t, err)
	require.Equal(t, 4, doc.Find("section.tier").Length())

	tierS := doc.Find("section.tier[data-tier=S]")
	assert.Equal(t, 3, tierS.Find(".name .gated-placeholder").Length())
	assert.Equal(t, 3, doc.Find("section.tier[data-tier=A] .name .gated-placeholder").Length())
	assert.Equal(t, 0, doc.Find("section.tier[data-tier=C] .name .gated-placeholder").Length())
	assert.False(t, strings.Contains(doc.Text(), "Northstar Ventures"), "premium names are not sent")
	assert.Contains(t, doc.Find("section.tier[data-tier=C]").Text(), "Regional Angels Network")
	assert.Equal(t, 1, doc.Find(".upsell").Length())
}

func Test_application_toolNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t, nil)
	client := server.Client()

	doc, err := client.GetDoc(ctx, "/tools/equity?stage=seed")
	require.NoError(t, err)
	// Point a real report form, and with it its CSRF token, at a tool that does not exist.
	doc.Find("form[action='/tools/equity/report']").SetAttr("action", "/tools/unknown/report")

	resp, err := client.PostDocForm(ctx, doc, "/tools/unknown/report", url.Values{"email": {"ada@example.com"}}, nil)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
