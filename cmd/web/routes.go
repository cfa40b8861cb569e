package main

import (
	"io/fs"
	"net/http"

	"github.com/alphafounders/site/ui"
	htmxmiddleware "github.com/donseba/go-htmx/middleware"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err) // the directory is embedded at compile time
	}
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", http.FileServerFS(static))))

	session := alice.New(app.sessionManager.LoadAndSave)
	pages := alice.New(func(next http.Handler) http.Handler {
		return timeoutHandler(next, defaultTimeout)
	}, app.sessionManager.LoadAndSave)
	// The phase stream outlives the page timeout and flushes as it goes.
	stream := alice.New(app.serverSentEventMiddleware)

	mux.Handle("GET /{$}", pages.ThenFunc(app.home))

	mux.Handle("GET /diagnostic", pages.ThenFunc(app.diagnosticPage))
	mux.Handle("POST /diagnostic/next", pages.ThenFunc(app.diagnosticNext))
	mux.Handle("POST /diagnostic/back", pages.ThenFunc(app.diagnosticBack))
	mux.Handle("POST /diagnostic/close", pages.ThenFunc(app.diagnosticClose))
	mux.Handle("GET /diagnostic/phases", stream.ThenFunc(app.diagnosticPhases))
	mux.Handle("GET /diagnostic/results", pages.ThenFunc(app.diagnosticResults))

	mux.Handle("GET /tools/equity", pages.ThenFunc(app.toolPage(equityTool)))
	mux.Handle("GET /tools/valuation", pages.ThenFunc(app.toolPage(valuationTool)))
	mux.Handle("GET /tools/checklist", pages.ThenFunc(app.toolPage(checklistTool)))
	mux.Handle("GET /tools/tier-list", pages.ThenFunc(app.toolPage(tierListTool)))
	mux.Handle("POST /tools/{tool}/report", pages.ThenFunc(app.toolReport))

	mux.Handle("GET /resources/{slug}", pages.ThenFunc(app.resource))
	mux.Handle("POST /resources/{slug}", pages.ThenFunc(app.resourceSubmit))
	mux.Handle("GET /downloads/{slug}", session.ThenFunc(app.download))

	mux.Handle("GET /membership", pages.ThenFunc(app.membership))
	mux.Handle("POST /membership", pages.ThenFunc(app.membershipSubmit))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	common := alice.New(app.recoverPanic, app.logRequest, app.noSurf, htmxmiddleware.MiddleWare, app.commonContext,
		secureHeaders)
	return common.Then(mux)
}
