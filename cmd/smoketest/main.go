package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alphafounders/site/internal/e2etest"
	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/logging"
)

// TestPages checks the public pages without submitting anything, so no lead reaches the spreadsheet.
func TestPages(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}

	home, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home")
	}
	if home.Find("a[hx-get='/diagnostic']").Length() == 0 {
		return errors.New("home page has no diagnostic link")
	}

	wizard, err := client.GetDoc(ctx, "/diagnostic")
	if err != nil {
		return errors.Wrap(err, "get diagnostic")
	}
	if _, err = e2etest.ExtractCSRFToken(wizard, "/diagnostic/next"); err != nil {
		return errors.Wrap(err, "diagnostic form")
	}

	results, err := client.GetDoc(ctx, "/diagnostic/results?sector=fintech")
	if err != nil {
		return errors.Wrap(err, "get results")
	}
	if results.Find(".advisor.locked .gated-placeholder").Length() != 2 { //nolint:mnd // two locked advisors
		return errors.New("members only advisors are not masked")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		url    = "https://" + os.Args[1]
		client *e2etest.Client
		err    error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestPages(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing pages", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
