package main

import (
	"context"
	"encoding/gob"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alphafounders/site/internal/debugserver"
	"github.com/alphafounders/site/internal/diagnostic"
	"github.com/alphafounders/site/internal/envstruct"
	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/logging"
	"github.com/alphafounders/site/internal/profile"
	"github.com/alphafounders/site/internal/repositories"
	"github.com/alphafounders/site/internal/sqlite"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type application struct {
	logger         *slog.Logger
	db             *sqlite.Database
	sessionManager *scs.SessionManager
	profiles       profile.Store
	leads          *leads.Dispatcher
	htmx           *htmx.HTMX
	links          diagnostic.Links
	phases         diagnostic.Phases
	downloads      fs.FS
	now            func() time.Time
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"SITE_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the URL to the SQLite database holding sessions and the lead journal.
	SqliteURL string `env:"SITE_SQLITE_URL" envDefault:"./site.sqlite"`
	// LeadEndpoint receives every lead as JSON. Leave empty to only journal leads.
	LeadEndpoint string        `env:"SITE_LEAD_ENDPOINT" envDefault:""`
	LeadTimeout  time.Duration `env:"SITE_LEAD_TIMEOUT" envDefault:"10s"`
	// PublicURL is the origin used in links sent along with leads.
	PublicURL  string `env:"SITE_PUBLIC_URL" envDefault:"http://localhost:4000"`
	BookingURL string `env:"SITE_BOOKING_URL" envDefault:"https://cal.com/alpha-advisors/intro"`
	// DownloadsDir contains the gated PDF guides.
	DownloadsDir string `env:"SITE_DOWNLOADS_DIR" envDefault:"./downloads"`
	// PhaseScale stretches or shrinks the searching animation. Tests run it at a fraction of real time.
	PhaseScale float64 `env:"SITE_PHASE_SCALE" envDefault:"1"`
	// DebugAddr serves pprof and Prometheus metrics. Leave empty to disable.
	DebugAddr string `env:"SITE_DEBUG_ADDR" envDefault:"localhost:6060"`
}

func init() {
	gob.Register(diagnostic.Session{})
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config from environment")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("sqliteURL", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(closeErr))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err = debugserver.Launch(ctx, cfg.DebugAddr, registry, logger); err != nil {
		return errors.Wrap(err, "launch debug server")
	}

	sessionStore := sqlite3store.NewWithCleanupInterval(db.ReadWrite, time.Hour)
	defer sessionStore.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = sessionStore
	sessionManager.Lifetime = 30 * 24 * time.Hour //nolint:mnd // 30 days
	sessionManager.Cookie.Name = "site_session"
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	var submitter leads.Submitter = leads.DisabledSubmitter{}
	if cfg.LeadEndpoint != "" {
		submitter = leads.NewHTTPSubmitter(cfg.LeadEndpoint, cfg.LeadTimeout)
	}
	dispatcher := leads.NewDispatcher(submitter, logger,
		leads.WithJournal(repositories.NewLeadJournal(db, logger)),
		leads.WithMetrics(leads.MustNewMetrics(registry)),
		leads.WithTimeout(cfg.LeadTimeout),
	)

	app := application{
		logger:         logger,
		db:             db,
		sessionManager: sessionManager,
		profiles:       profile.NewSessionStore(sessionManager),
		leads:          dispatcher,
		htmx:           htmx.New(),
		links:          diagnostic.Links{PublicURL: cfg.PublicURL, BookingURL: cfg.BookingURL},
		phases:         diagnostic.SearchPhases.Scaled(cfg.PhaseScale),
		downloads:      os.DirFS(cfg.DownloadsDir),
		now:            time.Now,
	}

	err = app.configureAndStartServer(ctx, cfg.Addr)
	// Deliveries started by the last requests still get their chance to reach the spreadsheet.
	app.leads.Wait()
	if err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failure loading .env file", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
