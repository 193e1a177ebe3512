package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	mwecho "github.com/labstack/echo/v4/middleware"
	mwsvc "github.com/sbtransport/sbtconsole/internal/middleware"

	"github.com/sbtransport/sbtconsole/internal/area"
	"github.com/sbtransport/sbtconsole/internal/backend"
	"github.com/sbtransport/sbtconsole/internal/backup"
	"github.com/sbtransport/sbtconsole/internal/bundle"
	"github.com/sbtransport/sbtconsole/internal/calculation"
	"github.com/sbtransport/sbtconsole/internal/config"
	"github.com/sbtransport/sbtconsole/internal/customer"
	"github.com/sbtransport/sbtconsole/internal/demodata"
	"github.com/sbtransport/sbtconsole/internal/invoice"
	"github.com/sbtransport/sbtconsole/internal/localstate"
	"github.com/sbtransport/sbtconsole/internal/lookup"
	"github.com/sbtransport/sbtconsole/internal/pricing"
	"github.com/sbtransport/sbtconsole/internal/sqlite"

	adminhttp "github.com/sbtransport/sbtconsole/internal/http/admin"
)

type Server struct {
	Echo  *echo.Echo
	HTTP  *http.Server
	DB    *sqlx.DB
	State *localstate.Store
	Admin *adminhttp.Service
}

// Build wires every dependency. The credential is resolved here once and
// kept for the life of the process.
func Build(ctx context.Context, cfg *config.Config) (*Server, error) {
	//
	// Local state
	//
	db, err := sqlite.Open(cfg.StateDBPath)
	if err != nil {
		return nil, err
	}
	state := localstate.New(db)

	cred, err := config.ResolveCredential(ctx, cfg.Embedded(), config.Env(config.CredentialEnvVars...), state)
	if err != nil {
		db.Close()
		return nil, err
	}
	if cred.Key == "" {
		log.Warn().Msg("no backend access credential configured; reads return empty and writes fail")
	} else {
		log.Info().Str("source", cred.Source).Msg("backend access credential resolved")
	}
	if cfg.Backend.URL == "" {
		log.Warn().Msg("backend.url is not set")
	}

	client := backend.New(backend.Options{
		URL:       cfg.Backend.URL,
		AccessKey: cred.Key,
		Timeout:   cfg.Backend.Timeout,
	})

	//
	// Domain services
	//
	customerSvc := customer.NewService(client)
	areaSvc := area.NewService(client)
	calculationSvc := calculation.NewService(client)
	lookupSvc := lookup.NewService(client)
	invoiceSvc := invoice.NewService(client)
	pricingSvc := pricing.NewService(areaSvc, calculationSvc, pricing.RulesFromConfig(cfg.Pricing))
	bundleSvc := bundle.NewService(client)
	backupSvc := backup.NewService(bundleSvc, cfg.BackupDir)

	// Load demo data if requested and the backend is empty
	if cfg.DemoMode {
		loaded, err := demodata.Load(ctx, bundleSvc)
		if err != nil {
			db.Close()
			return nil, errors.New("failed to load demo data: " + err.Error())
		}
		if loaded {
			log.Info().Msg("Demo data loaded")
		}
	}

	adminSvc := adminhttp.NewService(adminhttp.Deps{
		Backend:      client,
		Credential:   cred,
		State:        state,
		Customers:    customerSvc,
		Areas:        areaSvc,
		Calculations: calculationSvc,
		Lookups:      lookupSvc,
		Invoices:     invoiceSvc,
		Pricing:      pricingSvc,
		Bundle:       bundleSvc,
		Backup:       backupSvc,
	})
	adminHandler := adminhttp.NewHandler(adminSvc)

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "State DB not ready")
		}
		if !client.Configured() {
			return c.String(http.StatusServiceUnavailable, "No backend credential")
		}
		return c.String(http.StatusOK, "Ready")
	})

	// Middleware
	e.Use(mwsvc.RequestID())
	e.Use(mwsvc.RequestLogger(log.Logger))
	e.Use(mwecho.Recover())

	// Admin API
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(mwecho.BodyLimit("20M"))
	adminGroup.Use(mwsvc.AdminAPIKeyAuth(cfg.AdminAPIKey))
	adminhttp.RegisterRoutes(adminGroup, adminHandler)

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		Echo:  e,
		HTTP:  srv,
		DB:    db,
		State: state,
		Admin: adminSvc,
	}, nil
}
