package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/sbtransport/sbtconsole/internal/config"
	"github.com/sbtransport/sbtconsole/internal/logging"
	"github.com/sbtransport/sbtconsole/internal/server"
	"github.com/sbtransport/sbtconsole/internal/version"
)

func main() {
	fmt.Fprintln(os.Stderr, version.Banner())

	// .env is optional
	_ = godotenv.Load()

	//
	// Flags
	//
	configPath := flag.String("config", "config.yaml", "path to config file")
	routesFlag := flag.Bool("routes", false, "print routes and exit")
	demoFlag := flag.Bool("demo", false, "load sample data into an empty backend (for demos)")
	exportPath := flag.String("export", "", "write an export document to `file` (- for stdout) and exit")
	importPath := flag.String("import", "", "import an export document from `file` (.json or .json.gz) and exit")
	snapshotFlag := flag.Bool("snapshot", false, "write a gzip export snapshot to the backup directory and exit")
	servicesPath := flag.String("services", "", "write the services price list to `file` (.xlsx) and exit")
	nextMemoFlag := flag.Bool("next-memo", false, "print the next memo number and exit")
	setKey := flag.String("set-key", "", "persist the backend access `key` in the local state database and exit")
	flag.Parse()

	//
	// Load configuration
	//
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.DemoMode = *demoFlag
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx := context.Background()

	//
	// Build server (Echo, state DB, backend client, services)
	//
	srv, err := server.Build(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}
	defer srv.DB.Close()

	//
	// Routes inspection mode
	//
	if *routesFlag {
		routes := srv.Echo.Routes()
		sort.Slice(routes, func(i, j int) bool {
			return routes[i].Path < routes[j].Path
		})

		for _, r := range routes {
			fmt.Printf("%-6s %s\n", r.Method, r.Path)
		}
		return
	}

	//
	// One-shot modes
	//
	run := &cli{admin: srv.Admin, out: os.Stdout}
	var ran bool
	switch {
	case *setKey != "":
		ran, err = true, run.setKey(ctx, *setKey)
	case *exportPath != "":
		ran, err = true, run.export(ctx, *exportPath)
	case *importPath != "":
		ran, err = true, run.importFile(ctx, *importPath)
	case *snapshotFlag:
		ran, err = true, run.snapshot(ctx)
	case *servicesPath != "":
		ran, err = true, run.services(ctx, *servicesPath)
	case *nextMemoFlag:
		ran, err = true, run.nextMemo(ctx)
	}
	if ran {
		if err != nil {
			srv.DB.Close()
			log.Fatal().Err(err).Msg("command failed")
		}
		return
	}

	//
	// Normal server startup
	//
	if cfg.AdminAPIKey == "" {
		srv.DB.Close()
		log.Fatal().Msg("ADMIN_API_KEY is required to serve the admin API")
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("admin API listening")
		if err := srv.Echo.StartServer(srv.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Echo.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
