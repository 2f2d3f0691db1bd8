package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moovely/greener/internal/api"
	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/calculation"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/logger"
	"github.com/moovely/greener/internal/persona"
	"github.com/moovely/greener/internal/ranking"
)

const (
	shutdownTimeout = 30 * time.Second
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the comparison HTTP API",
		Long:  "Run the comparison HTTP API. Settings come from PORT, ENV, LOCATIONS_FILE, TAX_RULES_FILE, REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, SESSION_TTL and CORS_ORIGINS.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			if f, _ := cmd.Flags().GetString("locations"); f != "" {
				cfg.LocationsFile = f
			}
			if f, _ := cmd.Flags().GetString("tax-rules"); f != "" {
				cfg.TaxRulesFile = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}
	cmd.Flags().String("port", "", "Listen port (default: PORT or 8080)")
	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully
func runServer(ctx context.Context, cfg *config.ServerConfig) error {
	log := logger.New(cfg.Env)
	log.Info("Starting Moovely API", map[string]interface{}{
		"version":     api.Version,
		"environment": cfg.Env,
		"port":        cfg.Port,
	})

	table, err := config.LoadLocations(cfg.LocationsFile)
	if err != nil {
		return err
	}
	rules, err := config.LoadTaxRules(cfg.TaxRulesFile)
	if err != nil {
		return err
	}
	log.Info("Reference data loaded", map[string]interface{}{
		"locations": table.Len(),
		"source":    table.Metadata.Source,
		"tax_year":  rules.Metadata.TaxYear,
	})

	var store persona.Store = persona.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		client, err := persona.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Error("Failed to connect to Redis", err, map[string]interface{}{"addr": cfg.Redis.Addr})
			return err
		}
		defer client.Close()
		store = persona.NewRedisStore(client, cfg.Redis.SessionTTL)
		log.Info("Persona store connected", map[string]interface{}{
			"addr": cfg.Redis.Addr,
			"db":   cfg.Redis.DB,
			"ttl":  cfg.Redis.SessionTTL.String(),
		})
	} else if cfg.IsProduction() {
		log.Warn("REDIS_ADDR not set, personas are kept in memory", nil)
	} else {
		log.Info("Persona store in memory", nil)
	}

	engine := compare.NewEngine(calculation.NewTaxCalculatorWithRules(rules))
	engine.SetLogger(log)

	router := api.NewRouter(api.Dependencies{
		Locations:   table,
		Engine:      engine,
		Solver:      breakeven.NewDefaultSolver(engine),
		Ranker:      ranking.NewRanker(engine),
		Personas:    store,
		Logger:      log,
		Env:         cfg.Env,
		CORSOrigins: cfg.CORS.Origins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("Server failed to start", err, nil)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
		return err
	}

	log.Info("Server exited", nil)
	return nil
}
