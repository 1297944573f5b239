package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/circufert/circufert-cli/internal/aggregate"
	"github.com/circufert/circufert-cli/internal/pipeline"
	"github.com/circufert/circufert-cli/internal/wastestats"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports and allocations over a read-only JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		env, err := initEnv(ctx, cfg, "serve")
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildRouter(env, cfg.Server.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter wires the API routes over a loaded snapshot. Every request
// runs against the same snapshot; query parameters only change options.
func buildRouter(env *runEnv, origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/report", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, pipeline.Run(env.Snapshot, env.Options))
		})

		r.Get("/allocations", func(w http.ResponseWriter, req *http.Request) {
			opts, err := allocationOptions(env.Options, req)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, pipeline.Allocate(env.Snapshot, opts))
		})

		r.Get("/export.csv", func(w http.ResponseWriter, _ *http.Request) {
			recs := pipeline.Recommend(env.Snapshot.Agricultural.FertilizerCompanies, env.Snapshot.Catalog.Fertilizers)
			table := aggregate.ExportTable(aggregate.SummarizeAll(recs))

			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="fertilizer_requirements.csv"`)
			if err := aggregate.WriteCSV(w, table); err != nil {
				zap.L().Error("export csv failed", zap.Error(err))
			}
		})

		r.Get("/waste-status", func(w http.ResponseWriter, _ *http.Request) {
			period, projection := env.Options.Period, env.Options.Projection
			if period.IsZero() {
				period = wastestats.DefaultPeriod
			}
			if projection.IsZero() {
				projection = wastestats.DefaultProjection
			}
			writeJSON(w, http.StatusOK, wastestats.ComputeStatus(&env.Snapshot.FoodService, period, projection))
		})
	})

	return r
}

// allocationOptions applies the type, force_full and pool_kg query
// parameters over base. type matches establishment types exactly. pool_kg=0
// behaves like an absent pool_kg and derives the pool from the food-service
// data for the period; an explicitly empty pool cannot be requested.
func allocationOptions(base pipeline.Options, req *http.Request) (pipeline.Options, error) {
	opts := base
	q := req.URL.Query()

	if t := q.Get("type"); t != "" {
		opts.EstablishmentType = t
	}
	if v := q.Get("force_full"); v != "" {
		force, err := strconv.ParseBool(v)
		if err != nil {
			return opts, eris.Errorf("invalid force_full %q", v)
		}
		opts.ForceFullAllocation = force
	}
	if v := q.Get("pool_kg"); v != "" {
		pool, err := strconv.ParseFloat(v, 64)
		if err != nil || pool < 0 {
			return opts, eris.Errorf("invalid pool_kg %q", v)
		}
		opts.PoolKg = pool
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response failed", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
