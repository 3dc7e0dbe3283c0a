package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinichq/clinic/internal/config"
	"github.com/clinichq/clinic/internal/domain/catalog"
	"github.com/clinichq/clinic/internal/domain/patient"
	"github.com/clinichq/clinic/internal/domain/receipt"
	"github.com/clinichq/clinic/internal/domain/registry"
	"github.com/clinichq/clinic/internal/platform/auth"
	"github.com/clinichq/clinic/internal/platform/kvstore"
	"github.com/clinichq/clinic/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the doctor roster if the collection is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := newLogger(cfg)
			if err := registry.NewService(registry.NewRepoKV(store), logger).Seed(ctx); err != nil {
				return fmt.Errorf("seed doctors: %w", err)
			}
			fmt.Println("Doctor roster seeded.")
			return nil
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// openStore builds the collection store named by STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.StoreBackend {
	case "file":
		return kvstore.NewFileStore(cfg.DataDir)
	case "postgres":
		return kvstore.NewPGStore(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	case "memory":
		return kvstore.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()
	logger.Info().Str("backend", cfg.StoreBackend).Msg("store opened")

	// Domain services share the one store.
	doctorSvc := registry.NewService(registry.NewRepoKV(store), logger)
	patientSvc := patient.NewService(patient.NewRepoKV(store))
	receiptSvc := receipt.NewService(receipt.NewRepoKV(store))
	catalogSvc := catalog.NewService(doctorSvc)

	if err := doctorSvc.Seed(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed doctor roster")
	}

	pins, err := cfg.ParsedDoctorPINs()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid DOCTOR_PINS")
	}
	gate := auth.NewGate(pins, cfg.SessionSecret, time.Duration(cfg.SessionTTLMin)*time.Minute)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// API groups: apiV1 is open, doctor sits behind the session gate.
	apiV1 := e.Group("/api/v1")
	doctor := apiV1.Group("", auth.RequireDoctor(gate))

	apiV1.POST("/auth/login", loginHandler(gate))

	registry.NewHandler(doctorSvc).RegisterRoutes(apiV1)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1, doctor)
	receipt.NewHandler(receiptSvc).RegisterRoutes(doctor)
	catalog.NewHandler(catalogSvc).RegisterRoutes(doctor)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func loginHandler(gate *auth.Gate) echo.HandlerFunc {
	type loginRequest struct {
		DoctorID string `json:"doctor_id"`
		PIN      string `json:"pin"`
	}
	type loginResponse struct {
		Token    string `json:"token"`
		DoctorID string `json:"doctor_id"`
	}
	return func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		token, err := gate.Login(req.DoctorID, req.PIN)
		if errors.Is(err, auth.ErrInvalidPIN) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, loginResponse{Token: token, DoctorID: req.DoctorID})
	}
}
