package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vaultx-api/config"
	"vaultx-api/internal/adapter/gateway"
	"vaultx-api/internal/adapter/handler"
	"vaultx-api/internal/usecase"
	appmiddleware "vaultx-api/middleware"
	"vaultx-api/utils/logger"
	"vaultx-api/utils/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// Load configuration; provider settings fail fast here rather than at
	// first use.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	slog.InfoContext(ctx, "configuration loaded",
		"appwrite_endpoint", cfg.Appwrite.Endpoint,
		"plaid_env", cfg.Plaid.Environment,
		"dwolla_env", cfg.Dwolla.Environment,
		"port", cfg.Port)

	// Provider gateways
	appwrite := gateway.NewAppwriteGateway(cfg.Appwrite, 10*time.Second)
	plaid := gateway.NewPlaidGateway(cfg.Plaid)
	dwolla := gateway.NewDwollaGateway(cfg.Dwolla, 10*time.Second)

	// Usecases
	log := slog.Default()
	signUpUC := usecase.NewSignUp(appwrite, dwolla, appwrite, log)
	signInUC := usecase.NewSignIn(appwrite, log)
	currentUC := usecase.NewCurrentUser(appwrite, appwrite)
	logoutUC := usecase.NewLogout(appwrite, log)
	linkTokenUC := usecase.NewCreateLinkToken(plaid)
	linkUC := usecase.NewLinkAccount(plaid, dwolla, appwrite, log)
	listBanksUC := usecase.NewListBanks(appwrite)
	transferUC := usecase.NewTransfer(dwolla, appwrite, log)

	// Handlers
	authHandler := handler.NewAuthHandler(signUpUC, signInUC, currentUC, logoutUC)
	bankHandler := handler.NewBankHandler(currentUC, linkTokenUC, linkUC, listBanksUC)
	transferHandler := handler.NewTransferHandler(currentUC, transferUC)
	healthHandler := handler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(appmiddleware.SecurityHeaders())

	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters per endpoint group; auth endpoints are the brute-force
	// surface.
	authRL := appmiddleware.NewRateLimiter(10.0/60.0, 5) // 10 req/min
	linkRL := appmiddleware.NewRateLimiter(30.0/60.0, 5) // 30 req/min

	e.POST("/auth/sign-up", authHandler.HandleSignUp, authRL.Middleware())
	e.POST("/auth/sign-in", authHandler.HandleSignIn, authRL.Middleware())
	e.POST("/auth/logout", authHandler.HandleLogout)
	e.GET("/auth/me", authHandler.HandleMe)

	e.POST("/link/token", bankHandler.HandleCreateLinkToken, linkRL.Middleware())
	e.POST("/link/exchange", bankHandler.HandleExchange, linkRL.Middleware())
	e.GET("/banks", bankHandler.HandleListBanks)

	e.POST("/transfers", transferHandler.HandleTransfer)

	e.GET("/health", healthHandler.Handle)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting vaultx-api server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
