package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"authors-probe/docs"
	"authors-probe/internal/config"
	"authors-probe/internal/model"
	"authors-probe/internal/router"
	"authors-probe/internal/service"
	"authors-probe/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var startServer = func(ctx context.Context, e *echo.Echo, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func mockAPICmd(errOut io.Writer) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Serve an in-memory stand-in of the authors API",
		Long: `mockapi serves /api/register, /api/login and bearer-protected /api/authors
from memory. One user is seeded from MOCKAPI_USERNAME / MOCKAPI_PASSWORD;
tokens are HS512 JWTs signed with JWT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.MockPort = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, flush := newLogger(cfg, errOut)
			defer flush()

			ctx, cancel := signalContext()
			defer cancel()

			return runMockAPI(ctx, cfg, logger)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8000, "Listen port (MOCKAPI_PORT)")
	return cmd
}

func newEcho(logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("url", v.URI).
				Int("status", v.Status).
				Dur("duration", v.Latency).
				Msg("HTTP request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	return e
}

// runMockAPI seeds the store and serves the API until ctx is done.
// Swagger docs are regenerated with `swag init -g cmd/probe/mockapi.go`.
//
// @title        Authors Stand-in API
// @version      1.0
// @description  probe mockapi 提供的記憶體版作者 API
// @host         localhost:8000
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func runMockAPI(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}

	s := store.NewMemory()
	if cfg.MockUsername != "" {
		hash, err := service.HashPassword(cfg.MockPassword)
		if err != nil {
			return err
		}
		if _, err := s.CreateUser(ctx, &model.User{Username: cfg.MockUsername, PasswordHash: hash}); err != nil {
			return err
		}
		logger.Debug().Str("username", cfg.MockUsername).Msg("Seeded user")
	}

	e := newEcho(logger)
	router.Setup(e, s, []byte(cfg.JWTSecret))

	// Swagger UI
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.MockPort)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.MockPort)
	logger.Info().Str("addr", addr).Msg("Starting stand-in API")
	return startServer(ctx, e, addr)
}
