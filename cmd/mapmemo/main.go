package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/mapmemo/mapmemo/internal/config"
	"github.com/mapmemo/mapmemo/internal/infra/database"
	"github.com/mapmemo/mapmemo/internal/infra/repository"
	"github.com/mapmemo/mapmemo/internal/present/rest"
	"github.com/mapmemo/mapmemo/internal/present/rest/middleware"
	"github.com/mapmemo/mapmemo/internal/service"
	"github.com/mapmemo/mapmemo/internal/usecase"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	conf, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup tracer", slog.String("error", err.Error()))
		} else {
			defer shutdown(context.Background())
		}
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	pinRepo := repository.NewPinRepository(db, mc)
	sessionRepo := repository.NewSessionRepository(rdb)

	tokenService := service.NewTokenService(conf.Auth.Secret, conf.Auth.Issuer, conf.Auth.TTL)
	authService := service.NewAuthService(tokenService, sessionRepo)
	hasher := service.NewBcryptHasher()

	accountUC := usecase.NewAccountUsecase(userRepo, profileRepo, sessionRepo, hasher, tokenService)
	profileUC := usecase.NewProfileUsecase(userRepo, profileRepo)
	friendshipUC := usecase.NewFriendshipUsecase(userRepo, profileRepo)
	pinUC := usecase.NewPinUsecase(pinRepo)

	e := echo.New()
	e.Validator = rest.NewValidator()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("mapmemo"))
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	e.Use(authMiddleware.IdentifyRequester)

	handler := rest.NewHandler(accountUC, profileUC, friendshipUC, pinUC, authService)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("mapmemo"),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
