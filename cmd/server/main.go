package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mesaYaConsole/internal/config"
	customerusecase "mesaYaConsole/internal/modules/customers/application/usecase"
	customerinfra "mesaYaConsole/internal/modules/customers/infrastructure"
	customertransport "mesaYaConsole/internal/modules/customers/interface"
	dashboardusecase "mesaYaConsole/internal/modules/dashboard/application/usecase"
	dashboardinfra "mesaYaConsole/internal/modules/dashboard/infrastructure"
	dashboardtransport "mesaYaConsole/internal/modules/dashboard/interface"
	hometransport "mesaYaConsole/internal/modules/home/interface"
	realtimehandler "mesaYaConsole/internal/modules/realtime/application/handler"
	realtimeusecase "mesaYaConsole/internal/modules/realtime/application/usecase"
	realtimeinfra "mesaYaConsole/internal/modules/realtime/infrastructure"
	realtimetransport "mesaYaConsole/internal/modules/realtime/interface"
	reservationport "mesaYaConsole/internal/modules/reservations/application/port"
	reservationusecase "mesaYaConsole/internal/modules/reservations/application/usecase"
	reservationinfra "mesaYaConsole/internal/modules/reservations/infrastructure"
	reservationtransport "mesaYaConsole/internal/modules/reservations/interface"
	tableusecase "mesaYaConsole/internal/modules/tables/application/usecase"
	tableinfra "mesaYaConsole/internal/modules/tables/infrastructure"
	tabletransport "mesaYaConsole/internal/modules/tables/interface"
	"mesaYaConsole/internal/platform/broker"
	"mesaYaConsole/internal/platform/metrics"
	"mesaYaConsole/internal/platform/restapi"
	"mesaYaConsole/internal/shared/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	writer, closer, logger, err := logging.Open(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
		Directory: cfg.Logging.Directory,
	}, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger)
	log.SetOutput(writer)
	log.SetFlags(0)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("backend configured", slog.String("baseUrl", cfg.Backend.BaseURL), slog.Duration("timeout", cfg.Backend.Timeout))

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.New()
	}

	// Realtime
	hub := realtimeinfra.NewHub(recorder)
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)
	registry := realtimeinfra.NewHandlerRegistry()
	topics := make([]string, 0)
	for entity, topicList := range cfg.Kafka.Topics {
		for _, topic := range topicList {
			registry.Register(realtimehandler.NewEntityStreamHandler(entity, topic, cfg.Kafka.AllowedActions, broadcastUC))
			topics = append(topics, topic)
		}
	}

	// Gateways
	rest := restapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, nil, restapi.WithObserver(recorder))
	tableGateway := tableinfra.NewTableHTTPClient(rest)
	customerGateway := customerinfra.NewCustomerHTTPClient(rest)
	reservationGateway := reservationinfra.NewReservationHTTPClient(rest)

	// Use cases
	var workflowMetrics reservationport.WorkflowMetrics
	if recorder != nil {
		workflowMetrics = recorder
	}
	tablesUC := tableusecase.NewManageTablesUseCase(tableGateway, broadcastUC)
	rosterUC := customerusecase.NewRosterUseCase(customerGateway, reservationGateway, broadcastUC)
	bookUC := reservationusecase.NewBookReservationUseCase(reservationGateway, customerGateway, tableGateway, broadcastUC, workflowMetrics)
	formUC := reservationusecase.NewBookingFormUseCase(reservationGateway, tableGateway, bookUC.NewSubmissionID)
	lifecycleUC := reservationusecase.NewLifecycleUseCase(reservationGateway, broadcastUC, workflowMetrics)
	dashboardUC := dashboardusecase.NewDashboardUseCase(reservationGateway, tableGateway, lifecycleUC, dashboardinfra.XLSXExporter{}, cfg.Location())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(writer)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("requestId", v.RequestID),
			}
			if v.Error != nil {
				slog.Warn("http request failed", append(attrs, slog.Any("error", v.Error))...)
				return nil
			}
			slog.Info("http request", attrs...)
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "clients": hub.ClientCount()})
	})
	if recorder != nil {
		e.GET("/metrics", echo.WrapHandler(recorder.Handler()))
	}
	e.GET("/ws/console", realtimetransport.NewWebsocketHandler(hub))

	api := e.Group("/api", restapi.ForwardBearerToken())
	hometransport.NewHandler(cfg.Console.RestaurantName).Register(api)
	tabletransport.NewHandler(tablesUC).Register(api)
	customertransport.NewHandler(rosterUC).Register(api)
	reservationtransport.NewHandler(bookUC, formUC, lifecycleUC).Register(api)
	dashboardtransport.NewHandler(dashboardUC).Register(api)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumers := broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, topics)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", slog.Any("error", err))
	}
	consumers.Wait()
	slog.Info("shutdown complete")
}
