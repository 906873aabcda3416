package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appcart "github.com/floramart/floramart/internal/application/cart"
	apporder "github.com/floramart/floramart/internal/application/order"
	apppayment "github.com/floramart/floramart/internal/application/payment"
	"github.com/floramart/floramart/internal/config"
	"github.com/floramart/floramart/internal/infrastructure/audit"
	"github.com/floramart/floramart/internal/infrastructure/bus"
	"github.com/floramart/floramart/internal/infrastructure/id"
	"github.com/floramart/floramart/internal/infrastructure/postgres"
	"github.com/floramart/floramart/internal/infrastructure/vnpay"
	httppresentation "github.com/floramart/floramart/internal/presentation/http"
	"github.com/floramart/floramart/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load(getenvDefault("CONFIG_FILE", "app.env"))
	if err != nil {
		panic(err)
	}

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	db, err := postgres.Open(cfg.DSN())
	if err != nil {
		logger.Fatal("db_open_failed", zap.Error(err))
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Fatal("db_migrate_failed", zap.Error(err))
	}

	orderRepo := postgres.NewOrderRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	voucherRepo := postgres.NewVoucherRepository(db)
	addressRepo := postgres.NewAddressRepository(db)
	txManager := postgres.NewTxManager(db)

	gateway := vnpay.NewGateway(vnpay.Config{
		TmnCode:    cfg.VnpTmnCode,
		HashSecret: cfg.VnpHashSecret,
		BaseURL:    cfg.VnpBaseURL,
		ReturnURL:  cfg.VnpReturnURL,
	})
	idGenerator := id.NewUUIDGenerator()

	httpMetrics := httppresentation.NewMetrics(prometheus.DefaultRegisterer)
	ordersPlaced := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed.",
		},
		[]string{"payment_method"},
	)
	paymentsReconciled := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_reconciled_total",
			Help: "Count of gateway callbacks applied, by final status.",
		},
		[]string{"status"},
	)
	prometheus.MustRegister(ordersPlaced, paymentsReconciled)

	eventBus := bus.New(logger)
	eventBus.Start(context.Background())
	defer eventBus.Stop(context.Background())

	auditWorker := audit.New(eventBus, logger, ordersPlaced, paymentsReconciled)
	auditWorker.Start()

	orderService := apporder.NewService(
		orderRepo, cartRepo, catalogRepo, voucherRepo, addressRepo,
		txManager, gateway, idGenerator, eventBus,
	)
	paymentService := apppayment.NewService(orderRepo, cartRepo, gateway, eventBus)
	cartService := appcart.NewService(cartRepo, catalogRepo, idGenerator)

	server := httppresentation.NewServer(
		orderService, paymentService, cartService,
		logger, httpMetrics, cfg.AuthTokenKey,
		promhttp.Handler(),
	)

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: server.Engine(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start", zap.String("addr", httpServer.Addr))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
