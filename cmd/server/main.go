package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/remanmarket/erp-core/internal/adapter/handler"
	"github.com/remanmarket/erp-core/internal/adapter/messaging"
	"github.com/remanmarket/erp-core/internal/adapter/storage"
	"github.com/remanmarket/erp-core/internal/config"
	"github.com/remanmarket/erp-core/internal/core/service"
	"github.com/remanmarket/erp-core/internal/fixture"
	"github.com/remanmarket/erp-core/internal/obs"
	"github.com/remanmarket/erp-core/internal/port"
)

func main() {
	cfg := config.Load()
	logger := obs.NewLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var inventoryRepo port.InventoryRepository
	var orderRepo port.OrderRepository

	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			logger.Error("open mysql failed", "error", err)
			os.Exit(1)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			logger.Error("ping mysql failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		adapter := storage.NewMySQLAdapter(db)
		if err := adapter.EnsureSchema(ctx); err != nil {
			logger.Error("ensure schema failed", "error", err)
			os.Exit(1)
		}
		inventoryRepo = adapter
		orderRepo = adapter
		logger.Info("using mysql storage")
	} else {
		inventoryRepo = storage.NewMemoryInventory()
		orderRepo = storage.NewMemoryOrders()
		logger.Info("using in-memory storage")
	}

	var prefRepo port.PreferenceRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("ping redis failed", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		prefRepo = storage.NewRedisAdapter(rdb)
		logger.Info("using redis preferences")
	} else {
		prefRepo = storage.NewMemoryPreferences()
	}

	var publisher port.EventPublisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := messaging.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("connect amqp failed", "error", err)
			os.Exit(1)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("publishing order events", "exchange", cfg.AMQPExchange)
	}

	if err := seed(ctx, inventoryRepo, orderRepo); err != nil {
		logger.Error("seed fixtures failed", "error", err)
		os.Exit(1)
	}

	notifications := service.NewNotificationLog()
	notifications.Load(fixture.Notifications())

	inventory := service.NewInventoryService(inventoryRepo, notifications)
	cart := service.NewCart(inventory)
	orders := service.NewOrderService(orderRepo, notifications, publisher)
	preferences := service.NewPreferences(prefRepo)

	mux := http.NewServeMux()
	httpHandler := handler.NewHTTPHandler(inventory, cart, orders, notifications, preferences)
	httpHandler.Register(mux)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("http server stopped")
}

// seed loads the fixture feed once, skipping backends that already hold
// data.
func seed(ctx context.Context, inventoryRepo port.InventoryRepository, orderRepo port.OrderRepository) error {
	items, err := inventoryRepo.ListItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		for _, item := range fixture.Items() {
			if err := inventoryRepo.SaveItem(ctx, item); err != nil {
				return err
			}
		}
	}

	orders, err := orderRepo.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		for _, order := range fixture.Orders() {
			if err := orderRepo.SaveOrder(ctx, order); err != nil {
				return err
			}
		}
	}
	return nil
}
