package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frizzly/api/gateway"
	"github.com/frizzly/api/pkg/config"
	"github.com/frizzly/api/pkg/discovery"
	"github.com/frizzly/api/pkg/logger"
	"github.com/frizzly/api/pkg/metrics"
	"github.com/frizzly/api/pkg/repository"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "gateway",
	Short:        "FRIZZLY API gateway",
	Long:         "Serves the orders, products, users and analytics REST API on top of the document store.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to the YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting API Gateway",
		zap.Int("port", cfg.Gateway.Port),
		zap.String("host", cfg.Gateway.Host),
		zap.String("store", cfg.Store.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The gateway keeps serving health checks without a store.
	store, err := repository.Open(ctx, cfg, log.Named("store"))
	if err != nil {
		log.Error("Failed to open document store, data endpoints will answer 503", zap.Error(err))
	}
	store = repository.Instrument(store, metrics.ObserveStore)

	sd, err := discovery.NewServiceDiscovery(&cfg.Etcd)
	if err != nil {
		log.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
	}
	instance := &discovery.ServiceInstance{
		Name: discovery.GatewayService,
		Host: discovery.AdvertiseHost(cfg.Gateway.Host),
		Port: cfg.Gateway.Port,
	}

	// A nil *ServiceDiscovery must not become a non-nil interface.
	var locator gateway.ServiceLocator
	if sd != nil {
		locator = sd
	}

	gw := gateway.NewGateway(cfg, log.Named("gateway"), store, locator)
	gw.SetupRoutes()

	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	if sd != nil {
		if err := sd.Register(ctx, instance); err != nil {
			log.Warn("Failed to register with etcd", zap.Error(err))
		}
	}

	log.Info("Gateway started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-sigCh:
		log.Info("Received shutdown signal")
	case runErr = <-gwErr:
		log.Error("Gateway error", zap.Error(runErr))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
	defer cancelShutdown()

	if err := gw.Shutdown(shutdownCtx); err != nil {
		log.Warn("Gateway shutdown incomplete", zap.Error(err))
	}

	if sd != nil {
		if err := sd.Deregister(shutdownCtx, instance); err != nil {
			log.Warn("Failed to deregister from etcd", zap.Error(err))
		}
		sd.Close()
	}

	if store != nil {
		if err := store.Close(shutdownCtx); err != nil {
			log.Warn("Failed to close document store", zap.Error(err))
		}
	}

	log.Info("Gateway stopped")
	return runErr
}
