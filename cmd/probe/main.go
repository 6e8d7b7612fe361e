package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/frizzly/api/pkg/config"
	"github.com/frizzly/api/pkg/discovery"
	"github.com/frizzly/api/pkg/logger"
	"github.com/frizzly/api/probe"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "probe",
	Short:        "FRIZZLY status probe",
	Long:         "Serves /check_status, a reachability check for the alternate MongoDB store.",
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

	log.Info("Starting status probe",
		zap.Int("port", cfg.Probe.Port),
		zap.Int("grpc_port", cfg.Probe.GRPCPort),
		zap.Duration("timeout", cfg.Probe.Timeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := probe.NewService(cfg, log.Named("probe"), probe.NewMongoChecker(cfg.Probe.MongoURI, cfg.Probe.Timeout))
	svc.SetupRoutes()

	errCh := make(chan error, 2)
	go func() {
		if err := svc.Start(); err != nil {
			errCh <- err
		}
	}()

	if cfg.Probe.GRPCPort > 0 {
		lis, err := net.Listen("tcp", cfg.Probe.GRPCAddr())
		if err != nil {
			return fmt.Errorf("failed to listen for gRPC: %w", err)
		}
		go func() {
			if err := svc.StartGRPC(lis); err != nil {
				errCh <- err
			}
		}()
		go svc.Watch(ctx, cfg.Probe.Interval)
	}

	sd, err := discovery.NewServiceDiscovery(&cfg.Etcd)
	if err != nil {
		log.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
	}
	instance := &discovery.ServiceInstance{
		Name: discovery.StatusService,
		Host: discovery.AdvertiseHost(cfg.Probe.Host),
		Port: cfg.Probe.Port,
	}
	if sd != nil {
		if err := sd.Register(ctx, instance); err != nil {
			log.Warn("Failed to register with etcd", zap.Error(err))
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-sigCh:
		log.Info("Received shutdown signal")
	case runErr = <-errCh:
		log.Error("Status probe error", zap.Error(runErr))
	}
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
	defer cancelShutdown()

	if err := svc.Shutdown(shutdownCtx); err != nil {
		log.Warn("Status probe shutdown incomplete", zap.Error(err))
	}

	if sd != nil {
		if err := sd.Deregister(shutdownCtx, instance); err != nil {
			log.Warn("Failed to deregister from etcd", zap.Error(err))
		}
		sd.Close()
	}

	log.Info("Status probe stopped")
	return runErr
}
