package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bpl-lane/mosaic-relayer/internal/alert"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/evm"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/evm/rpc"
	"github.com/bpl-lane/mosaic-relayer/internal/chain/ratelimit"
	"github.com/bpl-lane/mosaic-relayer/internal/circuitbreaker"
	"github.com/bpl-lane/mosaic-relayer/internal/config"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
	"github.com/bpl-lane/mosaic-relayer/internal/ops"
	"github.com/bpl-lane/mosaic-relayer/internal/relay"
	"github.com/bpl-lane/mosaic-relayer/internal/tracing"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("relayer exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, "mosaic-relayer", cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	valueAdapter := newValueAdapter(cfg, logger)
	utilityAdapter := newUtilityAdapter(cfg, logger)

	reporter := relay.NewReporter(newAlerter(cfg, logger), logger)
	service := relay.NewService(relay.Config{
		OperatorAddress: cfg.Operator.Address,
		NativeTokenID:   cfg.Relay.NativeTokenID,
		DelayBlocks:     cfg.Relay.DelayBlocks,
		PollInterval:    cfg.PollInterval(),
		MaxScanRange:    cfg.Relay.MaxScanRange,
	}, valueAdapter, valueAdapter, valueAdapter, utilityAdapter, reporter, logger)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return service.Run(gCtx)
	})

	opsServer := ops.NewServer(cfg.Server.HealthPort, service.Queue(), logger)
	g.Go(func() error {
		return opsServer.Run(gCtx)
	})

	logger.Info("relayer started",
		"operator", cfg.Operator.Address,
		"delay_blocks", cfg.Relay.DelayBlocks,
	)
	return g.Wait()
}

func newValueAdapter(cfg *config.Config, logger *slog.Logger) *evm.ValueChainAdapter {
	client := rpc.NewClient(cfg.ValueChain.RPCURL, logger)
	limiter := ratelimit.NewLimiter(cfg.ValueChain.RPCRatePerSec, cfg.ValueChain.RPCBurst, model.ChainValue.String())
	breaker := circuitbreaker.New(model.ChainValue.String(), 5, 30*time.Second, logger)
	return evm.NewValueChainAdapter(
		client,
		cfg.ValueChain.GatewayAddress,
		cfg.Operator.Address,
		cfg.Operator.Passphrase,
		limiter,
		breaker,
		logger,
	)
}

func newUtilityAdapter(cfg *config.Config, logger *slog.Logger) *evm.UtilityChainAdapter {
	client := rpc.NewClient(cfg.UtilityChain.RPCURL, logger)
	limiter := ratelimit.NewLimiter(cfg.UtilityChain.RPCRatePerSec, cfg.UtilityChain.RPCBurst, model.ChainUtility.String())
	breaker := circuitbreaker.New(model.ChainUtility.String(), 5, 30*time.Second, logger)
	return evm.NewUtilityChainAdapter(
		client,
		cfg.UtilityChain.GatewayAddress,
		cfg.UtilityChain.RegistryAddress,
		cfg.Operator.Address,
		cfg.Operator.Passphrase,
		limiter,
		breaker,
		logger,
	)
}

func newAlerter(cfg *config.Config, logger *slog.Logger) alert.Alerter {
	var channels []alert.Alerter
	if cfg.Alert.SlackWebhookURL != "" {
		channels = append(channels, alert.NewSlackAlerter(cfg.Alert.SlackWebhookURL))
	}
	if cfg.Alert.WebhookURL != "" {
		channels = append(channels, alert.NewWebhookAlerter(cfg.Alert.WebhookURL))
	}
	if len(channels) == 0 {
		return nil
	}
	return alert.NewMultiAlerter(cfg.AlertCooldown(), logger, channels...)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
