// Command icrc7d serves an ICRC-7 ledger over gRPC.
//
// State lives in memory; every successful mutation is snapshotted to the
// configured store, and startup restores the latest snapshot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"gopkg.in/yaml.v3"

	"github.com/holykol/icrc7"
	"github.com/holykol/icrc7/grpcledger"
	"github.com/holykol/icrc7/store"
	"github.com/holykol/icrc7/store/localfs"
	"github.com/holykol/icrc7/store/sqlitestore"
)

type storeConfig struct {
	// Backend is "localfs" or "sqlite".
	Backend string `yaml:"backend"`
	// Path is the snapshot directory (localfs) or database file (sqlite).
	Path string `yaml:"path"`
}

type collectionConfig struct {
	icrc7.InitArgs `yaml:",inline"`
	// ImageFile, when set, is read into the collection image at first init.
	ImageFile string `yaml:"image_file"`
}

type config struct {
	Listen        string           `yaml:"listen"`
	MetricsListen string           `yaml:"metrics_listen"`
	LogLevel      string           `yaml:"log_level"`
	Store         storeConfig      `yaml:"store"`
	Collection    collectionConfig `yaml:"collection"`
}

func loadConfig(path string) (*config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &config{
		Listen:   "127.0.0.1:7701",
		LogLevel: "info",
		Store:    storeConfig{Backend: "localfs", Path: "./icrc7-data"},
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func openStore(cfg storeConfig) (store.Store, error) {
	switch cfg.Backend {
	case "localfs":
		return localfs.New(cfg.Path)
	case "sqlite":
		return sqlitestore.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want localfs or sqlite)", cfg.Backend)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// loadLedger restores the latest snapshot, or initializes a fresh collection
// when the store is empty.
func loadLedger(ctx context.Context, snapshots store.Store, cfg collectionConfig, logger *slog.Logger) (*icrc7.Ledger, error) {
	saved, err := snapshots.Load(ctx)
	if err == nil {
		ledger, rerr := icrc7.RestoreSnapshot(saved)
		if rerr != nil {
			return nil, rerr
		}
		logger.Info("restored ledger snapshot", "tokens", ledger.TotalSupply())
		return ledger, nil
	}
	if !store.IsNoSnapshot(err) {
		return nil, err
	}

	args := cfg.InitArgs
	if cfg.ImageFile != "" {
		img, rerr := os.ReadFile(cfg.ImageFile)
		if rerr != nil {
			return nil, fmt.Errorf("read collection image: %w", rerr)
		}
		args.Image = img
	}
	ledger, err := icrc7.New(args)
	if err != nil {
		return nil, err
	}
	logger.Info("initialized new collection", "name", args.Name, "symbol", ledger.Symbol())
	return ledger, nil
}

type metrics struct {
	registry *prometheus.Registry
	rpcs     *prometheus.CounterVec
	saves    prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "icrc7_rpcs_total",
			Help: "Ledger RPCs handled, by method and status code.",
		}, []string{"method", "code"}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "icrc7_snapshot_saves_total",
			Help: "Snapshots persisted after mutations.",
		}),
	}
	m.registry.MustRegister(
		m.rpcs,
		m.saves,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) unaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	m.rpcs.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	return resp, err
}

func main() {
	fs := flag.NewFlagSet("icrc7d", flag.ExitOnError)
	configPath := fs.String("config", "icrc7d.yaml", "path to the daemon config")
	listen := fs.String("listen", "", "listen address (overrides config)")
	metricsListen := fs.String("metrics-listen", "", "metrics listen address (overrides config)")
	_ = fs.Parse(os.Args[1:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *metricsListen != "" {
		cfg.MetricsListen = *metricsListen
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := serve(cfg, logger); err != nil {
		logger.Error("daemon failed", "err", err)
		os.Exit(1)
	}
}

func serve(cfg *config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer snapshots.Close()

	ledger, err := loadLedger(ctx, snapshots, cfg.Collection, logger)
	if err != nil {
		return err
	}

	m := newMetrics()
	server := &grpcledger.Server{
		Ledger: ledger,
		Persist: func(ctx context.Context, snapshot []byte) error {
			if err := snapshots.Save(ctx, snapshot); err != nil {
				return err
			}
			m.saves.Inc()
			return nil
		},
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	defer lis.Close()

	gs := grpc.NewServer(grpc.UnaryInterceptor(m.unaryInterceptor))
	grpcledger.RegisterLedgerServer(gs, server)

	errCh := make(chan error, 2)
	go func() {
		logger.Info("ledger listening", "addr", lis.Addr().String(), "backend", cfg.Store.Backend)
		errCh <- gs.Serve(lis)
	}()

	var metricsSrv *http.Server
	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: cfg.MetricsListen, Handler: mux}
		go func() {
			logger.Info("metrics listening", "addr", cfg.MetricsListen)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	gs.GracefulStop()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(context.Background())
	}
	return nil
}
