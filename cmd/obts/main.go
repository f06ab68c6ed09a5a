package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/futuretech6/order-book-trading-system/internal/engine"
	"github.com/futuretech6/order-book-trading-system/internal/feed"
	"github.com/futuretech6/order-book-trading-system/internal/matching"
	"github.com/futuretech6/order-book-trading-system/pkg/config"
	"github.com/futuretech6/order-book-trading-system/pkg/logger"
	"github.com/futuretech6/order-book-trading-system/pkg/metrics"
)

const serviceName = "obts"

func main() {
	fs := pflag.NewFlagSet(serviceName, pflag.ExitOnError)
	cfgPath := fs.StringP("config", "c", "", "config file, default config/obts.yaml")
	_ = fs.Parse(os.Args[1:])

	// 收到 SIGINT/SIGTERM 停止喂单，仍然输出最终快照
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *cfgPath, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string, stdin io.Reader, stdout io.Writer) error {
	// ========= 1) 配置 =========
	cfg := &Config{}
	var startPolicy matching.PriorityPolicy
	onChange := func() {
		logger.SetLevel(cfg.Log.Level)
		logger.Info(context.Background(), "config reloaded", zap.String("log_level", logger.Level().String()))
		if p, err := cfg.policy(); err != nil || p != startPolicy {
			logger.Warn(context.Background(), "trading.priority is fixed at startup, change ignored",
				zap.String("configured", cfg.Trading.Priority),
				zap.Stringer("effective", startPolicy),
			)
		}
	}
	var err error
	if cfgPath == "" {
		_, err = config.LoadAndWatch(serviceName, cfg, onChange)
	} else {
		_, err = config.LoadFileAndWatch(serviceName, cfgPath, cfg, onChange)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	startPolicy, err = cfg.policy()
	if err != nil {
		return err
	}

	// ========= 2) 日志 =========
	logger.InitWithFile(cfg.serviceName(), cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()
	runID := uuid.NewString()
	logger.Log = logger.Log.With(zap.String("run_id", runID))
	logger.Info(ctx, "starting", zap.Stringer("priority", startPolicy))

	// ========= 3) 指标 =========
	// 每次 run 独立 registry，避免重复注册
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegisterTo(reg)

	// ========= 4) 撮合 =========
	actor := engine.NewActor(matching.New(startPolicy), cfg.actorConfig())
	// actor 不跟随信号退出，喂单结束后还要取快照
	actorCtx, stopActor := context.WithCancel(context.Background())
	defer func() {
		stopActor()
		<-actor.Done()
	}()
	actor.Start(actorCtx)

	src, closeSrc, err := cfg.openSource(stdin)
	if err != nil {
		return err
	}
	defer func() { _ = closeSrc() }()

	// ========= 5) 喂单 + metrics server =========
	g, gctx := errgroup.WithContext(ctx)
	srvCtx, stopSrv := context.WithCancel(gctx)
	defer stopSrv()

	g.Go(func() error {
		defer stopSrv()
		n, err := feed.Pump(gctx, src, actor, cfg.pumpOptions(gctx)...)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			logger.Warn(ctx, "feed interrupted", zap.Int("orders", n))
			return nil
		}
		return err
	})

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info(ctx, "metrics listening", zap.String("addr", cfg.Metrics.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-srvCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// ========= 6) 最终快照 =========
	snapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	snap, err := actor.Snapshot(snapCtx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	logger.Info(ctx, "finished",
		zap.Uint64("seq", actor.Seq()),
		zap.Uint64("processed", actor.Processed()),
		zap.Uint64("rejected", actor.Rejected()),
		zap.Int("ask_levels", len(snap.Asks)),
		zap.Int("bid_levels", len(snap.Bids)),
	)

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", b)
	return err
}
