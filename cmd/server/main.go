// EWC 排班引擎服务
// 主程序入口

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/supereliguy/EWC-scheduling-site/internal/config"
	"github.com/supereliguy/EWC-scheduling-site/internal/database"
	"github.com/supereliguy/EWC-scheduling-site/internal/handler"
	"github.com/supereliguy/EWC-scheduling-site/internal/metrics"
	"github.com/supereliguy/EWC-scheduling-site/internal/middleware"
	"github.com/supereliguy/EWC-scheduling-site/internal/repository"
	"github.com/supereliguy/EWC-scheduling-site/pkg/logger"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Str("env", cfg.App.Env).
		Msg("EWC 排班引擎启动")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.WithError(err).Msg("数据库初始化失败")
		os.Exit(1)
	}
	defer db.Close()

	store := repository.NewStore(db)
	engine := scheduler.NewEngine(store, scheduler.Config{
		MaxTime:         cfg.Engine.MaxTime,
		StagnationLimit: cfg.Engine.StagnationLimit,
		Workers:         cfg.Engine.Workers,
		Seed:            cfg.Engine.Seed,
	})

	mux := http.NewServeMux()
	h := handler.New(engine, store, db)
	h.Register(mux)

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.App.Port),
		Handler: middleware.Chain(mux,
			middleware.Recover,
			middleware.RequestID,
			middleware.AccessLog,
			middleware.Metrics,
		),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.App.Port).Msg("HTTP服务监听中")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Msg("HTTP服务异常退出")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("收到退出信号，开始优雅关闭")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Msg("优雅关闭失败")
	}
	logger.Info().Msg("服务已退出")
}
