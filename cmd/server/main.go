package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/palemoky/hilo-trainer/internal/config"
	"github.com/palemoky/hilo-trainer/internal/logger"
	"github.com/palemoky/hilo-trainer/internal/server"
	"github.com/palemoky/hilo-trainer/internal/server/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "hilo-server",
		Short:         "Hi-Lo 算牌训练服务器",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "配置文件路径")
	return cmd
}

func run(parent context.Context, configPath string) error {
	logger.InitStderr()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := storage.NewRedisStore(rdb)
	defer func() { _ = rdb.Close() }()

	pingCtx, cancel := context.WithTimeout(parent, 3*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		// 没有 Redis 也能训练，只是断线后无法恢复会话
		log.Printf("⚠️ Redis 不可用 (%s): %v，断线重连已禁用", cfg.Redis.Addr, err)
		store = nil
	} else if err := store.ResetOnline(pingCtx); err != nil {
		log.Printf("⚠️ 重置在线人数失败: %v", err)
	}
	cancel()

	srv := server.NewServer(cfg, store)

	// 优雅关闭
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("🃏 Hi-Lo 训练服务器启动中...")
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}
