package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/config"
	"github.com/palemoky/hilo-trainer/internal/logger"
	"github.com/palemoky/hilo-trainer/internal/sound"
	"github.com/palemoky/hilo-trainer/internal/ui"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

const heartbeatInterval = 15 * time.Second

type options struct {
	configPath string
	server     string
	decks      int
	seed       uint64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "hilo",
		Short:         "Hi-Lo 算牌训练",
		Long:          "在终端里练习二十一点的 Hi-Lo 算牌法。默认离线训练，指定 --server 时连接训练服务器。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("decks") && opts.decks < 1 {
				return fmt.Errorf("--decks must be at least 1, got %d", opts.decks)
			}
			return run(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "配置文件路径")
	cmd.Flags().StringVar(&opts.server, "server", "", "训练服务器地址，如 localhost:1780")
	cmd.Flags().IntVar(&opts.decks, "decks", 0, "牌靴中的牌副数")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "洗牌随机种子，0 表示随机")
	return cmd
}

func run(parent context.Context, cmd *cobra.Command, opts options) error {
	// 终端界面占用 stdout，日志只写文件
	if err := logger.Init(); err != nil {
		log.SetOutput(io.Discard)
	}
	defer logger.Close()

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("decks") {
		cfg.Trainer.NumDecks = opts.decks
	}
	if cmd.Flags().Changed("seed") {
		cfg.Trainer.Seed = opts.seed
	}
	cfg.Validate()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM)
	defer stop()

	backend, err := newBackend(ctx, cfg, opts.server)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	uiOpts := []model.Option{model.WithAnimation(cfg.Trainer.AnimationEnabled())}
	if cfg.Sound.Enabled {
		sm := sound.NewSoundManager(cfg.Sound.Dir)
		if err := sm.Init(); err != nil {
			// 没有声卡时静音运行
			logger.LogError("sound init: %v", err)
		}
		defer sm.Close()
		uiOpts = append(uiOpts, model.WithSound(sm))
	}

	logger.LogInfo("trainer started: decks=%d remote=%t", cfg.Trainer.NumDecks, opts.server != "")
	return ui.Run(ctx, backend, uiOpts...)
}

func newBackend(ctx context.Context, cfg *config.Config, server string) (client.Backend, error) {
	if server == "" {
		var rng card.Shuffler
		if cfg.Trainer.Seed != 0 {
			rng = card.NewSeededRand(cfg.Trainer.Seed)
		}
		return client.NewLocalBackend(cfg.Trainer.NumDecks, rng), nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	remote, err := client.NewRemoteBackend(dialCtx, fmt.Sprintf("ws://%s/ws", server), cfg.Trainer.NumDecks)
	if err != nil {
		return nil, fmt.Errorf("无法连接到服务器 %s: %w", server, err)
	}
	remote.StartHeartbeat(ctx, heartbeatInterval)
	return remote, nil
}
