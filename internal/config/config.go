package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultNumDecks       = 1
	defaultHost           = "0.0.0.0"
	defaultPort           = 1780
	defaultMaxConnections = 1000
	defaultRedisAddr      = "localhost:6379"
	defaultSessionTTL     = 10 // 分钟
)

// Config 训练器配置，客户端和服务端共用
type Config struct {
	Trainer TrainerConfig `yaml:"trainer"`
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Sound   SoundConfig   `yaml:"sound"`
}

// TrainerConfig 发牌与计数设置
type TrainerConfig struct {
	NumDecks  int    `yaml:"num_decks"`
	Seed      uint64 `yaml:"seed"`      // 0 表示每次随机洗牌
	Animation *bool  `yaml:"animation"` // 未设置时开启
}

// AnimationEnabled reports whether the card slide-in animation should run.
func (c *TrainerConfig) AnimationEnabled() bool {
	return c.Animation == nil || *c.Animation
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// Addr returns host:port for the HTTP listener.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	SessionTTL int    `yaml:"session_ttl"` // 断线会话保留时间（分钟）
}

// SessionTTLDuration 返回会话快照的过期时长
func (c *RedisConfig) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"` // 自定义音效目录，为空时使用内置音效
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	cfg.Validate()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{
		Sound: SoundConfig{Enabled: true},
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	cfg.Validate()
	return cfg
}

// Validate clamps values that would break the trainer.
func (c *Config) Validate() {
	if c.Trainer.NumDecks < 1 {
		c.Trainer.NumDecks = defaultNumDecks
	}
	if c.Server.MaxConnections < 1 {
		c.Server.MaxConnections = defaultMaxConnections
	}
	if c.Redis.SessionTTL < 1 {
		c.Redis.SessionTTL = defaultSessionTTL
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
}

// applyEnv 环境变量覆盖配置文件
func (c *Config) applyEnv() {
	envString("SERVER_HOST", &c.Server.Host)
	envInt("SERVER_PORT", &c.Server.Port)
	envInt("SERVER_MAX_CONNECTIONS", &c.Server.MaxConnections)
	envString("REDIS_ADDR", &c.Redis.Addr)
	envString("REDIS_PASSWORD", &c.Redis.Password)
	envInt("REDIS_DB", &c.Redis.DB)
	envInt("REDIS_SESSION_TTL", &c.Redis.SessionTTL)
	envInt("TRAINER_NUM_DECKS", &c.Trainer.NumDecks)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
