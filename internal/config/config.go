package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config 服务端与客户端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"   envPrefix:"SERVER_"`
	Security SecurityConfig `yaml:"security" envPrefix:"SECURITY_"`
	Redis    RedisConfig    `yaml:"redis"    envPrefix:"REDIS_"`
	Game     GameConfig     `yaml:"game"     envPrefix:"GAME_"`
	Client   ClientConfig   `yaml:"client"   envPrefix:"CLIENT_"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"            env:"HOST"`
	Port           int    `yaml:"port"            env:"PORT"`
	MaxConnections int    `yaml:"max_connections" env:"MAX_CONNECTIONS"`
}

// SecurityConfig 连接安全配置
type SecurityConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","` // 为空或含 "*" 时不限制
	ConnPerSecond  int      `yaml:"conn_per_second" env:"CONN_PER_SECOND"`                  // 每个 IP 每秒最多建立的连接数
	ConnPerMinute  int      `yaml:"conn_per_minute" env:"CONN_PER_MINUTE"`                  // 每个 IP 每分钟最多建立的连接数
	BanDuration    int      `yaml:"ban_duration"    env:"BAN_DURATION"`                     // 超限后的封禁时长（秒）
}

// RedisConfig Redis 配置，关闭时排行榜不可用
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"ENABLED"`
	Addr     string `yaml:"addr"     env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db"       env:"DB"`
}

// GameConfig 牌局配置
type GameConfig struct {
	DrawCount        int `yaml:"draw_count"         env:"DRAW_COUNT"`         // 每次翻牌张数（1 或 3）
	HistoryLimit     int `yaml:"history_limit"      env:"HISTORY_LIMIT"`      // 可撤销步数
	SessionTimeout   int `yaml:"session_timeout"    env:"SESSION_TIMEOUT"`    // 断线会话保留时间（分钟）
	MessageRateLimit int `yaml:"message_rate_limit" env:"MESSAGE_RATE_LIMIT"` // 每秒最多消息数
}

// ClientConfig 终端客户端配置
type ClientConfig struct {
	ServerAddr string `yaml:"server_addr" env:"SERVER_ADDR"`
	Sound      bool   `yaml:"sound"       env:"SOUND"`
}

// SessionTimeoutDuration 返回会话保留时长
func (c *GameConfig) SessionTimeoutDuration() time.Duration {
	return time.Duration(c.SessionTimeout) * time.Minute
}

// BanDurationTime 返回封禁时长
func (c *SecurityConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// Addr 返回监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load 加载配置文件，再用环境变量覆盖
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置（环境变量仍然生效）
func Default() *Config {
	cfg := &Config{
		Redis:  RedisConfig{Enabled: true},
		Client: ClientConfig{Sound: true},
	}
	// 默认配置不因环境变量格式错误而失败
	_ = env.Parse(cfg)
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 1780
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 1000
	}
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
	if c.Security.ConnPerSecond == 0 {
		c.Security.ConnPerSecond = 5
	}
	if c.Security.ConnPerMinute == 0 {
		c.Security.ConnPerMinute = 60
	}
	if c.Security.BanDuration == 0 {
		c.Security.BanDuration = 60
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Game.DrawCount != 1 && c.Game.DrawCount != 3 {
		c.Game.DrawCount = 3
	}
	if c.Game.HistoryLimit <= 0 {
		c.Game.HistoryLimit = 50
	}
	if c.Game.SessionTimeout == 0 {
		c.Game.SessionTimeout = 10
	}
	if c.Game.MessageRateLimit == 0 {
		c.Game.MessageRateLimit = 20
	}
	if c.Client.ServerAddr == "" {
		c.Client.ServerAddr = "ws://localhost:1780/ws"
	}
}
