package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App         *App            `json:"app" yaml:"app"`
	Redis       *Redis          `json:"redis" yaml:"redis"`
	MySQL       *MySQL          `json:"mysql" yaml:"mysql"`
	Jwt         *Jwt            `json:"jwt" yaml:"jwt"`
	Hook        *Hook           `json:"hook" yaml:"hook"`
	Server      *Server         `json:"server" yaml:"server"`
	RocketMQ    *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Meilisearch *Meilisearch    `json:"meilisearch" yaml:"meilisearch"`
	Outbox      *Outbox         `json:"outbox" yaml:"outbox"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
	// Metrics sync-server 只暴露 /metrics 与 /healthz
	Metrics int `json:"metrics" yaml:"metrics"`
	// NodeID snowflake 节点号，为空时由 server id 与 pid 散列得到
	NodeID *int64 `json:"node_id" yaml:"node_id"`
}

func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load 读取 yaml 配置，.env 与环境变量优先级更高
func Load(filename string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("解析 %s 读取错误: %w", filename, err)
	}

	conf.applyEnv()
	conf.applyDefaults()
	return &conf, nil
}

func (c *Config) applyEnv() {
	if c.Meilisearch == nil {
		c.Meilisearch = &Meilisearch{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Hook == nil {
		c.Hook = &Hook{}
	}

	if v, ok := os.LookupEnv("MEILISEARCH_HOST"); ok && v != "" {
		c.Meilisearch.Host = v
	}
	if v, ok := os.LookupEnv("MEILISEARCH_API_KEY"); ok {
		c.Meilisearch.ApiKey = v
	}
	if v, ok := os.LookupEnv("MEILISEARCH_INDEX_PREFIX"); ok {
		c.Meilisearch.IndexPrefix = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		c.Jwt.Secret = v
	}
	if v, ok := os.LookupEnv("HOOK_SECRET"); ok && v != "" {
		c.Hook.Secret = v
	}
	if v, ok := os.LookupEnv("NODE_ID"); ok && v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			if c.Server == nil {
				c.Server = &Server{}
			}
			c.Server.NodeID = &id
		}
	}
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.Metrics == 0 {
		c.Server.Metrics = 9100
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 5 * time.Second
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	if c.RocketMQ.Topics.Lifecycle == "" {
		c.RocketMQ.Topics.Lifecycle = "memes_lifecycle"
	}
	if c.RocketMQ.Topics.Notify == "" {
		c.RocketMQ.Topics.Notify = "memes_like_notification"
	}
	if c.RocketMQ.Topics.DeadLetter == "" {
		c.RocketMQ.Topics.DeadLetter = "memes_index_dead_letter"
	}

	m := c.Meilisearch
	if m.Host == "" {
		m.Host = defaultMeiliHost
	}
	// 空前缀是合法配置，只在 yaml 与环境变量都未出现时使用默认值
	if _, ok := os.LookupEnv("MEILISEARCH_INDEX_PREFIX"); !ok && m.IndexPrefix == "" {
		m.IndexPrefix = defaultIndexPrefix
	}
	if m.Timeout == 0 {
		m.Timeout = 10 * time.Second
	}
	if m.BackfillBatch <= 0 {
		m.BackfillBatch = 500
	}

	if c.Outbox == nil {
		c.Outbox = &Outbox{}
	}
	o := c.Outbox
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	if o.PollInterval == 0 {
		o.PollInterval = time.Second
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 8
	}
	if o.Retries == 0 {
		o.Retries = 3
	}
	if o.RetryInitial == 0 {
		o.RetryInitial = 200 * time.Millisecond
	}
	if o.RetryMax == 0 {
		o.RetryMax = 5 * time.Second
	}
	if o.Lease == 0 {
		o.Lease = 5 * time.Minute
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App != nil && c.App.Debug
}
