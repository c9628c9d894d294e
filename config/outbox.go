package config

import "time"

// Outbox 索引变更队列的消费参数
type Outbox struct {
	BatchSize    int           `json:"batch_size" yaml:"batch_size"`
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
	Workers      int           `json:"workers" yaml:"workers"`
	// MaxAttempts 超过后进入死信
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
	// Retries 单次处理内的快速重试次数
	Retries      uint          `json:"retries" yaml:"retries"`
	RetryInitial time.Duration `json:"retry_initial" yaml:"retry_initial"`
	RetryMax     time.Duration `json:"retry_max" yaml:"retry_max"`
	// Lease processing 状态超过该时长视为节点崩溃，重新放回队列
	Lease time.Duration `json:"lease" yaml:"lease"`
}

func ProvideOutboxConfig(cfg *Config) *Outbox {
	return cfg.Outbox
}
