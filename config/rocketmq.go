package config

type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver"`

	Producer Producer `yaml:"producer"`

	Consumer Consumer `yaml:"consumer"`

	Topics Topics `yaml:"topics"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

type Consumer struct {
	Group string `yaml:"group"`
}

type Topics struct {
	// Lifecycle 平台发出的 memes.items.create/update/delete 事件
	Lifecycle string `yaml:"lifecycle"`
	// Notify 点赞通知（跨节点推送）
	Notify string `yaml:"notify"`
	// DeadLetter 重试耗尽的索引变更
	DeadLetter string `yaml:"dead_letter"`
}

// Enabled 未配置 nameserver 时不连接 MQ
func (c *RocketMQConfig) Enabled() bool {
	return c != nil && len(c.NameServer) > 0
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
