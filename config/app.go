package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// Name 用于日志与 MQ 分组前缀
	Name string `json:"name" yaml:"name"`
}

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// Issuer 为空时不校验
	Issuer string `json:"issuer" yaml:"issuer"`
}

// Hook 平台 webhook 推送生命周期事件时携带的共享密钥
type Hook struct {
	Secret string `json:"secret" yaml:"secret"`
}
