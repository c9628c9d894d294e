package config

import (
	"fmt"
	"time"
)

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
	// LockTTL 点赞互斥锁的过期时间
	LockTTL time.Duration `json:"lock_ttl" yaml:"lock_ttl"`
}

func (r *Redis) Addr() string {
	return fmt.Sprintf("%s:%d", r.Address, r.Port)
}
