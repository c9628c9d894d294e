package process

import (
	"context"
	"reflect"
	"sync"

	"Memehub/pkg/log"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type IServer interface {
	Init() error
	Setup(ctx context.Context) error
}

// SubServers 后台任务列表
type SubServers struct {
	OutboxSubscribe    *OutboxSubscribe    // 消费 outbox
	LifecycleSubscribe *LifecycleSubscribe // MQ 生命周期事件入队
	HealthSubscribe    *HealthSubscribe    // 积压指标
}

type Server struct {
	once  sync.Once
	items []IServer
	SubServers
}

func NewServer(servers *SubServers) *Server {
	s := &Server{
		SubServers: *servers,
	}

	s.binds(servers)
	return s
}

func (c *Server) binds(servers *SubServers) {
	elem := reflect.ValueOf(servers).Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if field.IsNil() {
			continue
		}
		if v, ok := field.Interface().(IServer); ok {
			c.items = append(c.items, v)
		}
	}
}

// Start 启动全部后台任务
func (c *Server) Start(eg *errgroup.Group, ctx context.Context) {
	c.once.Do(func() {
		for _, process := range c.items {
			if err := process.Init(); err != nil {
				log.L.Fatal("init process failed", zap.Error(err))
			}
		}

		for _, process := range c.items {
			serv := process
			eg.Go(func() error {
				return serv.Setup(ctx)
			})
		}
		log.L.Info("background processes started", zap.Int("count", len(c.items)))
	})
}
