package process

import (
	"context"
	"encoding/json"

	"Memehub/config"
	"Memehub/pkg/log"
	"Memehub/service"
	"Memehub/types"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"go.uber.org/zap"
)

// LifecycleSubscribe 订阅平台的 memes 生命周期事件，写入 outbox
type LifecycleSubscribe struct {
	Config   *config.RocketMQConfig
	Consumer rocketmq.PushConsumer
	Sync     service.ISynchronizer
}

func (s *LifecycleSubscribe) Init() error {
	if s.Consumer == nil {
		return nil
	}
	return s.Consumer.Subscribe(s.Config.Topics.Lifecycle, consumer.MessageSelector{}, s.handle)
}

func (s *LifecycleSubscribe) Setup(ctx context.Context) error {
	if s.Consumer == nil {
		log.L.Warn("rocketmq disabled, lifecycle consumer not started")
		return nil
	}
	if err := s.Consumer.Start(); err != nil {
		return err
	}
	log.L.Info("lifecycle consumer started", zap.String("topic", s.Config.Topics.Lifecycle))

	<-ctx.Done()
	log.L.Info("shutting down lifecycle consumer")
	return s.Consumer.Shutdown()
}

// handle 入队失败时让 MQ 重投，无法解析的消息直接丢弃
func (s *LifecycleSubscribe) handle(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
	for _, msg := range msgs {
		var ev types.LifecycleEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			log.L.Error("unmarshal lifecycle event", zap.String("msg_id", msg.MsgId), zap.Error(err))
			continue
		}
		if _, err := s.Sync.Handle(ctx, &ev); err != nil {
			log.L.Warn("queue lifecycle event failed, retry later",
				zap.String("msg_id", msg.MsgId),
				zap.String("event", ev.Event),
				zap.Error(err),
			)
			return consumer.ConsumeRetryLater, err
		}
	}
	return consumer.ConsumeSuccess, nil
}
