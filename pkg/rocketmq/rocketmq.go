package rocketmq

import (
	"Memehub/config"
	"Memehub/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Sender 发送消息，MQ 未配置时为空实现
type Sender interface {
	SendMsg(ctx context.Context, topic string, body []byte) error
}

type Rocketmq struct {
	RocketmqProducer rocketmq.Producer
}

var _ Sender = (*Rocketmq)(nil)

// InitProducer 未配置 nameserver 时返回 nil producer，发送变为 no-op
func InitProducer(cfg *config.RocketMQConfig) *Rocketmq {
	if !cfg.Enabled() {
		log.L.Warn("rocketmq disabled, producer not started")
		return &Rocketmq{}
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithRetry(cfg.Producer.Retry),
		producer.WithGroupName(cfg.Producer.Group),
	)
	if err != nil {
		log.L.Fatal("create producer error", zap.Error(err))
	}
	if err = p.Start(); err != nil {
		log.L.Fatal("start producer error", zap.Error(err))
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))

	return &Rocketmq{RocketmqProducer: p}
}

// InitConsumer 未启用时返回 nil
func InitConsumer(cfg *config.RocketMQConfig) rocketmq.PushConsumer {
	if !cfg.Enabled() {
		return nil
	}
	c, err := rocketmq.NewPushConsumer(
		consumer.WithNameServer(cfg.NameServer),
		consumer.WithGroupName(cfg.Consumer.Group),
		consumer.WithConsumeFromWhere(consumer.ConsumeFromLastOffset),
	)
	if err != nil {
		panic(err)
	}

	return c
}

func (p *Rocketmq) SendMsg(ctx context.Context, topic string, body []byte) error {
	if p == nil || p.RocketmqProducer == nil {
		return nil
	}
	msg := &primitive.Message{
		Topic: topic,
		Body:  body,
	}

	// 发送同步消息
	res, err := p.RocketmqProducer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Debug("send message success", zap.String("topic", topic), zap.String("msg_id", res.MsgID))
	return nil
}

func (p *Rocketmq) Shutdown() {
	if p == nil || p.RocketmqProducer == nil {
		return
	}
	if err := p.RocketmqProducer.Shutdown(); err != nil {
		log.L.Warn("shutdown producer", zap.Error(err))
	}
}
