package service

import (
	"context"
	"encoding/json"

	"Memehub/config"
	"Memehub/pkg/log"
	"Memehub/pkg/rocketmq"
	"Memehub/pkg/socket"
	"Memehub/types"

	"go.uber.org/zap"
)

const EventLikeNotification = "like_notification"

var _ INotifier = (*Notifier)(nil)

type INotifier interface {
	// LikeChanged 推送失败只记录日志
	LikeChanged(ctx context.Context, n *types.LikeNotification)
}

// Notifier 本节点 websocket 广播，同时投递到 MQ 供其他服务订阅
type Notifier struct {
	Hub      *socket.Hub
	MQ       rocketmq.Sender
	RocketMQ *config.RocketMQConfig
}

func (n *Notifier) LikeChanged(ctx context.Context, msg *types.LikeNotification) {
	if n.Hub != nil {
		if err := n.Hub.Broadcast(EventLikeNotification, msg); err != nil {
			log.L.Warn("broadcast like notification", zap.Error(err))
		}
	}
	if n.MQ == nil || !n.RocketMQ.Enabled() {
		return
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.L.Warn("marshal like notification", zap.Error(err))
		return
	}
	if err := n.MQ.SendMsg(ctx, n.RocketMQ.Topics.Notify, body); err != nil {
		log.L.Warn("publish like notification", zap.Uint64("meme_id", msg.Meme.ID), zap.Error(err))
	}
}
