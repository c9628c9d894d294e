package socket

import (
	"encoding/json"
	"time"

	"Memehub/pkg/log"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

const (
	heartbeatInterval = 10 * time.Second // 心跳检测间隔时间
	heartbeatTimeout  = 35 * time.Second // 超过该时长未收到 pong 断开
	writeWait         = 5 * time.Second
	sendBuffer        = 64
)

// Message 推送给客户端的事件
type Message struct {
	Event     string `json:"event"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

// Hub 当前节点的在线连接
type Hub struct {
	clients cmap.ConcurrentMap[string, *Client]
}

func NewHub() *Hub {
	return &Hub{clients: cmap.New[*Client]()}
}

func (h *Hub) register(c *Client) {
	h.clients.Set(c.ID, c)
	log.L.Debug("ws client online", zap.String("cid", c.ID), zap.String("uid", c.UserID))
}

func (h *Hub) unregister(c *Client) {
	if h.clients.RemoveCb(c.ID, func(key string, v *Client, exists bool) bool {
		return exists && v == c
	}) {
		c.close()
		log.L.Debug("ws client offline", zap.String("cid", c.ID))
	}
}

// Online 在线连接数
func (h *Hub) Online() int {
	return h.clients.Count()
}

// Broadcast 推送到所有连接，发送缓冲满的连接直接断开
func (h *Hub) Broadcast(event string, payload any) error {
	body, err := json.Marshal(Message{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	for item := range h.clients.IterBuffered() {
		c := item.Val
		if !c.enqueue(body) {
			log.L.Warn("ws client send buffer full, unregistering", zap.String("cid", c.ID))
			h.unregister(c)
		}
	}
	return nil
}
