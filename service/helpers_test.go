package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"Memehub/config"
	"Memehub/dao"
	"Memehub/dao/cache"
	"Memehub/dao/daotest"
	"Memehub/pkg/meili/meilitest"
	"Memehub/types"

	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	engine   *meilitest.Engine
	builder  *DocumentBuilder
	outbox   *dao.IndexOutboxDAO
	sync     *Synchronizer
	notifier *recordingNotifier
	sender   *recordingSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := daotest.NewDB(t)
	engine := meilitest.New()
	builder := &DocumentBuilder{
		MemeDAO: dao.NewMemeDAO(db),
		UserDAO: dao.NewUserDAO(db),
		TagDAO:  dao.NewTagDAO(db),
	}
	outbox := dao.NewIndexOutboxDAO(db)
	return &testEnv{
		db:      db,
		engine:  engine,
		builder: builder,
		outbox:  outbox,
		sync: &Synchronizer{
			OutboxDAO: outbox,
			Builder:   builder,
			Engine:    engine,
		},
		notifier: &recordingNotifier{},
		sender:   &recordingSender{},
	}
}

func (e *testEnv) likeService() *LikeService {
	return &LikeService{
		Config:      &config.Config{Redis: &config.Redis{LockTTL: time.Second}},
		Tx:          dao.NewTx(e.db),
		MemeDAO:     dao.NewMemeDAO(e.db),
		MemeLikeDAO: dao.NewMemeLikeDAO(e.db),
		UserDAO:     dao.NewUserDAO(e.db),
		OutboxDAO:   e.outbox,
		Locker:      cache.NewLocalLock(),
		Notifier:    e.notifier,
	}
}

func (e *testEnv) worker() *OutboxWorker {
	return &OutboxWorker{
		Config: &config.Outbox{
			BatchSize:    50,
			PollInterval: 10 * time.Millisecond,
			Workers:      2,
			MaxAttempts:  2,
			Retries:      1,
			RetryInitial: time.Millisecond,
			RetryMax:     time.Millisecond,
			Lease:        time.Minute,
		},
		RocketMQ:  &config.RocketMQConfig{Topics: config.Topics{DeadLetter: "dead"}},
		OutboxDAO: e.outbox,
		Sync:      e.sync,
		MQ:        e.sender,
	}
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []*types.LikeNotification
}

func (n *recordingNotifier) LikeChanged(_ context.Context, msg *types.LikeNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

type sentMsg struct {
	topic string
	body  []byte
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMsg
}

func (s *recordingSender) SendMsg(_ context.Context, topic string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMsg{topic: topic, body: body})
	return nil
}

func (s *recordingSender) messages() []sentMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMsg(nil), s.sent...)
}
