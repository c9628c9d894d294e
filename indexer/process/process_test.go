package process

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Memehub/config"
	"Memehub/dao"
	"Memehub/dao/daotest"
	"Memehub/models"
	"Memehub/types"

	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakeSync struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (f *fakeSync) Handle(_ context.Context, ev *types.LifecycleEvent) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.events = append(f.events, ev.Event)
	return len(ev.IDs()), nil
}

func (f *fakeSync) Apply(context.Context, *types.LifecycleEvent) {}

func (f *fakeSync) Reconcile(context.Context, uint64, string, string) error { return nil }

func message(body string) *primitive.MessageExt {
	return &primitive.MessageExt{
		Message: primitive.Message{Topic: "memes_lifecycle", Body: []byte(body)},
		MsgId:   "msg-1",
	}
}

func TestLifecycleSubscribe_Handle(t *testing.T) {
	fs := &fakeSync{}
	s := &LifecycleSubscribe{Config: &config.RocketMQConfig{}, Sync: fs}

	res, err := s.handle(context.Background(),
		message(`{"event":"memes.items.update","keys":[1]}`),
		message(`not json`),
		message(`{"event":"memes.items.delete","keys":[2]}`),
	)
	require.NoError(t, err)
	assert.Equal(t, consumer.ConsumeSuccess, res)
	assert.Equal(t, []string{"memes.items.update", "memes.items.delete"}, fs.events)

	fs.err = errors.New("db down")
	res, err = s.handle(context.Background(), message(`{"event":"memes.items.update","keys":[1]}`))
	assert.Error(t, err)
	assert.Equal(t, consumer.ConsumeRetryLater, res)
}

func TestLifecycleSubscribe_Disabled(t *testing.T) {
	s := &LifecycleSubscribe{Config: &config.RocketMQConfig{}, Sync: &fakeSync{}}
	require.NoError(t, s.Init())
	require.NoError(t, s.Setup(context.Background()))
}

func TestHealthSubscribe_Report(t *testing.T) {
	db := daotest.NewDB(t)
	outbox := dao.NewIndexOutboxDAO(db)
	ctx := context.Background()
	require.NoError(t, outbox.Enqueue(ctx,
		&models.IndexOutbox{MemeID: 1, Op: models.OutboxOpUpsert, Source: models.SourceUpdate},
		&models.IndexOutbox{MemeID: 2, Op: models.OutboxOpUpsert, Source: models.SourceUpdate},
	))

	(&HealthSubscribe{OutboxDAO: outbox}).report(ctx)
	assert.Equal(t, float64(2), testutil.ToFloat64(outboxBacklog.WithLabelValues(models.OutboxPending)))
	assert.Equal(t, float64(0), testutil.ToFloat64(outboxBacklog.WithLabelValues(models.OutboxDead)))
}

type countingServer struct {
	mu    sync.Mutex
	inits int
	runs  int
}

func (c *countingServer) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inits++
	return nil
}

func (c *countingServer) Setup(ctx context.Context) error {
	c.mu.Lock()
	c.runs++
	c.mu.Unlock()
	<-ctx.Done()
	return nil
}

func TestServer_StartOnce(t *testing.T) {
	srv := NewServer(&SubServers{HealthSubscribe: &HealthSubscribe{}})
	require.Len(t, srv.items, 1, "nil sub servers are skipped")

	fake := &countingServer{}
	srv.items = []IServer{fake}

	ctx, cancel := context.WithCancel(context.Background())
	eg, egCtx := errgroup.WithContext(ctx)
	srv.Start(eg, egCtx)
	srv.Start(eg, egCtx)

	require.Eventually(t, func() bool {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		return fake.runs == 1
	}, time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, eg.Wait())
	assert.Equal(t, 1, fake.inits)
}
