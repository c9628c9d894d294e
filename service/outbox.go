package service

import (
	"context"
	"encoding/json"
	"time"

	"Memehub/config"
	"Memehub/dao"
	"Memehub/models"
	"Memehub/pkg/log"
	"Memehub/pkg/rocketmq"

	"github.com/cenkalti/backoff/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const maxErrorLen = 1000

var outboxProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "memehub_outbox_processed_total",
		Help: "Index outbox entries by processing result",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(outboxProcessed)
}

// DeadLetter 重试耗尽后发到死信 topic 的内容
type DeadLetter struct {
	MemeID    uint64  `json:"meme_id"`
	Op        string  `json:"op"`
	Source    string  `json:"source"`
	Attempts  int     `json:"attempts"`
	Error     string  `json:"error"`
	OutboxIDs []int64 `json:"outbox_ids"`
}

// OutboxWorker 消费 search_index_outbox，把变更落到索引
type OutboxWorker struct {
	Config    *config.Outbox
	RocketMQ  *config.RocketMQConfig
	OutboxDAO *dao.IndexOutboxDAO
	Sync      ISynchronizer
	MQ        rocketmq.Sender
}

// memeBatch 同一 meme 的多条变更合并处理，文档总是从数据库重建
type memeBatch struct {
	memeID   uint64
	op       string
	source   string
	attempts int
	ids      []int64
}

func groupByMeme(rows []models.IndexOutbox) []*memeBatch {
	index := make(map[uint64]*memeBatch, len(rows))
	out := make([]*memeBatch, 0, len(rows))
	for _, row := range rows {
		b, ok := index[row.MemeID]
		if !ok {
			b = &memeBatch{memeID: row.MemeID}
			index[row.MemeID] = b
			out = append(out, b)
		}
		// rows 按 id 升序，最后一条决定操作
		b.op = row.Op
		b.source = row.Source
		b.attempts = max(b.attempts, row.Attempts)
		b.ids = append(b.ids, row.ID)
	}
	return out
}

// Run 轮询直到 ctx 结束，积压时不等待下一个周期
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.Config.PollInterval)
	defer ticker.Stop()

	log.L.Info("outbox worker started",
		zap.Int("batch", w.Config.BatchSize),
		zap.Int("workers", w.Config.Workers),
	)
	for {
		n, err := w.RunOnce(ctx)
		if err != nil {
			log.L.Error("outbox poll", zap.Error(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if n >= w.Config.BatchSize {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce 处理一批，返回领取的条数
func (w *OutboxWorker) RunOnce(ctx context.Context) (int, error) {
	rows, err := w.OutboxDAO.Claim(ctx, w.Config.BatchSize, w.Config.Lease)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	p := pool.New().WithMaxGoroutines(max(w.Config.Workers, 1))
	for _, b := range groupByMeme(rows) {
		p.Go(func() {
			w.process(ctx, b)
		})
	}
	p.Wait()
	return len(rows), nil
}

func (w *OutboxWorker) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.Config.RetryInitial
	b.MaxInterval = w.Config.RetryMax
	return b
}

// redeliverDelay 本轮重试失败后，下次领取前的等待时间
func (w *OutboxWorker) redeliverDelay(attempts int) time.Duration {
	d := w.Config.RetryMax
	for i := 1; i < attempts && d < w.Config.Lease; i++ {
		d *= 2
	}
	return min(d, w.Config.Lease)
}

func (w *OutboxWorker) process(ctx context.Context, b *memeBatch) {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, w.Sync.Reconcile(ctx, b.memeID, b.op, b.source)
	}, backoff.WithBackOff(w.newBackOff()), backoff.WithMaxTries(max(w.Config.Retries, 1)))

	if err == nil {
		if err := w.OutboxDAO.Delete(ctx, b.ids); err != nil {
			log.L.Error("outbox delete", zap.Int64s("ids", b.ids), zap.Error(err))
		}
		outboxProcessed.WithLabelValues("ok").Add(float64(len(b.ids)))
		return
	}

	msg := err.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	attempts := b.attempts + 1

	if attempts >= w.Config.MaxAttempts {
		if err := w.OutboxDAO.MarkDead(ctx, b.ids, attempts, msg); err != nil {
			log.L.Error("outbox mark dead", zap.Int64s("ids", b.ids), zap.Error(err))
		}
		w.deadLetter(ctx, b, attempts, msg)
		outboxProcessed.WithLabelValues("dead").Add(float64(len(b.ids)))
		log.L.Error("index sync dead-lettered",
			zap.Uint64("meme_id", b.memeID),
			zap.Int("attempts", attempts),
			zap.String("error", msg),
		)
		return
	}

	next := time.Now().Add(w.redeliverDelay(attempts))
	if err := w.OutboxDAO.MarkRetry(ctx, b.ids, attempts, msg, next); err != nil {
		log.L.Error("outbox mark retry", zap.Int64s("ids", b.ids), zap.Error(err))
	}
	outboxProcessed.WithLabelValues("retry").Add(float64(len(b.ids)))
	log.L.Warn("index sync failed, will retry",
		zap.Uint64("meme_id", b.memeID),
		zap.Int("attempts", attempts),
		zap.Time("next_attempt_at", next),
		zap.String("error", msg),
	)
}

func (w *OutboxWorker) deadLetter(ctx context.Context, b *memeBatch, attempts int, msg string) {
	if w.MQ == nil || w.RocketMQ == nil {
		return
	}
	body, err := json.Marshal(DeadLetter{
		MemeID:    b.memeID,
		Op:        b.op,
		Source:    b.source,
		Attempts:  attempts,
		Error:     msg,
		OutboxIDs: b.ids,
	})
	if err != nil {
		return
	}
	if err := w.MQ.SendMsg(ctx, w.RocketMQ.Topics.DeadLetter, body); err != nil {
		log.L.Warn("publish dead letter", zap.Uint64("meme_id", b.memeID), zap.Error(err))
	}
}
