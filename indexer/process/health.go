package process

import (
	"context"
	"time"

	"Memehub/dao"
	"Memehub/models"
	"Memehub/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var outboxBacklog = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "memehub_outbox_backlog",
		Help: "Index outbox entries by status",
	},
	[]string{"status"},
)

func init() {
	prometheus.MustRegister(outboxBacklog)
}

const healthInterval = 5 * time.Second

// HealthSubscribe 定时上报 outbox 积压
type HealthSubscribe struct {
	OutboxDAO *dao.IndexOutboxDAO
}

func (s *HealthSubscribe) Init() error {
	return nil
}

func (s *HealthSubscribe) Setup(ctx context.Context) error {
	timer := time.NewTicker(healthInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			s.report(ctx)
		}
	}
}

func (s *HealthSubscribe) report(ctx context.Context) {
	counts, err := s.OutboxDAO.Counts(ctx)
	if err != nil {
		log.L.Warn("outbox backlog report", zap.Error(err))
		return
	}
	for _, status := range []string{models.OutboxPending, models.OutboxProcessing, models.OutboxDead} {
		outboxBacklog.WithLabelValues(status).Set(float64(counts[status]))
	}
	if dead := counts[models.OutboxDead]; dead > 0 {
		log.L.Warn("dead outbox entries waiting for retry", zap.Int64("dead", dead))
	}
}
