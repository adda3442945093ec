package job

import (
	"context"
	"log"
	"time"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type Ranker interface {
	Rank(ctx context.Context, maxPrice float64) []domain.Recommendation
}

type Notifier interface {
	NotifyRecommendations(ctx context.Context, recs []domain.Recommendation) error
	SubscriberCount() int
}

// AlertPoller periodically ranks the trending symbols and forwards
// actionable calls to the Telegram alert dispatcher.
type AlertPoller struct {
	tracer   trace.Tracer
	ranker   Ranker
	notifier Notifier
	interval time.Duration
}

func NewAlertPoller(tracer trace.Tracer, ranker Ranker, notifier Notifier, interval time.Duration) *AlertPoller {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AlertPoller{
		tracer:   tracer,
		ranker:   ranker,
		notifier: notifier,
		interval: interval,
	}
}

// Start launches the alert loop. Blocks until ctx is cancelled.
func (p *AlertPoller) Start(ctx context.Context) {
	if p.ranker == nil || p.notifier == nil {
		log.Println("Alert poller disabled: no ranker or dispatcher")
		<-ctx.Done()
		return
	}

	log.Println("Alert poller starting...")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Alert poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *AlertPoller) poll(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "job.rank-alerts")
	defer span.End()

	// Ranking burns provider quota, skip it when nobody is listening.
	if p.notifier.SubscriberCount() == 0 {
		return
	}

	recs := p.ranker.Rank(ctx, 0)
	if err := p.notifier.NotifyRecommendations(ctx, recs); err != nil {
		log.Printf("alert dispatch error: %v", err)
	}
}
