package job

import (
	"context"
	"log"
	"time"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// QuoteLister returns fresh quotes for the active watchlist.
type QuoteLister interface {
	Quotes(ctx context.Context) ([]domain.Quote, error)
}

// Broadcaster pushes a payload to the connected dashboard clients.
type Broadcaster interface {
	Broadcast(payload any)
	ClientCount() int
}

// RefreshPoller periodically re-fetches watchlist quotes and pushes them
// over the websocket hub so open dashboards stay current.
type RefreshPoller struct {
	tracer   trace.Tracer
	quotes   QuoteLister
	hub      Broadcaster
	interval time.Duration
}

func NewRefreshPoller(tracer trace.Tracer, quotes QuoteLister, hub Broadcaster, interval time.Duration) *RefreshPoller {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &RefreshPoller{
		tracer:   tracer,
		quotes:   quotes,
		hub:      hub,
		interval: interval,
	}
}

// Start launches the refresh loop. Blocks until ctx is cancelled.
func (p *RefreshPoller) Start(ctx context.Context) {
	if p.quotes == nil {
		log.Println("Refresh poller disabled: no quote source")
		<-ctx.Done()
		return
	}

	log.Println("Refresh poller starting...")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh poller stopped")
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *RefreshPoller) refresh(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "job.refresh-watchlist")
	defer span.End()

	if p.hub != nil && p.hub.ClientCount() == 0 {
		return
	}

	quotes, err := p.quotes.Quotes(ctx)
	if err != nil {
		log.Printf("watchlist refresh error: %v", err)
		return
	}
	if len(quotes) == 0 {
		return
	}

	if p.hub != nil {
		p.hub.Broadcast(map[string]any{
			"type":   "quotes",
			"quotes": quotes,
		})
	}
}
