package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type QuoteQuerier interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
}

type Recommender interface {
	Rank(ctx context.Context, maxPrice float64) []domain.Recommendation
}

// StartTelegramBot wires the chat commands and begins long polling. Returns
// the alert dispatcher so background jobs can push BUY/SELL calls, or nil
// when no token is configured.
func StartTelegramBot(token string, stocks QuoteQuerier, ranker Recommender) *AlertDispatcher {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}
	alerts := NewAlertDispatcher(b)

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /price AAPL")
		}
		symbol := strings.ToUpper(args[0])
		quote, err := stocks.GetQuote(context.Background(), symbol)
		if err != nil {
			return c.Send(describeError(symbol, err))
		}
		return c.Send(formatQuote(quote))
	})

	b.Handle("/recs", func(c tele.Context) error {
		if ranker == nil {
			return c.Send("Recommendations unavailable")
		}

		maxPrice, err := parseRecsArgs(c.Args())
		if err != nil {
			return c.Send("Usage: /recs | /recs 150")
		}

		recs := ranker.Rank(context.Background(), maxPrice)
		if len(recs) == 0 {
			return c.Send("No recommendations within that budget right now.")
		}

		lines := make([]string, 0, len(recs)+1)
		lines = append(lines, "Today's picks:")
		for _, r := range recs {
			lines = append(lines, formatRecommendation(r))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}

		mode, err := parseAlertMode(c.Args())
		if err != nil {
			return c.Send("Usage: /alerts on | /alerts off | /alerts status")
		}

		switch mode {
		case "on":
			if alerts.Subscribe(chat.ID) {
				return c.Send("Buy/sell alerts enabled for this chat.")
			}
			return c.Send("Buy/sell alerts are already enabled for this chat.")
		case "off":
			if alerts.Unsubscribe(chat.ID) {
				return c.Send("Buy/sell alerts disabled for this chat.")
			}
			return c.Send("Buy/sell alerts are already disabled for this chat.")
		default:
			if alerts.IsSubscribed(chat.ID) {
				return c.Send("Alerts status: ON")
			}
			return c.Send("Alerts status: OFF")
		}
	})

	log.Println("Telegram bot started")
	go b.Start()
	return alerts
}

func parseRecsArgs(args []string) (float64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	maxPrice, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil || maxPrice < 0 {
		return 0, fmt.Errorf("invalid budget")
	}
	return maxPrice, nil
}

func describeError(symbol string, err error) string {
	se := domain.ClassifyError(err, "fetching "+symbol)
	return fmt.Sprintf("%s\n%s", se.Message, se.Solution)
}

func formatQuote(q *domain.Quote) string {
	name := q.Name
	if name == "" {
		name = q.Symbol
	}
	return fmt.Sprintf(
		"%s (%s)\nPrice: $%.2f\nChange: %+.2f (%+.2f%%)",
		name, q.Symbol, q.Price, q.Change, q.ChangePercent,
	)
}

func formatRecommendation(r domain.Recommendation) string {
	return fmt.Sprintf(
		"%s %s at $%.2f (target $%.2f), confidence %.0f%%: %s",
		r.Action, r.Symbol, r.CurrentPrice, r.TargetPrice, r.Confidence, r.Reason,
	)
}
