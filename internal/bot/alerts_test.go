package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	tele "gopkg.in/telebot.v3"
)

func TestParseAlertMode(t *testing.T) {
	mode, err := parseAlertMode(nil)
	if err != nil || mode != "status" {
		t.Fatalf("expected default status mode, got mode=%q err=%v", mode, err)
	}

	mode, err = parseAlertMode([]string{"on"})
	if err != nil || mode != "on" {
		t.Fatalf("expected on mode, got mode=%q err=%v", mode, err)
	}

	mode, err = parseAlertMode([]string{"OFF"})
	if err != nil || mode != "off" {
		t.Fatalf("expected off mode, got mode=%q err=%v", mode, err)
	}

	if _, err := parseAlertMode([]string{"nope"}); err == nil {
		t.Fatal("expected invalid mode error")
	}
}

func TestParseRecsArgs(t *testing.T) {
	maxPrice, err := parseRecsArgs(nil)
	if err != nil || maxPrice != 0 {
		t.Fatalf("expected no budget by default, got %f err=%v", maxPrice, err)
	}

	maxPrice, err = parseRecsArgs([]string{"150.5"})
	if err != nil || maxPrice != 150.5 {
		t.Fatalf("expected 150.5, got %f err=%v", maxPrice, err)
	}

	if _, err := parseRecsArgs([]string{"cheap"}); err == nil {
		t.Fatal("expected error for non-numeric budget")
	}
	if _, err := parseRecsArgs([]string{"-5"}); err == nil {
		t.Fatal("expected error for negative budget")
	}
}

func TestAlertDispatcherNotifyRecommendations(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewAlertDispatcher(sender)

	if !dispatcher.Subscribe(10) {
		t.Fatal("expected initial subscribe to return true")
	}
	if !dispatcher.Subscribe(20) {
		t.Fatal("expected initial subscribe to return true")
	}
	if dispatcher.Subscribe(10) {
		t.Fatal("expected duplicate subscribe to return false")
	}

	recs := []domain.Recommendation{
		{Symbol: "NVDA", Action: domain.ActionBuy, CurrentPrice: 100, TargetPrice: 115, Confidence: 80, Reason: "positive news flow"},
		{Symbol: "AAPL", Action: domain.ActionHold, CurrentPrice: 30, TargetPrice: 31, Confidence: 60, Reason: "mixed coverage"},
	}

	if err := dispatcher.NotifyRecommendations(context.Background(), recs); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if len(sender.messages[10]) != 1 || len(sender.messages[20]) != 1 {
		t.Fatalf("expected one message per subscriber, got %+v", sender.messages)
	}
	body := sender.messages[10][0]
	if !strings.Contains(body, "BUY NVDA") {
		t.Fatalf("expected BUY NVDA in alert body: %s", body)
	}
	if strings.Contains(body, "AAPL") {
		t.Fatalf("HOLD entries should not be broadcast: %s", body)
	}
}

func TestAlertDispatcherSkipsWithoutActionableRecs(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewAlertDispatcher(sender)
	dispatcher.Subscribe(10)

	recs := []domain.Recommendation{{Symbol: "AAPL", Action: domain.ActionHold}}
	if err := dispatcher.NotifyRecommendations(context.Background(), recs); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatalf("expected zero outgoing messages, got %+v", sender.messages)
	}
}

func TestAlertDispatcherUnsubscribe(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewAlertDispatcher(sender)

	dispatcher.Subscribe(10)
	if !dispatcher.Unsubscribe(10) {
		t.Fatal("expected unsubscribe to return true")
	}
	if dispatcher.Unsubscribe(10) {
		t.Fatal("expected second unsubscribe to return false")
	}

	recs := []domain.Recommendation{{Symbol: "TSLA", Action: domain.ActionSell}}
	if err := dispatcher.NotifyRecommendations(context.Background(), recs); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatalf("expected zero outgoing messages, got %+v", sender.messages)
	}
}

type fakeSender struct {
	messages map[int64][]string
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if f.messages == nil {
		f.messages = make(map[int64][]string)
	}

	chat, ok := to.(*tele.Chat)
	if !ok {
		return nil, fmt.Errorf("unexpected recipient type %T", to)
	}
	f.messages[chat.ID] = append(f.messages[chat.ID], fmt.Sprint(what))
	return &tele.Message{}, nil
}
