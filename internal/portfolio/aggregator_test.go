package portfolio

import (
	"testing"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
)

func TestAggregate(t *testing.T) {
	quotes := []domain.Quote{
		{Symbol: "AAA", Price: 10, Change: 1, ChangePercent: 10},
		{Symbol: "BBB", Price: 20, Change: -2, ChangePercent: -5},
	}

	got := Aggregate(quotes)
	if got.TotalValue != 3000 {
		t.Fatalf("expected total value 3000, got %v", got.TotalValue)
	}
	if got.TotalChange != -100 {
		t.Fatalf("expected total change -100, got %v", got.TotalChange)
	}
	if got.TotalChangePercent != 2.5 {
		t.Fatalf("expected mean change percent 2.5, got %v", got.TotalChangePercent)
	}
	if got.StockCount != 2 {
		t.Fatalf("expected 2 stocks, got %d", got.StockCount)
	}
	if got.Currency != "USD" {
		t.Fatalf("expected USD, got %s", got.Currency)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	if got.TotalValue != 0 || got.TotalChange != 0 || got.TotalChangePercent != 0 || got.StockCount != 0 {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestConverted(t *testing.T) {
	base := Aggregate([]domain.Quote{{Symbol: "AAA", Price: 10, Change: 1, ChangePercent: 10}})
	eur := Converted(base, 0.85, "EUR")

	if eur.TotalValue != 850 {
		t.Fatalf("expected 850 EUR total, got %v", eur.TotalValue)
	}
	if eur.TotalChange != 85 {
		t.Fatalf("expected 85 EUR change, got %v", eur.TotalChange)
	}
	if eur.TotalChangePercent != base.TotalChangePercent {
		t.Fatal("percent totals must be currency-invariant")
	}
	if eur.Currency != "EUR" {
		t.Fatalf("expected EUR label, got %s", eur.Currency)
	}
	if base.Currency != "USD" {
		t.Fatal("conversion must not mutate the input summary")
	}
}
