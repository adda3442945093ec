package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	defaultQuoteBaseURL     = "https://finnhub.io/api/v1"
	defaultNewsBaseURL      = "https://newsapi.org/v2"
	defaultSentimentBaseURL = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment-latest"
	defaultRatesBaseURL     = "https://api.exchangerate-api.com/v4"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	HTTPPort    int

	QuoteAPIKey  string
	QuoteBaseURL string
	NewsAPIKey   string
	NewsBaseURL  string
	RatesBaseURL string

	SentimentStrategy string
	SentimentAPIKey   string
	SentimentBaseURL  string
	OpenAIAPIKey      string
	OpenAIModel       string

	QuoteRatePerMin int
	QuoteCacheSecs  int
	RefreshPollSecs int

	TelegramBotToken string
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		QuoteAPIKey:      os.Getenv("QUOTE_API_KEY"),
		NewsAPIKey:       os.Getenv("NEWS_API_KEY"),
		SentimentAPIKey:  os.Getenv("SENTIMENT_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.QuoteAPIKey == "" {
		log.Println("Warning: QUOTE_API_KEY not set, quote fetches will fail over to demo access")
	}
	if cfg.NewsAPIKey == "" {
		log.Println("Warning: NEWS_API_KEY not set, news will use generated placeholders")
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.QuoteBaseURL = strings.TrimSpace(os.Getenv("QUOTE_BASE_URL"))
	if cfg.QuoteBaseURL == "" {
		cfg.QuoteBaseURL = defaultQuoteBaseURL
	}
	cfg.NewsBaseURL = strings.TrimSpace(os.Getenv("NEWS_BASE_URL"))
	if cfg.NewsBaseURL == "" {
		cfg.NewsBaseURL = defaultNewsBaseURL
	}
	cfg.SentimentBaseURL = strings.TrimSpace(os.Getenv("SENTIMENT_BASE_URL"))
	if cfg.SentimentBaseURL == "" {
		cfg.SentimentBaseURL = defaultSentimentBaseURL
	}
	cfg.RatesBaseURL = strings.TrimSpace(os.Getenv("RATES_BASE_URL"))
	if cfg.RatesBaseURL == "" {
		cfg.RatesBaseURL = defaultRatesBaseURL
	}

	cfg.SentimentStrategy = strings.ToLower(strings.TrimSpace(os.Getenv("SENTIMENT_STRATEGY")))
	if cfg.SentimentStrategy == "" {
		cfg.SentimentStrategy = "keyword"
	}
	if cfg.SentimentStrategy != "keyword" && cfg.SentimentStrategy != "inference" && cfg.SentimentStrategy != "openai" {
		log.Printf("Warning: unsupported SENTIMENT_STRATEGY=%q, defaulting to keyword", cfg.SentimentStrategy)
		cfg.SentimentStrategy = "keyword"
	}
	if cfg.SentimentStrategy == "openai" && cfg.OpenAIAPIKey == "" {
		log.Println("Warning: SENTIMENT_STRATEGY=openai but OPENAI_API_KEY not set, falling back to keyword")
		cfg.SentimentStrategy = "keyword"
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	// 55/min matches the ~1.1s spacing the quote provider tolerates; strict
	// free tiers should set 5 (one call every 12s).
	cfg.QuoteRatePerMin = 55
	if v := strings.TrimSpace(os.Getenv("QUOTE_RATE_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QuoteRatePerMin = n
		}
	}

	cfg.QuoteCacheSecs = 60
	if v := strings.TrimSpace(os.Getenv("QUOTE_CACHE_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QuoteCacheSecs = n
		}
	}

	cfg.RefreshPollSecs = 120
	if v := strings.TrimSpace(os.Getenv("REFRESH_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshPollSecs = n
		}
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, Telegram bot disabled")
	}

	return cfg
}
