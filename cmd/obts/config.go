package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/futuretech6/order-book-trading-system/internal/engine"
	"github.com/futuretech6/order-book-trading-system/internal/feed"
	"github.com/futuretech6/order-book-trading-system/internal/matching"
	"github.com/futuretech6/order-book-trading-system/pkg/ratelimit"
)

// Config 对应 config/obts.yaml，环境变量前缀 OBTS_
type Config struct {
	Name string `mapstructure:"name"`

	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`

	Trading struct {
		Priority string `mapstructure:"priority"` // time | quantity，启动后不可变
	} `mapstructure:"trading"`

	Actor struct {
		MailboxSize int `mapstructure:"mailbox_size"`
		BatchMax    int `mapstructure:"batch_max"`
	} `mapstructure:"actor"`

	Metrics struct {
		Addr string `mapstructure:"addr"` // 为空不启动 /metrics
	} `mapstructure:"metrics"`

	Feed struct {
		Input       string  `mapstructure:"input"`    // JSON-lines 文件，"-" 表示 stdin
		Generate    int     `mapstructure:"generate"` // 没有 input 时随机生成的条数，<=0 一直生成直到退出
		Seed        uint64  `mapstructure:"seed"`
		MinPrice    uint64  `mapstructure:"min_price"`
		MaxPrice    uint64  `mapstructure:"max_price"`
		MaxQuantity uint64  `mapstructure:"max_quantity"`
		Owners      uint64  `mapstructure:"owners"`
		Rate        float64 `mapstructure:"rate"` // 每个 owner 每秒最多几笔，<=0 不限速
		Burst       int     `mapstructure:"burst"`
	} `mapstructure:"feed"`
}

func (c *Config) serviceName() string {
	if c.Name == "" {
		return "obts"
	}
	return c.Name
}

func (c *Config) policy() (matching.PriorityPolicy, error) {
	return matching.ParsePriorityPolicy(c.Trading.Priority)
}

func (c *Config) actorConfig() engine.ActorConfig {
	return engine.ActorConfig{
		MailboxSize: c.Actor.MailboxSize,
		BatchMax:    c.Actor.BatchMax,
	}
}

func (c *Config) pumpOptions(ctx context.Context) []feed.PumpOption {
	if c.Feed.Rate <= 0 {
		return nil
	}
	store := ratelimit.NewStore(rate.Limit(c.Feed.Rate), c.Feed.Burst, 0)
	store.StartJanitor(ctx, time.Minute)
	return []feed.PumpOption{feed.WithLimiter(store)}
}

// openSource 返回订单来源和关闭函数
func (c *Config) openSource(stdin io.Reader) (feed.Source, func() error, error) {
	noop := func() error { return nil }
	switch c.Feed.Input {
	case "":
		return feed.NewGenerator(feed.GeneratorConfig{
			Seed:        c.Feed.Seed,
			Count:       c.Feed.Generate,
			MinPrice:    c.Feed.MinPrice,
			MaxPrice:    c.Feed.MaxPrice,
			MaxQuantity: c.Feed.MaxQuantity,
			Owners:      c.Feed.Owners,
		}), noop, nil
	case "-":
		return feed.NewDecoder(stdin), noop, nil
	default:
		f, err := os.Open(c.Feed.Input)
		if err != nil {
			return nil, nil, fmt.Errorf("open feed: %w", err)
		}
		return feed.NewDecoder(f), f.Close, nil
	}
}
