package feed

import (
	"io"

	"golang.org/x/exp/rand"

	"github.com/futuretech6/order-book-trading-system/internal/matching"
)

type GeneratorConfig struct {
	Seed        uint64
	Count       int            // <=0 表示无限
	MinPrice    matching.Price // 价格区间 [MinPrice, MaxPrice]
	MaxPrice    matching.Price
	MaxQuantity matching.Quantity // 数量区间 [1, MaxQuantity]
	Owners      uint64            // owner 取值 [1, Owners]
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	if c.MinPrice == 0 {
		c.MinPrice = 90
	}
	if c.MaxPrice < c.MinPrice {
		c.MaxPrice = c.MinPrice + 20
	}
	if c.MaxQuantity == 0 {
		c.MaxQuantity = 100
	}
	if c.Owners == 0 {
		c.Owners = 16
	}
	return c
}

// Generator 同一个 seed 产生同一串订单，压测和复现问题用
type Generator struct {
	cfg  GeneratorConfig
	rnd  *rand.Rand
	sent int
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	cfg = cfg.withDefaults()
	return &Generator{
		cfg: cfg,
		rnd: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Next 达到 Count 后返回 io.EOF
func (g *Generator) Next() (matching.Order, error) {
	if g.cfg.Count > 0 && g.sent >= g.cfg.Count {
		return matching.Order{}, io.EOF
	}
	g.sent++

	side := matching.Ask
	if g.rnd.Intn(2) == 1 {
		side = matching.Bid
	}
	return matching.Order{
		Side:     side,
		Owner:    1 + g.rnd.Uint64n(g.cfg.Owners),
		Price:    g.cfg.MinPrice + g.rnd.Uint64n(g.cfg.MaxPrice-g.cfg.MinPrice+1),
		Quantity: 1 + g.rnd.Uint64n(g.cfg.MaxQuantity),
	}, nil
}
