package feed

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuretech6/order-book-trading-system/internal/matching"
)

func drain(t *testing.T, g *Generator) []matching.Order {
	t.Helper()
	var out []matching.Order
	for {
		o, err := g.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, o)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{Seed: 42, Count: 200}
	a := drain(t, NewGenerator(cfg))
	b := drain(t, NewGenerator(cfg))
	assert.Len(t, a, 200)
	assert.Equal(t, a, b)

	c := drain(t, NewGenerator(GeneratorConfig{Seed: 43, Count: 200}))
	assert.NotEqual(t, a, c)
}

func TestGenerator_Bounds(t *testing.T) {
	cfg := GeneratorConfig{Seed: 7, Count: 1000, MinPrice: 50, MaxPrice: 55, MaxQuantity: 4, Owners: 3}
	var asks, bids int
	for _, o := range drain(t, NewGenerator(cfg)) {
		assert.GreaterOrEqual(t, o.Price, matching.Price(50))
		assert.LessOrEqual(t, o.Price, matching.Price(55))
		assert.GreaterOrEqual(t, o.Quantity, matching.Quantity(1))
		assert.LessOrEqual(t, o.Quantity, matching.Quantity(4))
		assert.GreaterOrEqual(t, o.Owner, matching.Owner(1))
		assert.LessOrEqual(t, o.Owner, matching.Owner(3))
		switch o.Side {
		case matching.Ask:
			asks++
		case matching.Bid:
			bids++
		default:
			t.Fatalf("unexpected side %v", o.Side)
		}
	}
	assert.Positive(t, asks)
	assert.Positive(t, bids)
}

func TestGenerator_Defaults(t *testing.T) {
	g := NewGenerator(GeneratorConfig{MinPrice: 10, MaxPrice: 5})
	assert.Equal(t, matching.Price(30), g.cfg.MaxPrice)
	o, err := g.Next()
	require.NoError(t, err)
	assert.NotZero(t, o.Quantity)
}
