package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ask(owner Owner, price Price, qty Quantity) Order {
	return Order{Side: Ask, Owner: owner, Price: price, Quantity: qty}
}

func bid(owner Owner, price Price, qty Quantity) Order {
	return Order{Side: Bid, Owner: owner, Price: price, Quantity: qty}
}

func owners(orders []Order) []Owner {
	out := make([]Owner, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Owner)
	}
	return out
}

func quantities(orders []Order) []Quantity {
	out := make([]Quantity, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Quantity)
	}
	return out
}

func TestFifoList_PushKeepsArrivalOrder(t *testing.T) {
	l := NewFifoList()
	assert.True(t, l.IsEmpty())

	l.Push(ask(1, 100, 3))
	l.Push(ask(2, 100, 4))
	l.Push(ask(3, 100, 5))

	assert.False(t, l.IsEmpty())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, Quantity(12), l.TotalQuantity())
	assert.Equal(t, []Owner{1, 2, 3}, owners(l.Orders()))

	front, ok := l.Front()
	require.True(t, ok)
	assert.Equal(t, Owner(1), front.Owner)
}

func TestFifoList_Consume(t *testing.T) {
	tests := []struct {
		name          string
		remaining     Quantity
		wantRemaining Quantity
		wantOwners    []Owner
		wantQty       []Quantity
	}{
		{name: "部分成交停在队头", remaining: 2, wantRemaining: 0, wantOwners: []Owner{1, 2}, wantQty: []Quantity{3, 5}},
		{name: "刚好吃掉队头", remaining: 5, wantRemaining: 0, wantOwners: []Owner{2}, wantQty: []Quantity{5}},
		{name: "吃掉队头再部分成交", remaining: 7, wantRemaining: 0, wantOwners: []Owner{2}, wantQty: []Quantity{3}},
		{name: "整条队列吃空还有剩余", remaining: 12, wantRemaining: 2, wantOwners: []Owner{}, wantQty: []Quantity{}},
		{name: "remaining 为 0 不动", remaining: 0, wantRemaining: 0, wantOwners: []Owner{1, 2}, wantQty: []Quantity{5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewFifoList()
			l.Push(ask(1, 100, 5))
			l.Push(ask(2, 100, 5))

			remaining := tt.remaining
			l.Consume(&remaining)

			assert.Equal(t, tt.wantRemaining, remaining)
			assert.Equal(t, tt.wantOwners, owners(l.Orders()))
			assert.Equal(t, tt.wantQty, quantities(l.Orders()))
			assert.Equal(t, len(tt.wantOwners), l.Len())

			var sum Quantity
			for _, q := range tt.wantQty {
				sum += q
			}
			assert.Equal(t, sum, l.TotalQuantity())
		})
	}
}

func TestFifoList_ConsumeEmpty(t *testing.T) {
	l := NewFifoList()
	remaining := Quantity(4)
	l.Consume(&remaining)
	assert.Equal(t, Quantity(4), remaining)
	_, ok := l.Front()
	assert.False(t, ok)
}

func TestFifoList_ReuseAfterDrain(t *testing.T) {
	l := NewFifoList()
	l.Push(ask(1, 100, 1))
	remaining := Quantity(1)
	l.Consume(&remaining)
	require.True(t, l.IsEmpty())

	// 吃空后 head/tail 都要复位，否则再入队会断链
	l.Push(ask(2, 100, 2))
	l.Push(ask(3, 100, 3))
	assert.Equal(t, []Owner{2, 3}, owners(l.Orders()))
}
