package matching

import (
	"slices"
)

// OrderBook 单边订单簿：price -> 价位队列
// prices 始终升序且不重复，和 levels 一一对应
type OrderBook struct {
	levels map[Price]*OrderList
	prices []Price
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		levels: make(map[Price]*OrderList, 1024),
		prices: make([]Price, 0, 1024),
	}
}

// EntryOrCreate 取价位队列，没有就按 policy 新建
// 对已存在的价位是幂等的，已有价位保留创建时的策略
func (b *OrderBook) EntryOrCreate(price Price, policy PriorityPolicy) *OrderList {
	if lv := b.levels[price]; lv != nil {
		return lv
	}
	lv := NewOrderList(policy)
	b.levels[price] = lv
	// 二分找插入位置
	i, _ := slices.BinarySearch(b.prices, price)
	b.prices = slices.Insert(b.prices, i, price)
	return lv
}

// RemoveEmptyLevels 删除所有空价位
func (b *OrderBook) RemoveEmptyLevels() {
	kept := b.prices[:0]
	for _, p := range b.prices {
		if b.levels[p].IsEmpty() {
			delete(b.levels, p)
			continue
		}
		kept = append(kept, p)
	}
	b.prices = kept
}

// Ascend 价格从低到高，fn 返回 false 停止
func (b *OrderBook) Ascend(fn func(Price, *OrderList) bool) {
	for i := 0; i < len(b.prices); i++ {
		p := b.prices[i]
		if !fn(p, b.levels[p]) {
			return
		}
	}
}

// Descend 价格从高到低，fn 返回 false 停止
func (b *OrderBook) Descend(fn func(Price, *OrderList) bool) {
	for i := len(b.prices) - 1; i >= 0; i-- {
		p := b.prices[i]
		if !fn(p, b.levels[p]) {
			return
		}
	}
}

// Level 查价位
func (b *OrderBook) Level(price Price) (*OrderList, bool) {
	lv, ok := b.levels[price]
	return lv, ok
}

// Len 价位个数
func (b *OrderBook) Len() int { return len(b.prices) }

func (b *OrderBook) IsEmpty() bool { return len(b.prices) == 0 }

// Prices 升序价格拷贝
func (b *OrderBook) Prices() []Price {
	return slices.Clone(b.prices)
}

// Lowest 最低价
func (b *OrderBook) Lowest() (Price, bool) {
	if len(b.prices) == 0 {
		return 0, false
	}
	return b.prices[0], true
}

// Highest 最高价
func (b *OrderBook) Highest() (Price, bool) {
	if len(b.prices) == 0 {
		return 0, false
	}
	return b.prices[len(b.prices)-1], true
}

// OrderCount 所有价位的订单数
func (b *OrderBook) OrderCount() int {
	n := 0
	for _, lv := range b.levels {
		n += lv.Len()
	}
	return n
}

// TotalQuantity 所有价位的剩余量
func (b *OrderBook) TotalQuantity() Quantity {
	var q Quantity
	for _, lv := range b.levels {
		q += lv.TotalQuantity()
	}
	return q
}
