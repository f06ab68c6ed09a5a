package matching

import (
	"container/heap"
	"slices"
)

// QuantityList 数量优先队列
// quantity -> FIFO 子队列；撮合永远先打最大的 key，同一个桶内按时间。
//
// 注意：部分成交后订单不会挪到新数量对应的桶，仍然挂在原来的 key 下直到被吃掉。
// 所以数量优先只在入队那一刻是精确的，之后可能漂移。
type QuantityList struct {
	buckets map[Quantity]*FifoList
	keys    maxQtyHeap // 只包含非空桶的 key
	size    int
	qty     Quantity
}

func NewQuantityList() *QuantityList {
	l := &QuantityList{
		buckets: make(map[Quantity]*FifoList, 8),
	}
	heap.Init(&l.keys)
	return l
}

// Push 按订单当前数量找桶（没有就建），追加到桶尾
func (l *QuantityList) Push(o Order) {
	b := l.buckets[o.Quantity]
	if b == nil {
		b = NewFifoList()
		l.buckets[o.Quantity] = b
		heap.Push(&l.keys, o.Quantity) // 新桶：入堆
	}
	b.Push(o)
	l.size++
	l.qty += o.Quantity
}

// Consume 反复取最大桶做时间优先撮合，桶空了就删掉
func (l *QuantityList) Consume(remaining *Quantity) {
	for *remaining > 0 && l.keys.Len() > 0 {
		key := l.keys.peek()
		b := l.buckets[key]

		beforeLen, beforeQty := b.Len(), b.TotalQuantity()
		b.Consume(remaining)
		l.size -= beforeLen - b.Len()
		l.qty -= beforeQty - b.TotalQuantity()

		if b.IsEmpty() {
			heap.Pop(&l.keys)
			delete(l.buckets, key)
		}
	}
}

func (l *QuantityList) IsEmpty() bool { return l.size == 0 }

func (l *QuantityList) Len() int { return l.size }

func (l *QuantityList) TotalQuantity() Quantity { return l.qty }

// BucketKeys 桶 key，从大到小
func (l *QuantityList) BucketKeys() []Quantity {
	keys := make([]Quantity, len(l.keys))
	copy(keys, l.keys)
	slices.Sort(keys)
	slices.Reverse(keys)
	return keys
}

// Bucket 某个 key 下的订单（只读拷贝）
func (l *QuantityList) Bucket(key Quantity) ([]Order, bool) {
	b := l.buckets[key]
	if b == nil {
		return nil, false
	}
	return b.Orders(), true
}

// Each 桶从大到小，桶内按时间
func (l *QuantityList) Each(fn func(Order) bool) {
	for _, key := range l.BucketKeys() {
		stop := false
		l.buckets[key].Each(func(o Order) bool {
			if !fn(o) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}

func (l *QuantityList) Orders() []Order {
	out := make([]Order, 0, l.size)
	l.Each(func(o Order) bool {
		out = append(out, o)
		return true
	})
	return out
}
