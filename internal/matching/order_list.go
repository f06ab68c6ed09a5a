package matching

import (
	"fmt"
	"strings"
)

// OrderList 同一价位的订单，按时间或按数量排序
// 两种实现二选一，撮合逻辑只看 Push / Consume / IsEmpty，不关心是哪一种
type OrderList struct {
	policy PriorityPolicy
	time   *FifoList     // policy == TimePriority
	qty    *QuantityList // policy == QuantityPriority
}

func NewTimePriorityList() *OrderList {
	return &OrderList{policy: TimePriority, time: NewFifoList()}
}

func NewQuantityPriorityList() *OrderList {
	return &OrderList{policy: QuantityPriority, qty: NewQuantityList()}
}

// NewOrderList 按策略创建；未知策略退回时间优先
func NewOrderList(p PriorityPolicy) *OrderList {
	if p == QuantityPriority {
		return NewQuantityPriorityList()
	}
	return NewTimePriorityList()
}

func (l *OrderList) Policy() PriorityPolicy { return l.policy }

func (l *OrderList) Push(o Order) {
	switch l.policy {
	case QuantityPriority:
		l.qty.Push(o)
	default:
		l.time.Push(o)
	}
}

func (l *OrderList) Consume(remaining *Quantity) {
	switch l.policy {
	case QuantityPriority:
		l.qty.Consume(remaining)
	default:
		l.time.Consume(remaining)
	}
}

func (l *OrderList) IsEmpty() bool {
	switch l.policy {
	case QuantityPriority:
		return l.qty.IsEmpty()
	default:
		return l.time.IsEmpty()
	}
}

func (l *OrderList) Len() int {
	switch l.policy {
	case QuantityPriority:
		return l.qty.Len()
	default:
		return l.time.Len()
	}
}

func (l *OrderList) TotalQuantity() Quantity {
	switch l.policy {
	case QuantityPriority:
		return l.qty.TotalQuantity()
	default:
		return l.time.TotalQuantity()
	}
}

// Each 按撮合顺序遍历
func (l *OrderList) Each(fn func(Order) bool) {
	switch l.policy {
	case QuantityPriority:
		l.qty.Each(fn)
	default:
		l.time.Each(fn)
	}
}

// Orders 按撮合顺序返回拷贝
func (l *OrderList) Orders() []Order {
	switch l.policy {
	case QuantityPriority:
		return l.qty.Orders()
	default:
		return l.time.Orders()
	}
}

// Time 底层时间优先队列，不是该类型时 ok=false
func (l *OrderList) Time() (*FifoList, bool) {
	return l.time, l.policy == TimePriority
}

// Quantity 底层数量优先队列，不是该类型时 ok=false
func (l *OrderList) Quantity() (*QuantityList, bool) {
	return l.qty, l.policy == QuantityPriority
}

func (l *OrderList) String() string {
	var sb strings.Builder
	label := "Time Priority Order"
	if l.policy == QuantityPriority {
		label = "Quantity Priority Order"
	}
	l.Each(func(o Order) bool {
		fmt.Fprintf(&sb, "%s: %s\n", label, o)
		return true
	})
	return sb.String()
}
