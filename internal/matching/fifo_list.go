package matching

// 双向链表节点，订单按值存放，成交时原地扣减 Quantity
type fifoNode struct {
	prev  *fifoNode
	next  *fifoNode
	order Order
}

// FifoList 时间优先队列
// 新订单追加到队尾，撮合从队头开始 => 天然满足 FIFO
type FifoList struct {
	head *fifoNode
	tail *fifoNode
	size int
	qty  Quantity // 链上剩余总量
}

func NewFifoList() *FifoList {
	return &FifoList{}
}

// Push 追加到队尾
func (l *FifoList) Push(o Order) {
	n := &fifoNode{order: o}
	n.prev, n.next = l.tail, nil
	if l.tail != nil {
		l.tail.next = n
	} else {
		// 空链
		l.head = n
	}
	l.tail = n
	l.size++
	l.qty += o.Quantity
}

// remove 摘链
func (l *FifoList) remove(n *fifoNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	// 断开节点指针，避免误用
	n.prev, n.next = nil, nil
	l.size--
	l.qty -= n.order.Quantity
}

// Consume 用 remaining 从队头开始吃单，直到队列吃空或 remaining 归零
//   - remaining >= 队头数量：全部成交，摘掉队头
//   - 否则：队头部分成交，原地扣减，remaining 置 0
func (l *FifoList) Consume(remaining *Quantity) {
	for *remaining > 0 && l.head != nil {
		n := l.head
		if *remaining >= n.order.Quantity {
			*remaining -= n.order.Quantity
			l.remove(n)
			continue
		}
		n.order.Quantity -= *remaining
		l.qty -= *remaining
		*remaining = 0
	}
}

func (l *FifoList) IsEmpty() bool { return l.size == 0 }

func (l *FifoList) Len() int { return l.size }

func (l *FifoList) TotalQuantity() Quantity { return l.qty }

// Front 队头订单（只读拷贝）
func (l *FifoList) Front() (Order, bool) {
	if l.head == nil {
		return Order{}, false
	}
	return l.head.order, true
}

// Each 按撮合顺序遍历，fn 返回 false 停止
func (l *FifoList) Each(fn func(Order) bool) {
	for n := l.head; n != nil; n = n.next {
		if !fn(n.order) {
			return
		}
	}
}

// Orders 按撮合顺序返回拷贝
func (l *FifoList) Orders() []Order {
	out := make([]Order, 0, l.size)
	l.Each(func(o Order) bool {
		out = append(out, o)
		return true
	})
	return out
}
