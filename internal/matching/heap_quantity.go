package matching

// 数量桶的大顶堆：堆顶永远是当前最大的数量 key
type maxQtyHeap []Quantity

func (m maxQtyHeap) Len() int {
	return len(m)
}

func (m maxQtyHeap) Less(i, j int) bool {
	return m[i] > m[j]
}

func (m maxQtyHeap) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}

func (m *maxQtyHeap) Push(x any) {
	*m = append(*m, x.(Quantity))
}

func (m *maxQtyHeap) Pop() any {
	old := *m
	n := len(old)
	x := old[n-1]
	*m = old[:n-1]
	return x
}

// peek 堆顶，调用方保证非空
func (m maxQtyHeap) peek() Quantity {
	return m[0]
}
