package matching

// LevelSnapshot 一个价位的只读视图
type LevelSnapshot struct {
	Price    Price          `json:"price"`
	Quantity Quantity       `json:"quantity"`
	Policy   PriorityPolicy `json:"policy"`
	Orders   []Order        `json:"orders"`
}

// BookSnapshot 两边盘口，均为最优价在前
type BookSnapshot struct {
	Policy PriorityPolicy  `json:"policy"`
	Asks   []LevelSnapshot `json:"asks"`
	Bids   []LevelSnapshot `json:"bids"`
}

// Snapshot 拷贝当前状态，之后的 Submit 不会影响返回值
func (ts *TradingSystem) Snapshot() BookSnapshot {
	s := BookSnapshot{
		Policy: ts.policy,
		Asks:   make([]LevelSnapshot, 0, ts.asks.Len()),
		Bids:   make([]LevelSnapshot, 0, ts.bids.Len()),
	}
	// 卖盘低价优先，买盘高价优先
	ts.asks.Ascend(func(p Price, lv *OrderList) bool {
		s.Asks = append(s.Asks, levelSnapshot(p, lv))
		return true
	})
	ts.bids.Descend(func(p Price, lv *OrderList) bool {
		s.Bids = append(s.Bids, levelSnapshot(p, lv))
		return true
	})
	return s
}

func levelSnapshot(p Price, lv *OrderList) LevelSnapshot {
	return LevelSnapshot{
		Price:    p,
		Quantity: lv.TotalQuantity(),
		Policy:   lv.Policy(),
		Orders:   lv.Orders(),
	}
}
