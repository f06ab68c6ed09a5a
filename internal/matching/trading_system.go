package matching

import (
	"fmt"
	"strings"
)

// TradingSystem 一对订单簿 + 一个固定的优先级策略
// 单线程：Submit 跑完才返回，并发调用方需要自己串行化（见 internal/engine）
type TradingSystem struct {
	policy PriorityPolicy
	asks   *OrderBook // 卖盘
	bids   *OrderBook // 买盘
}

func New(policy PriorityPolicy) *TradingSystem {
	return &TradingSystem{
		policy: policy,
		asks:   NewOrderBook(),
		bids:   NewOrderBook(),
	}
}

func (ts *TradingSystem) Policy() PriorityPolicy { return ts.policy }

// Asks 卖盘（只读使用）
func (ts *TradingSystem) Asks() *OrderBook { return ts.asks }

// Bids 买盘（只读使用）
func (ts *TradingSystem) Bids() *OrderBook { return ts.bids }

// Submit 撮合一笔订单，剩余部分挂单入簿
//
// 撮合时不检查价格是否可成交：卖单会按从高到低吃掉所有买价位，买单按从低到高吃掉
// 所有卖价位，相当于对价格来说每笔单都是市价单，只有遍历顺序体现价格优先。
// 集成方如果需要限价保护，必须在进入 Submit 之前自己判断。
//
// 校验失败时订单簿不会有任何改动。
func (ts *TradingSystem) Submit(order Order) error {
	if order.Quantity == 0 {
		return ErrZeroQuantity
	}
	switch order.Side {
	case Ask:
		ts.handleAsk(order)
	case Bid:
		ts.handleBid(order)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownSide, uint8(order.Side))
	}
	return nil
}

// 卖单：从最高买价往下吃
func (ts *TradingSystem) handleAsk(order Order) {
	remaining := order.Quantity
	ts.bids.Descend(func(_ Price, lv *OrderList) bool {
		lv.Consume(&remaining)
		return remaining > 0
	})
	// 清掉被吃空的价位
	ts.bids.RemoveEmptyLevels()
	ts.rest(ts.asks, order, remaining)
}

// 买单：从最低卖价往上吃
func (ts *TradingSystem) handleBid(order Order) {
	remaining := order.Quantity
	ts.asks.Ascend(func(_ Price, lv *OrderList) bool {
		lv.Consume(&remaining)
		return remaining > 0
	})
	ts.asks.RemoveEmptyLevels()
	ts.rest(ts.bids, order, remaining)
}

// rest 没吃完的部分挂到本方订单簿
func (ts *TradingSystem) rest(book *OrderBook, order Order, remaining Quantity) {
	if remaining == 0 {
		return
	}
	order.Quantity = remaining
	book.EntryOrCreate(order.Price, ts.policy).Push(order)
}

func (ts *TradingSystem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TradingSystem{policy=%s}\n", ts.policy)
	sb.WriteString("asks:\n")
	ts.asks.Descend(func(p Price, lv *OrderList) bool {
		fmt.Fprintf(&sb, "  @%d\n", p)
		lv.Each(func(o Order) bool {
			fmt.Fprintf(&sb, "    owner=%d qty=%d\n", o.Owner, o.Quantity)
			return true
		})
		return true
	})
	sb.WriteString("bids:\n")
	ts.bids.Descend(func(p Price, lv *OrderList) bool {
		fmt.Fprintf(&sb, "  @%d\n", p)
		lv.Each(func(o Order) bool {
			fmt.Fprintf(&sb, "    owner=%d qty=%d\n", o.Owner, o.Quantity)
			return true
		})
		return true
	})
	return sb.String()
}
