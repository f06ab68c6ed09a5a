package engine

import "github.com/futuretech6/order-book-trading-system/internal/matching"

// Matcher 被 Actor 独占的撮合核心，*matching.TradingSystem 实现了它
type Matcher interface {
	Submit(order matching.Order) error
	Snapshot() matching.BookSnapshot
	Asks() *matching.OrderBook
	Bids() *matching.OrderBook
}
