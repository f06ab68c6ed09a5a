package feed

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/futuretech6/order-book-trading-system/internal/engine"
	"github.com/futuretech6/order-book-trading-system/internal/matching"
	"github.com/futuretech6/order-book-trading-system/pkg/logger"
)

// Source Decoder 和 Generator 都实现了它
type Source interface {
	Next() (matching.Order, error)
}

// Sink 一般是 *engine.Actor
type Sink interface {
	Submit(ctx context.Context, cmd engine.Command) error
}

// Limiter 按 owner 限速，*ratelimit.Store 实现了它
type Limiter interface {
	Wait(ctx context.Context, owner uint64) error
}

type PumpOption func(*pumpOptions)

type pumpOptions struct {
	limiter Limiter
}

// WithLimiter 每笔订单投递前先按 owner 拿令牌
func WithLimiter(l Limiter) PumpOption {
	return func(o *pumpOptions) { o.limiter = l }
}

// Pump 把 src 里的订单依次投递给 sink，ReqID 从 1 开始递增
// src 读完返回 nil，返回值是成功投递的条数
func Pump(ctx context.Context, src Source, sink Sink, opts ...PumpOption) (int, error) {
	var po pumpOptions
	for _, opt := range opts {
		opt(&po)
	}

	var n int
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		o, err := src.Next()
		if errors.Is(err, io.EOF) {
			logger.Info(ctx, "feed drained", zap.Int("orders", n))
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if po.limiter != nil {
			if err := po.limiter.Wait(ctx, o.Owner); err != nil {
				return n, err
			}
		}
		if err := sink.Submit(ctx, engine.Command{ReqID: uint64(n + 1), Order: o}); err != nil {
			return n, err
		}
		n++
	}
}
