package engine

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/futuretech6/order-book-trading-system/internal/matching"
	"github.com/futuretech6/order-book-trading-system/pkg/logger"
	"github.com/futuretech6/order-book-trading-system/pkg/metrics"
	"github.com/futuretech6/order-book-trading-system/pkg/safe"
)

// mailbox 里的一条请求：要么是下单命令，要么是读快照
type request struct {
	cmd  Command
	view chan matching.BookSnapshot // 非 nil 表示快照请求
}

// Actor 单写者：只有 Run 所在的协程会碰 Matcher
// 多个调用方并发投递，最终按入队顺序串行执行
type Actor struct {
	m   Matcher
	in  chan request
	cfg ActorConfig

	done chan struct{} // Run 退出时关闭

	seq         atomic.Uint64 // 已执行命令的序号，单调递增
	processed   atomic.Uint64
	rejected    atomic.Uint64
	mailboxFull atomic.Uint64
}

func NewActor(m Matcher, cfg ActorConfig) *Actor {
	cfg = cfg.withDefaults()
	return &Actor{
		m:    m,
		in:   make(chan request, cfg.MailboxSize),
		cfg:  cfg,
		done: make(chan struct{}),
	}
}

// TrySubmit 非阻塞投递，mailbox 满了直接返回 ErrEngineBusy
func (a *Actor) TrySubmit(cmd Command) error {
	if a.stopped() {
		return ErrEngineStopped
	}
	select {
	case a.in <- request{cmd: cmd}:
		return nil
	default:
		a.mailboxFull.Add(1)
		metrics.MailboxFullTotal.Inc()
		return ErrEngineBusy
	}
}

// Submit 阻塞投递，直到入队、ctx 取消或 actor 退出
func (a *Actor) Submit(ctx context.Context, cmd Command) error {
	if a.stopped() {
		return ErrEngineStopped
	}
	select {
	case a.in <- request{cmd: cmd}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-a.done:
		return ErrEngineStopped
	}
}

// Snapshot 在 actor 协程里拷贝订单簿，能看到在它之前入队的所有命令的结果
func (a *Actor) Snapshot(ctx context.Context) (matching.BookSnapshot, error) {
	if a.stopped() {
		return matching.BookSnapshot{}, ErrEngineStopped
	}
	view := make(chan matching.BookSnapshot, 1)
	select {
	case a.in <- request{view: view}:
	case <-ctx.Done():
		return matching.BookSnapshot{}, ctx.Err()
	case <-a.done:
		return matching.BookSnapshot{}, ErrEngineStopped
	}
	select {
	case s := <-view:
		return s, nil
	case <-ctx.Done():
		return matching.BookSnapshot{}, ctx.Err()
	case <-a.done:
		return matching.BookSnapshot{}, ErrEngineStopped
	}
}

func (a *Actor) Seq() uint64         { return a.seq.Load() }
func (a *Actor) Processed() uint64   { return a.processed.Load() }
func (a *Actor) Rejected() uint64    { return a.rejected.Load() }
func (a *Actor) MailboxFull() uint64 { return a.mailboxFull.Load() }

func (a *Actor) stopped() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// Done Run 退出后关闭
func (a *Actor) Done() <-chan struct{} { return a.done }

// Start 后台启动 Run
func (a *Actor) Start(ctx context.Context) {
	safe.GoCtx(ctx, a.Run)
}

// Run 只能调用一次，ctx 取消后返回
func (a *Actor) Run(ctx context.Context) {
	defer close(a.done)

	// 复用 batch slice，避免每轮分配
	batch := make([]request, 0, a.cfg.BatchMax)
	for {
		var first request
		// 先阻塞拿 1 条，再尽量多拿几条（不阻塞）
		select {
		case <-ctx.Done():
			return
		case first = <-a.in:
		}
		batch = batch[:0]
		batch = append(batch, first)
		for len(batch) < a.cfg.BatchMax {
			select {
			case r := <-a.in:
				batch = append(batch, r)
			default:
				goto PROCESS
			}
		}
	PROCESS:
		for i := range batch {
			a.apply(ctx, batch[i])
			batch[i] = request{} // 释放 view chan
		}
		metrics.BatchSize.Observe(float64(len(batch)))
		a.observeBook()
	}
}

func (a *Actor) apply(ctx context.Context, r request) {
	if r.view != nil {
		r.view <- a.m.Snapshot()
		return
	}

	seq := a.seq.Add(1)
	o := r.cmd.Order
	ctx = logger.WithReqID(ctx, r.cmd.ReqID)

	if err := a.m.Submit(o); err != nil {
		a.rejected.Add(1)
		metrics.OrdersRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		logger.Warn(ctx, "order rejected",
			zap.Uint64("seq", seq),
			zap.Stringer("order", o),
			zap.Error(err),
		)
		return
	}
	a.processed.Add(1)
	metrics.OrdersSubmittedTotal.WithLabelValues(o.Side.String()).Inc()
	logger.Debug(ctx, "order applied",
		zap.Uint64("seq", seq),
		zap.Stringer("side", o.Side),
		zap.Uint64("owner", o.Owner),
		zap.Uint64("price", o.Price),
		zap.Uint64("qty", o.Quantity),
	)
}

func (a *Actor) observeBook() {
	asks, bids := a.m.Asks(), a.m.Bids()
	metrics.BookLevels.WithLabelValues(matching.Ask.String()).Set(float64(asks.Len()))
	metrics.BookLevels.WithLabelValues(matching.Bid.String()).Set(float64(bids.Len()))
	metrics.RestingQuantity.WithLabelValues(matching.Ask.String()).Set(float64(asks.TotalQuantity()))
	metrics.RestingQuantity.WithLabelValues(matching.Bid.String()).Set(float64(bids.TotalQuantity()))
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, matching.ErrZeroQuantity):
		return "zero_quantity"
	case errors.Is(err, matching.ErrUnknownSide):
		return "unknown_side"
	default:
		return "other"
	}
}
