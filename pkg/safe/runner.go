package safe

import (
	"context"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/futuretech6/order-book-trading-system/pkg/logger"
)

// Go 安全启动协程，panic 会被恢复并记录堆栈
func Go(fn func()) {
	GoCtx(context.Background(), func(context.Context) { fn() })
}

// GoCtx 携带 ctx 启动，日志里保留 req_id
func GoCtx(ctx context.Context, fn func(ctx context.Context)) {
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		defer Recover(ctx)
		fn(ctx)
	}()
}

// Recover 需要直接 defer 调用
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		logger.Error(ctx, "goroutine panic recovered",
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())),
		)
	}
}
