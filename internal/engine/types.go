package engine

import (
	"errors"

	"github.com/futuretech6/order-book-trading-system/internal/matching"
)

// Command 入队即返回，结果通过订单簿状态观察
type Command struct {
	ReqID uint64 // 上游追踪用，写进日志
	Order matching.Order
}

type ActorConfig struct {
	MailboxSize int // mailbox 容量
	BatchMax    int // 一次最多拿多少条
}

const (
	defaultMailboxSize = 4096
	defaultBatchMax    = 256
)

func (c ActorConfig) withDefaults() ActorConfig {
	if c.MailboxSize <= 0 {
		c.MailboxSize = defaultMailboxSize
	}
	if c.BatchMax <= 0 {
		c.BatchMax = defaultBatchMax
	}
	return c
}

// 定义错误
var (
	ErrEngineBusy    = errors.New("engine busy: mailbox full")
	ErrEngineStopped = errors.New("engine stopped")
)
