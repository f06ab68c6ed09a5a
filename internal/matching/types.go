package matching

import (
	"errors"
	"fmt"
	"strings"
)

// 定义数据结构

type (
	Price    = uint64 // 限价
	Quantity = uint64 // 剩余可成交数量
	Owner    = uint64 // 下单方，引擎不解释
)

// Side 买卖方向
type Side uint8

const (
	Ask Side = iota + 1 // 卖
	Bid                 // 买
)

func (s Side) String() string {
	switch s {
	case Ask:
		return "ask"
	case Bid:
		return "bid"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Opposite 返回对手方
func (s Side) Opposite() Side {
	if s == Ask {
		return Bid
	}
	return Ask
}

func (s Side) MarshalText() ([]byte, error) {
	if s != Ask && s != Bid {
		return nil, ErrUnknownSide
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "ask", "sell":
		*s = Ask
	case "bid", "buy":
		*s = Bid
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSide, string(b))
	}
	return nil
}

// PriorityPolicy 同价位内的撮合优先级
type PriorityPolicy uint8

const (
	TimePriority     PriorityPolicy = iota // 先到先成交
	QuantityPriority                       // 剩余数量大的先成交，同量按时间
)

func (p PriorityPolicy) String() string {
	switch p {
	case TimePriority:
		return "time"
	case QuantityPriority:
		return "quantity"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePriorityPolicy 解析配置里的 "time" / "quantity"
func ParsePriorityPolicy(s string) (PriorityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "time", "fifo":
		return TimePriority, nil
	case "quantity", "size":
		return QuantityPriority, nil
	default:
		return TimePriority, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func (p PriorityPolicy) MarshalText() ([]byte, error) {
	if p != TimePriority && p != QuantityPriority {
		return nil, ErrUnknownPolicy
	}
	return []byte(p.String()), nil
}

func (p *PriorityPolicy) UnmarshalText(b []byte) error {
	v, err := ParsePriorityPolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Order 订单
// 在数量优先的结构里只按 Quantity 比较，Price / Owner 不参与排序
type Order struct {
	Side     Side     `json:"side"`
	Owner    Owner    `json:"owner"`
	Price    Price    `json:"price"`
	Quantity Quantity `json:"quantity"`
}

func (o Order) String() string {
	return fmt.Sprintf("Order{side=%s owner=%d price=%d qty=%d}", o.Side, o.Owner, o.Price, o.Quantity)
}

// 定义错误
var (
	ErrZeroQuantity  = errors.New("order quantity must be positive")
	ErrUnknownSide   = errors.New("unknown order side")
	ErrUnknownPolicy = errors.New("unknown priority policy")
)
