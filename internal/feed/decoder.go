package feed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/futuretech6/order-book-trading-system/internal/matching"
)

// 单行最大 1MB，足够放下一笔订单
const maxLineSize = 1 << 20

// Decoder 按行读取 JSON 订单：
//
//	{"side":"ask","owner":1,"price":100,"quantity":10}
//
// 空行跳过，解析失败带上行号
type Decoder struct {
	sc   *bufio.Scanner
	line int
}

func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Decoder{sc: sc}
}

// Next 读完返回 io.EOF
func (d *Decoder) Next() (matching.Order, error) {
	for d.sc.Scan() {
		d.line++
		b := bytes.TrimSpace(d.sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var o matching.Order
		if err := json.Unmarshal(b, &o); err != nil {
			return matching.Order{}, fmt.Errorf("feed: line %d: %w", d.line, err)
		}
		return o, nil
	}
	if err := d.sc.Err(); err != nil {
		return matching.Order{}, fmt.Errorf("feed: line %d: %w", d.line+1, err)
	}
	return matching.Order{}, io.EOF
}

// Line 最近读到的行号（从 1 开始）
func (d *Decoder) Line() int { return d.line }
