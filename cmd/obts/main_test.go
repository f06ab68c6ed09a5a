package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuretech6/order-book-trading-system/internal/matching"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func runWith(t *testing.T, yaml string, stdin string) matching.BookSnapshot {
	t.Helper()
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "obts.yaml", yaml)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfgPath, strings.NewReader(stdin), &out))

	var snap matching.BookSnapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	return snap
}

func TestRun_QuantityPriorityFromStdin(t *testing.T) {
	yaml := `
name: obts-test
log:
  level: error
trading:
  priority: quantity
feed:
  input: "-"
`
	orders := strings.Join([]string{
		`{"side":"bid","owner":1,"price":100,"quantity":5}`,
		`{"side":"bid","owner":2,"price":100,"quantity":10}`,
		`{"side":"ask","owner":3,"price":100,"quantity":5}`,
	}, "\n")

	snap := runWith(t, yaml, orders)
	assert.Equal(t, matching.QuantityPriority, snap.Policy)
	assert.Empty(t, snap.Asks)
	require.Len(t, snap.Bids, 1)
	assert.Equal(t, matching.Quantity(10), snap.Bids[0].Quantity)
	// 旧桶 key 不变：owner 2 还在 10 的桶里，只剩 5
	require.Len(t, snap.Bids[0].Orders, 2)
	assert.Equal(t, matching.Owner(2), snap.Bids[0].Orders[0].Owner)
	assert.Equal(t, matching.Quantity(5), snap.Bids[0].Orders[0].Quantity)
	assert.Equal(t, matching.Owner(1), snap.Bids[0].Orders[1].Owner)
}

func TestRun_GeneratedFeedIsDeterministic(t *testing.T) {
	yaml := `
log:
  level: error
trading:
  priority: time
feed:
  generate: 500
  seed: 9
  min_price: 10
  max_price: 20
`
	a := runWith(t, yaml, "")
	b := runWith(t, yaml, "")
	assert.Equal(t, a, b)
	// 没有价格检查，任何时刻最多一边有挂单
	assert.True(t, len(a.Asks) == 0 || len(a.Bids) == 0)
}

func TestRun_FeedFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "orders.jsonl",
		`{"side":"ask","owner":1,"price":101,"quantity":4}`+"\n"+
			`{"side":"ask","owner":2,"price":100,"quantity":4}`+"\n")
	yaml := "log:\n  level: error\nfeed:\n  input: " + input + "\n"

	snap := runWith(t, yaml, "")
	require.Len(t, snap.Asks, 2)
	assert.Equal(t, matching.Price(100), snap.Asks[0].Price)
	assert.Equal(t, matching.Price(101), snap.Asks[1].Price)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	badPolicy := writeFile(t, dir, "bad.yaml", "trading:\n  priority: random\n")
	err := run(context.Background(), badPolicy, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, matching.ErrUnknownPolicy)

	missingFeed := writeFile(t, dir, "missing.yaml", "log:\n  level: error\nfeed:\n  input: "+filepath.Join(dir, "nope.jsonl")+"\n")
	err = run(context.Background(), missingFeed, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "open feed")

	badLine := writeFile(t, dir, "badline.yaml", "log:\n  level: error\nfeed:\n  input: \"-\"\n")
	err = run(context.Background(), badLine, strings.NewReader("{nope"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "line 1")

	err = run(context.Background(), filepath.Join(dir, "absent.yaml"), strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "load config")
}

func TestRun_RateLimitedFeed(t *testing.T) {
	yaml := `
log:
  level: error
feed:
  generate: 20
  seed: 5
  owners: 4
  rate: 100000
  burst: 100
`
	a := runWith(t, yaml, "")
	b := runWith(t, yaml, "")
	assert.Equal(t, a, b)
}
