package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 把输出劫持到内存 buffer，级别跟随全局 AtomicLevel
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buffer := &bytes.Buffer{}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.MessageKey = "msg"
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(buffer), level)
	Log = zap.New(core)
	t.Cleanup(func() {
		Log = nil
		SetLevel("info")
	})
	return buffer
}

func TestLogger_Info_WithReqID(t *testing.T) {
	buffer := captureLog(t)

	ctx := WithReqID(context.Background(), 42)
	Info(ctx, "order applied", zap.String("side", "ask"), zap.Uint64("qty", 10))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry), "日志输出必须是合法的 JSON")

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "order applied", entry["msg"])
	assert.Equal(t, "ask", entry["side"])
	assert.Equal(t, float64(10), entry["qty"])
	assert.Equal(t, float64(42), entry[ReqIDKey], "req_id 未能自动注入到日志中")
}

func TestLogger_Error_NoReqID(t *testing.T) {
	buffer := captureLog(t)

	Error(context.Background(), "submit rejected", zap.String("reason", "zero_quantity"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	_, exists := entry[ReqIDKey]
	assert.False(t, exists, "没有 req_id 的 ctx 不应该输出 req_id 字段")
	assert.Equal(t, "error", entry["level"])
}

func TestLogger_SetLevel(t *testing.T) {
	buffer := captureLog(t)

	SetLevel("warn")
	assert.Equal(t, zapcore.WarnLevel, Level())
	Info(context.Background(), "dropped")
	assert.Zero(t, buffer.Len())

	SetLevel("debug")
	Debug(context.Background(), "kept")
	assert.Contains(t, buffer.String(), "kept")

	SetLevel("nonsense")
	assert.Equal(t, zapcore.InfoLevel, Level())
}

func TestLogger_NilIsNop(t *testing.T) {
	Log = nil
	assert.NotPanics(t, func() {
		Info(context.TODO(), "no logger yet")
		Sync()
	})
}
