package logger

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context 里请求 ID 的 key
type ctxKey struct{}

const ReqIDKey = "req_id"

// 全局 Logger 实例，未初始化时所有方法走 Nop
var Log *zap.Logger

// 运行时可调的日志级别（配置热更新用）
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init 只输出到控制台
func Init(serviceName string, lvl string) {
	InitWithFile(serviceName, lvl, "")
}

// InitWithFile 控制台 + 可选文件，logFile 为空时只写控制台
func InitWithFile(serviceName string, lvl string, logFile string) {
	SetLevel(lvl)

	// 生产环境统一 JSON
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.MessageKey = "msg"

	writeSyncers := []zapcore.WriteSyncer{
		zapcore.AddSync(os.Stdout),
	}
	if logFile != "" {
		// 文件打不开就只写控制台，不中断程序
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
			file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				writeSyncers = append(writeSyncers, zapcore.AddSync(file))
			}
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(writeSyncers...),
		level,
	)

	// 封装了一层，Skip 1 让行号指向调用方
	Log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("service", serviceName))
}

// SetLevel 非法级别退回 info
func SetLevel(lvl string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(lvl)); err != nil {
		l = zap.InfoLevel
	}
	level.SetLevel(l)
}

// Level 当前级别
func Level() zapcore.Level { return level.Level() }

// WithReqID 把请求 ID 放进 ctx
func WithReqID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ReqID 从 ctx 取请求 ID
func ReqID(ctx context.Context) (uint64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(ctxKey{}).(uint64)
	return id, ok
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	get().Info(msg, withReqID(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	get().Error(msg, withReqID(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	get().Warn(msg, withReqID(ctx, fields)...)
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	get().Debug(msg, withReqID(ctx, fields)...)
}

// Fatal 会调用 os.Exit
func Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	get().Fatal(msg, withReqID(ctx, fields)...)
}

func get() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

func withReqID(ctx context.Context, fields []zap.Field) []zap.Field {
	if id, ok := ReqID(ctx); ok && id != 0 {
		fields = append(fields, zap.Uint64(ReqIDKey, id))
	}
	return fields
}

// Sync 刷新缓冲区，main 里 defer 调用
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
