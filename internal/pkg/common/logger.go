package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger 全局日誌實例，InitLogger 之前為 no-op
	Logger  = zap.NewNop()
	LogMode string

	// 定義日誌級別的顏色
	levelColors = map[zapcore.Level]string{
		zapcore.DebugLevel: "\033[36m", // 青色
		zapcore.InfoLevel:  "\033[32m", // 綠色
		zapcore.WarnLevel:  "\033[33m", // 黃色
		zapcore.ErrorLevel: "\033[31m", // 紅色
		zapcore.FatalLevel: "\033[35m", // 紫色
	}
	resetColor = "\033[0m"

	// concise 模式下仍輸出的訊息
	conciseMessages = map[string]bool{
		"請求完成":                     true,
		"啟動應用":                     true,
		"Server exited":            true,
		"Shutting down server...": true,
	}
)

// 自定義編碼器配置
func getEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   nil,
	}
}

// 自定義時間格式
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// 自定義級別編碼器（添加顏色）
func customLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(levelColors[l] + shortLevel(l) + resetColor)
}

func shortLevel(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return "DBG"
	case zapcore.InfoLevel:
		return "INF"
	case zapcore.WarnLevel:
		return "WRN"
	case zapcore.ErrorLevel:
		return "ERR"
	case zapcore.FatalLevel:
		return "FAT"
	}
	return l.CapitalString()
}

// ParseLevel 解析日誌級別字串，未知值回退為 info
func ParseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger 初始化日誌系統；logFile 為空時只輸出到終端
func InitLogger(logLevel, logFile string) error {
	level := ParseLevel(logLevel)

	// 讀取 LOG_MODE（必須在 .env 載入後）
	LogMode = os.Getenv("LOG_MODE")

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(getEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		level,
	)
	cores := []zapcore.Core{consoleCore}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		fileConfig := getEncoderConfig()
		fileConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileConfig),
			zapcore.AddSync(f),
			level,
		))
	}

	Logger = zap.New(zapcore.NewTee(cores...),
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("service", "recipe-viewer"),
		),
	)
	zap.ReplaceGlobals(Logger)

	return nil
}

// SetLogger 替換全局 logger（測試用）
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l
}

// filterFields 過濾掉原始文件內容，避免整份 JSON 進入日誌
func filterFields(fields []zap.Field) []zap.Field {
	filtered := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if field.Key == "body" || strings.HasSuffix(field.Key, "_raw") {
			continue
		}
		filtered = append(filtered, field)
	}
	return filtered
}

// LogInfo 記錄信息日誌
func LogInfo(msg string, fields ...zap.Field) {
	if LogMode == "concise" && !conciseMessages[msg] {
		return
	}
	Logger.Info(msg, filterFields(fields)...)
}

// LogError 記錄錯誤日誌
func LogError(msg string, fields ...zap.Field) {
	Logger.Error(msg, filterFields(fields)...)
}

// LogWarn 記錄警告日誌
func LogWarn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, filterFields(fields)...)
}

// LogDebug 記錄調試日誌
func LogDebug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, filterFields(fields)...)
}

// LogFatal 記錄致命錯誤日誌
func LogFatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Sync 同步日誌緩衝
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogCacheHit 記錄快取命中
func LogCacheHit(cacheType, key string) {
	LogDebug("快取命中", zap.String("類型", cacheType), zap.String("鍵", key))
}

// LogCacheMiss 記錄快取未命中
func LogCacheMiss(cacheType, key string) {
	LogDebug("快取未命中", zap.String("類型", cacheType), zap.String("鍵", key))
}

// LogFetch 記錄資料讀取
func LogFetch(source, locator string, duration time.Duration, err error) {
	if err != nil {
		LogError("資料讀取失敗",
			zap.String("source", source),
			zap.String("locator", locator),
			zap.Duration("耗時", duration),
			zap.Error(err),
		)
		return
	}
	LogDebug("資料讀取成功",
		zap.String("source", source),
		zap.String("locator", locator),
		zap.Duration("耗時", duration),
	)
}
