package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName 写入每条日志的应用名
const AppName = "tradedash"

// Logger 封装zap日志器
type Logger struct {
	*zap.Logger
	files []*os.File
}

// logFile 一个日志文件及其最低级别，级别为nil时跟随全局级别
type logFile struct {
	name  string
	level zapcore.LevelEnabler
}

var logFiles = []logFile{
	{name: AppName + ".log"},
	{name: AppName + "_error.log", level: zapcore.ErrorLevel},
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewLogger 创建日志记录器。控制台日志写到stderr，stdout留给看板输出；
// JSON日志写入logDir下的文件
func NewLogger(logDir string, level string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	var logLevel zapcore.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = zapcore.InfoLevel
	}

	encCfg := encoderConfig()
	consoleCfg := encCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), logLevel),
	}

	l := &Logger{}
	for _, lf := range logFiles {
		f, err := os.OpenFile(filepath.Join(logDir, lf.name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			l.closeFiles()
			return nil, err
		}
		l.files = append(l.files, f)

		enabler := lf.level
		if enabler == nil {
			enabler = logLevel
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), enabler))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("app", AppName)),
	)
	return l, nil
}

// NewDevelopment 日志目录不可用时的控制台日志器
func NewDevelopment() (*Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapLogger, err := config.Build(zap.Fields(zap.String("app", AppName)))
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: zapLogger}, nil
}

// Component 返回带组件名字段的zap日志器
func (l *Logger) Component(name string) *zap.Logger {
	return l.Logger.With(zap.String("component", name))
}

// Close 刷新缓冲并关闭日志文件
func (l *Logger) Close() error {
	err := l.Logger.Sync()
	l.closeFiles()
	return err
}

func (l *Logger) closeFiles() {
	for _, f := range l.files {
		f.Close()
	}
	l.files = nil
}
