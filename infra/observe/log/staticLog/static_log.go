package staticLog

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 进程级日志, 未调用 Init 时输出到 stderr, info 级别
var Log = newDefault()

var mu sync.Mutex

type LogConfig struct {
	Level      string `yaml:"level"`      // trace/debug/info/warn/error
	File       string `yaml:"file"`       // 为空时输出到 stderr
	MaxSize    int    `yaml:"maxsize"`    // MB
	MaxBackups int    `yaml:"maxbackups"` // 保留旧文件个数
	MaxAge     int    `yaml:"maxage"`     // 天
	Compress   bool   `yaml:"compress"`
	Console    bool   `yaml:"console"` // 写文件时同时输出到 stderr
}

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	return l
}

// Init 按配置重置全局日志
func Init(cfg LogConfig) error {
	mu.Lock()
	defer mu.Unlock()

	level := logrus.InfoLevel
	if s := strings.TrimSpace(cfg.Level); s != "" {
		lv, err := logrus.ParseLevel(s)
		if err != nil {
			return err
		}
		level = lv
	}

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		out = lj
		if cfg.Console {
			out = io.MultiWriter(lj, os.Stderr)
		}
	}
	Log.SetOutput(out)
	Log.SetLevel(level)
	return nil
}

// SetLevel 仅调整级别, debug 开关用
func SetLevel(level logrus.Level) {
	Log.SetLevel(level)
}
