package configs

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultFontPaths 系统字体候选路径，按顺序尝试
var DefaultFontPaths = []string{
	"/System/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// Config 图标生成配置，全部来自环境变量
type Config struct {
	Root            string   `env:"ICONGEN_ROOT"`
	Label           string   `env:"ICONGEN_LABEL"             envDefault:"HT"`
	FontPaths       []string `env:"ICONGEN_FONTS"             envSeparator:","`
	InstallCmd      string   `env:"ICONGEN_INSTALL_CMD"`
	ReprobeAttempts uint     `env:"ICONGEN_REPROBE_ATTEMPTS"  envDefault:"3"`
	DisableRenderer bool     `env:"ICONGEN_DISABLE_RENDERER"`
	Verify          bool     `env:"ICONGEN_VERIFY"            envDefault:"true"`
	LogLevel        string   `env:"LOG_LEVEL"`
}

// Load 从环境变量加载配置并补全默认值
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOGLEVEL")
	}
	if len(cfg.FontPaths) == 0 {
		cfg.FontPaths = append([]string(nil), DefaultFontPaths...)
	}
	if strings.TrimSpace(cfg.Label) == "" {
		cfg.Label = "HT"
	}
	if cfg.ReprobeAttempts == 0 {
		cfg.ReprobeAttempts = 1
	}
	return cfg, nil
}

// InstallArgs 把安装命令拆成 argv，空命令返回 nil
func (c Config) InstallArgs() []string {
	args := strings.Fields(c.InstallCmd)
	if len(args) == 0 {
		return nil
	}
	return args
}

// ApplyLogLevel 日志级别：默认 info，无法解析时保持不变
func (c Config) ApplyLogLevel() {
	if c.LogLevel == "" {
		return
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, keeping %s", c.LogLevel, logrus.GetLevel())
		return
	}
	logrus.SetLevel(lvl)
}
