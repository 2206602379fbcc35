package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xpzouying/hiit-launcher-icons/capability"
	"github.com/xpzouying/hiit-launcher-icons/configs"
	"github.com/xpzouying/hiit-launcher-icons/generator"
	"github.com/xpzouying/hiit-launcher-icons/icons"
	"github.com/xpzouying/hiit-launcher-icons/render"
)

// reprobeDelay 安装完成后重新探测的间隔
const reprobeDelay = 500 * time.Millisecond

// run 检查绘制能力并生成全部启动图标
func run(ctx context.Context, cfg configs.Config, inst capability.Installer) (generator.Summary, error) {
	provider := render.Provider{
		Options: render.Options{
			Label: cfg.Label,
			Fonts: render.DefaultFonts(cfg.FontPaths),
		},
		Disabled: cfg.DisableRenderer,
	}

	res := capability.Ensure(ctx, provider, inst, capability.Options{
		ReprobeAttempts: cfg.ReprobeAttempts,
		ReprobeDelay:    reprobeDelay,
	})
	logrus.Infof("drawing capability: %s", res.State)

	return generator.NewDriver(cfg.Verify).Run(ctx, icons.Table(cfg.Root), res)
}

func main() {
	cfg, err := configs.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	cfg.ApplyLogLevel()

	sum, err := run(context.Background(), cfg, capability.NewExecInstaller(cfg.InstallArgs()))
	if err != nil {
		logrus.Errorf("icon generation failed: %v", err)
		os.Exit(1)
	}

	logrus.Infof("done: %d created, %d placeholders",
		sum.Count(generator.StatusCreated), sum.Count(generator.StatusPlaceholder))
}
