package capability

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"

	"github.com/xpzouying/hiit-launcher-icons/render"
)

// Provider 绘制能力来源
type Provider interface {
	Probe(ctx context.Context) (render.Generator, error)
}

// Installer 一次性的补救动作（安装绘制能力）
type Installer interface {
	Install(ctx context.Context) error
}

// State 能力检查结论
type State int

const (
	// Present 启动时即可用
	Present State = iota
	// Remedied 安装后可用
	Remedied
	// Unavailable 安装后仍不可用
	Unavailable
)

func (s State) String() string {
	switch s {
	case Present:
		return "present"
	case Remedied:
		return "remedied"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result 能力检查结果，显式传给 driver
type Result struct {
	State     State
	Generator render.Generator
	// ProbeErr 首次探测失败的原因
	ProbeErr error
	// InstallErr 安装失败或安装后仍探测失败的原因
	InstallErr error
}

// Available 是否可以生成真正的 PNG
func (r Result) Available() bool {
	return r.State != Unavailable && r.Generator != nil
}

// Options 安装后的重新探测策略
type Options struct {
	ReprobeAttempts uint
	ReprobeDelay    time.Duration
}

// Ensure 探测绘制能力；不可用时最多调用一次 installer，再重新探测
func Ensure(ctx context.Context, p Provider, inst Installer, opts Options) Result {
	g, err := p.Probe(ctx)
	if err == nil {
		logrus.Debug("drawing capability present")
		return Result{State: Present, Generator: g}
	}

	res := Result{State: Unavailable, ProbeErr: err}
	logrus.Warnf("drawing capability not available: %v", err)

	if inst == nil {
		res.InstallErr = ErrNoInstaller
		logrus.Warn("no installer configured, skipping remedial install")
		return res
	}

	logrus.Info("drawing capability is not available. Installing...")
	if err := inst.Install(ctx); err != nil {
		res.InstallErr = err
		logrus.Errorf("could not install drawing capability: %v", err)
		return res
	}

	attempts := opts.ReprobeAttempts
	if attempts == 0 {
		attempts = 1
	}
	g, err = retry.DoWithData(
		func() (render.Generator, error) { return p.Probe(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(opts.ReprobeDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logrus.Debugf("re-probe #%d failed: %v", n+1, err)
		}),
	)
	if err != nil {
		res.InstallErr = err
		logrus.Errorf("drawing capability still unavailable after install: %v", err)
		return res
	}

	logrus.Info("drawing capability installed")
	return Result{State: Remedied, Generator: g, ProbeErr: res.ProbeErr}
}
