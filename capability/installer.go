package capability

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoInstaller 未配置安装命令
var ErrNoInstaller = errors.New("no installer configured")

// ExecInstaller 通过外部命令安装绘制能力，输出直接透传
type ExecInstaller struct {
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecInstaller args 为空时 Install 返回 ErrNoInstaller
func NewExecInstaller(args []string) *ExecInstaller {
	return &ExecInstaller{Args: args, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *ExecInstaller) Install(ctx context.Context) error {
	if e == nil || len(e.Args) == 0 {
		return ErrNoInstaller
	}

	logrus.Infof("running installer: %s", strings.Join(e.Args, " "))
	cmd := exec.CommandContext(ctx, e.Args[0], e.Args[1:]...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "installer %q failed", e.Args[0])
	}
	return nil
}
