package render

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/pkg/errors"
)

// ErrDisabled 内置绘制能力被配置关闭
var ErrDisabled = errors.New("built-in renderer disabled")

// Provider 内置绘制能力。Probe 通过一次 1x1 PNG 编解码自检确认可用。
// Disabled 在进程内不会改变，安装后重新探测也不会成功；Remedied 只出现在注入的 Provider 上。
type Provider struct {
	Options  Options
	Disabled bool
}

func (p Provider) Probe(ctx context.Context) (Generator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Disabled {
		return nil, ErrDisabled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		return nil, errors.Wrap(err, "png encoder self-test")
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "png decoder self-test")
	}
	if cfg.Width != 1 || cfg.Height != 1 {
		return nil, errors.Errorf("png self-test got %dx%d", cfg.Width, cfg.Height)
	}

	return NewRenderer(p.Options), nil
}
