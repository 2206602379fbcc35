package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	"github.com/xpzouying/hiit-launcher-icons/icons"
)

// DefaultLabel 图标文字
const DefaultLabel = "HT"

// MaxLabelWidth 文字最多占用的显示宽度
const MaxLabelWidth = 2

var (
	// Background 背景色 #1976D2
	Background = color.RGBA{0x19, 0x76, 0xD2, 0xFF}
	// Foreground 文字颜色（白色）
	Foreground = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// Generator 生成单个图标文件
type Generator interface {
	Generate(ctx context.Context, spec icons.IconSpec) (Outcome, error)
}

// Outcome 单个图标的生成结果
type Outcome struct {
	Path  string
	Size  int
	Font  string
	Box   image.Rectangle
	Bytes int
	// FontErrs 在成功的字体策略之前失败的策略
	FontErrs []error
}

// Options Renderer 配置
type Options struct {
	Label string
	Fonts []FontStrategy
}

// Renderer 基于 x/image 的图标绘制
type Renderer struct {
	label string
	fonts []FontStrategy
}

// NewRenderer 创建 Renderer；Fonts 为空时使用内置点阵字体
func NewRenderer(opts Options) *Renderer {
	fonts := opts.Fonts
	if len(fonts) == 0 {
		fonts = []FontStrategy{BasicFont{}}
	}
	return &Renderer{
		label: NormalizeLabel(opts.Label),
		fonts: fonts,
	}
}

// NormalizeLabel 空文字回退到默认值，超宽时截断
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultLabel
	}
	if w := runewidth.StringWidth(label); w > MaxLabelWidth {
		truncated := runewidth.Truncate(label, MaxLabelWidth, "")
		logrus.Warnf("label %q is %d cells wide, truncated to %q", label, w, truncated)
		return truncated
	}
	return label
}

// Draw 在内存中绘制 size×size 的图标
func (r *Renderer) Draw(size int) (*image.RGBA, Outcome) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{Background}, image.Point{}, draw.Src)

	choice := SelectFont(r.fonts, size)
	for _, err := range choice.Errs {
		logrus.Debugf("font fallback for %dpx: %v", size, err)
	}

	layout := PlaceLabel(choice.Face, r.label, size)
	if choice.Face != nil {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(Foreground),
			Face: choice.Face,
			Dot:  layout.Dot,
		}
		d.DrawString(r.label)
		if err := choice.Face.Close(); err != nil {
			logrus.Debugf("close %s font face for %dpx: %v", choice.Strategy, size, err)
		}
	} else {
		logrus.Warnf("no font available for %dpx icon, label %q not drawn", size, r.label)
	}

	return img, Outcome{
		Size:     size,
		Font:     choice.Strategy,
		Box:      layout.Box,
		FontErrs: choice.Errs,
	}
}

// Encode 绘制并编码为 PNG
func (r *Renderer) Encode(size int) ([]byte, Outcome, error) {
	img, out := r.Draw(size)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, out, errors.Wrap(err, "encode png")
	}
	out.Bytes = buf.Len()
	return buf.Bytes(), out, nil
}

// Generate 绘制图标并写入 spec.Path，自动创建父目录
func (r *Renderer) Generate(ctx context.Context, spec icons.IconSpec) (Outcome, error) {
	out := Outcome{Path: spec.Path, Size: spec.Size}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if err := spec.Validate(); err != nil {
		return out, err
	}

	data, out, err := r.Encode(spec.Size)
	out.Path = spec.Path
	if err != nil {
		return out, err
	}

	if err := os.MkdirAll(filepath.Dir(spec.Path), 0o755); err != nil {
		return out, errors.Wrap(err, "failed to create icon directory")
	}
	if err := os.WriteFile(spec.Path, data, 0o644); err != nil {
		return out, errors.Wrapf(err, "failed to write icon %s", spec.Path)
	}

	logrus.Infof("Created %s (%dx%d, font=%s)", spec.Path, spec.Size, spec.Size, out.Font)
	return out, nil
}
