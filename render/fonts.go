package render

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// ErrNoFont 没有任何可用字体
var ErrNoFont = errors.New("no usable font")

// FontNone 所有字体策略都失败时的结果名
const FontNone = "none"

// FontStrategy 一种字体获取方式，按顺序尝试
type FontStrategy interface {
	Name() string
	Face(canvas int) (font.Face, error)
}

// SystemFont 从候选路径加载可缩放字体，字号随画布变化
type SystemFont struct {
	Paths []string
}

func (SystemFont) Name() string { return "system" }

func (f SystemFont) Face(canvas int) (font.Face, error) {
	err := errors.Wrap(ErrNoFont, "no font candidates")
	for _, p := range f.Paths {
		data, rerr := os.ReadFile(p)
		if rerr != nil {
			err = errors.Wrapf(rerr, "read font %s", p)
			continue
		}
		parsed, perr := opentype.Parse(data)
		if perr != nil {
			err = errors.Wrapf(perr, "parse font %s", p)
			continue
		}
		face, ferr := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    float64(FontSize(canvas)),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if ferr != nil {
			err = errors.Wrapf(ferr, "create face %s", p)
			continue
		}
		return face, nil
	}
	return nil, err
}

// BasicFont 内置 7x13 点阵字体，不随画布缩放
type BasicFont struct{}

func (BasicFont) Name() string { return "basic" }

func (BasicFont) Face(int) (font.Face, error) {
	return basicfont.Face7x13, nil
}

// DefaultFonts 默认字体链：系统字体 → 内置点阵字体
func DefaultFonts(paths []string) []FontStrategy {
	return []FontStrategy{SystemFont{Paths: paths}, BasicFont{}}
}

// FontChoice 字体选择结果；Face 为 nil 表示无字体
type FontChoice struct {
	Strategy string
	Face     font.Face
	Errs     []error
}

// SelectFont 依次尝试字体策略，返回第一个成功的
func SelectFont(chain []FontStrategy, canvas int) FontChoice {
	var errs []error
	for _, s := range chain {
		face, err := s.Face(canvas)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "font strategy %s", s.Name()))
			continue
		}
		if face == nil {
			errs = append(errs, errors.Wrapf(ErrNoFont, "font strategy %s", s.Name()))
			continue
		}
		return FontChoice{Strategy: s.Name(), Face: face, Errs: errs}
	}
	return FontChoice{Strategy: FontNone, Errs: errs}
}
