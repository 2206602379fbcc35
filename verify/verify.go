package verify

import (
	"bytes"
	"image/png"
	"os"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/pkg/errors"

	"github.com/xpzouying/hiit-launcher-icons/placeholder"
)

// Kind 输出文件类型
type Kind string

const (
	KindPNG         Kind = "png"
	KindPlaceholder Kind = "placeholder"
	KindUnknown     Kind = "unknown"
)

// Report 文件检查结果；Width/Height 仅对 PNG 有效
type Report struct {
	Path   string
	Kind   Kind
	MIME   string
	Width  int
	Height int
}

// Inspect 读取并识别一个输出文件
func Inspect(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{Path: path, Kind: KindUnknown}, errors.Wrapf(err, "read %s", path)
	}
	return InspectBytes(path, data)
}

// InspectBytes 同 Inspect，但直接使用内存中的内容
func InspectBytes(path string, data []byte) (Report, error) {
	rep := Report{Path: path, Kind: KindUnknown}

	if placeholder.IsPlaceholder(data) {
		rep.Kind = KindPlaceholder
		rep.MIME = "text/plain"
		return rep, nil
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return rep, errors.Wrapf(err, "detect type of %s", path)
	}
	if kind != matchers.TypePng {
		return rep, nil
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return rep, errors.Wrapf(err, "decode png header of %s", path)
	}
	rep.Kind = KindPNG
	rep.MIME = kind.MIME.Value
	rep.Width = cfg.Width
	rep.Height = cfg.Height
	return rep, nil
}

// ExpectPNG 检查文件是边长为 size 的 PNG
func ExpectPNG(path string, size int) (Report, error) {
	rep, err := Inspect(path)
	if err != nil {
		return rep, err
	}
	if rep.Kind != KindPNG {
		return rep, errors.Errorf("%s is %s, want png", path, rep.Kind)
	}
	if rep.Width != size || rep.Height != size {
		return rep, errors.Errorf("%s is %dx%d, want %dx%d", path, rep.Width, rep.Height, size, size)
	}
	return rep, nil
}
