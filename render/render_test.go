package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/xpzouying/hiit-launcher-icons/icons"
)

// writeGoFont 把 Go Regular 字体写到临时目录，模拟系统字体
func writeGoFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GoRegular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func TestFontSize(t *testing.T) {
	cases := map[int]int{6: 12, 48: 12, 72: 12, 96: 16, 144: 24, 192: 32}
	for canvas, want := range cases {
		assert.Equal(t, want, FontSize(canvas), "canvas %d", canvas)
	}
}

func TestCenterOffset(t *testing.T) {
	assert.Equal(t, 17, CenterOffset(48, 14))
	assert.Equal(t, 16, CenterOffset(48, 15))
	assert.Equal(t, 0, CenterOffset(10, 10))
	// 负数同样向下取整
	assert.Equal(t, -2, CenterOffset(5, 8))
	assert.Equal(t, -1, CenterOffset(5, 7))

	for i := 0; i < 3; i++ {
		assert.Equal(t, 28, CenterOffset(72, 15))
	}
}

func TestPlaceLabelWithoutFont(t *testing.T) {
	l := PlaceLabel(nil, "HT", 48)
	assert.Equal(t, image.Rect(16, 18, 32, 30), l.Box)

	l = PlaceLabel(nil, "HT", 72)
	assert.Equal(t, image.Rect(24, 27, 48, 45), l.Box)
}

func TestPlaceLabelBasicFont(t *testing.T) {
	face, err := BasicFont{}.Face(48)
	require.NoError(t, err)

	l := PlaceLabel(face, "HT", 48)
	assert.Equal(t, image.Rect(17, 17, 30, 30), l.Box)
}

func TestSelectFontFallbacks(t *testing.T) {
	missing := SystemFont{Paths: []string{filepath.Join(t.TempDir(), "nope.ttf")}}

	choice := SelectFont([]FontStrategy{missing, BasicFont{}}, 48)
	assert.Equal(t, "basic", choice.Strategy)
	assert.NotNil(t, choice.Face)
	assert.Len(t, choice.Errs, 1)

	choice = SelectFont([]FontStrategy{missing}, 48)
	assert.Equal(t, FontNone, choice.Strategy)
	assert.Nil(t, choice.Face)
	assert.Len(t, choice.Errs, 1)

	choice = SelectFont([]FontStrategy{SystemFont{}}, 48)
	assert.Equal(t, FontNone, choice.Strategy)
	assert.ErrorIs(t, choice.Errs[0], ErrNoFont)
}

func TestSystemFontSkipsBadCandidates(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a font"), 0o644))

	sys := SystemFont{Paths: []string{filepath.Join(dir, "missing.ttf"), garbage, writeGoFont(t)}}
	face, err := sys.Face(192)
	require.NoError(t, err)
	defer face.Close()

	// 32px 字号下的行高应明显大于 7x13 点阵字体
	assert.Greater(t, face.Metrics().Height.Ceil(), 13)
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "HT", NormalizeLabel(""))
	assert.Equal(t, "HT", NormalizeLabel("  "))
	assert.Equal(t, "HT", NormalizeLabel("HT"))
	assert.Equal(t, "HI", NormalizeLabel("HIIT"))
	assert.Equal(t, "中", NormalizeLabel("中文"))
}

// assertInkInBox 所有非背景像素都必须落在 box 内，且至少有一个白色像素
func assertInkInBox(t *testing.T, img *image.RGBA, box image.Rectangle) {
	t.Helper()
	white := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c == Background {
				continue
			}
			if !image.Pt(x, y).In(box) {
				t.Fatalf("%dpx: ink outside label box %v at %d,%d", b.Dx(), box, x, y)
			}
			if c == Foreground {
				white++
			}
		}
	}
	assert.Greater(t, white, 0, "%dpx: no label pixels", b.Dx())
}

func TestDrawColorsAndCentering(t *testing.T) {
	r := NewRenderer(Options{Label: "HT", Fonts: []FontStrategy{BasicFont{}}})
	img, out := r.Draw(48)

	assert.Equal(t, "basic", out.Font)
	assert.Equal(t, image.Rect(0, 0, 48, 48), img.Bounds())
	assert.Equal(t, Background, img.RGBAAt(0, 0))
	assert.Equal(t, Background, img.RGBAAt(47, 47))
	assertInkInBox(t, img, out.Box)
}

func TestDrawScalableFontsStayInBox(t *testing.T) {
	dir := t.TempDir()
	fonts := map[string][]byte{"GoRegular.ttf": goregular.TTF, "GoBold.ttf": gobold.TTF}

	for name, data := range fonts {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		r := NewRenderer(Options{Label: "HT", Fonts: []FontStrategy{SystemFont{Paths: []string{path}}}})

		for _, size := range []int{48, 72, 96, 144, 192} {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				img, out := r.Draw(size)
				require.Equal(t, "system", out.Font)

				// 外框本身按向下取整居中
				assert.Equal(t, CenterOffset(size, out.Box.Dx()), out.Box.Min.X)
				assert.Equal(t, CenterOffset(size, out.Box.Dy()), out.Box.Min.Y)
				assertInkInBox(t, img, out.Box)
			})
		}
	}
}

// closeErrFace 关闭时报错的字体，其余行为同内置点阵字体
type closeErrFace struct {
	font.Face
}

func (closeErrFace) Close() error { return errors.New("close failed") }

type closeErrFont struct{}

func (closeErrFont) Name() string { return "flaky" }

func (closeErrFont) Face(int) (font.Face, error) {
	return closeErrFace{Face: basicfont.Face7x13}, nil
}

func TestDrawLogsFaceCloseError(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	prev := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() { logrus.SetLevel(prev) })

	r := NewRenderer(Options{Fonts: []FontStrategy{closeErrFont{}}})
	img, out := r.Draw(48)
	assert.Equal(t, "flaky", out.Font)
	assertInkInBox(t, img, out.Box)

	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel && strings.Contains(e.Message, "close failed") {
			found = true
		}
	}
	assert.True(t, found, "expected a debug entry for the close error")
}

func TestDrawWithoutFontLeavesBackground(t *testing.T) {
	missing := SystemFont{Paths: []string{filepath.Join(t.TempDir(), "nope.ttf")}}
	r := NewRenderer(Options{Fonts: []FontStrategy{missing}})

	img, out := r.Draw(48)
	assert.Equal(t, FontNone, out.Font)
	assert.Equal(t, image.Rect(16, 18, 32, 30), out.Box)
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			require.Equal(t, Background, img.RGBAAt(x, y))
		}
	}
}

func TestGenerateWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "res", "mipmap-mdpi", "ic_launcher.png")
	r := NewRenderer(Options{Fonts: DefaultFonts([]string{writeGoFont(t)})})

	out, err := r.Generate(context.Background(), icons.IconSpec{Size: 48, Path: path})
	require.NoError(t, err)
	assert.Equal(t, "system", out.Font)
	assert.Equal(t, path, out.Path)
	assert.Greater(t, out.Bytes, 0)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 48), img.Bounds())

	r0, g0, b0, a0 := img.At(0, 0).RGBA()
	assert.Equal(t, [4]uint32{0x1919, 0x7676, 0xD2D2, 0xFFFF}, [4]uint32{r0, g0, b0, a0})
}

func TestGenerateErrors(t *testing.T) {
	r := NewRenderer(Options{})

	_, err := r.Generate(context.Background(), icons.IconSpec{Size: 0, Path: "x.png"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Generate(ctx, icons.IconSpec{Size: 48, Path: filepath.Join(t.TempDir(), "x.png")})
	assert.ErrorIs(t, err, context.Canceled)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	_, err = r.Generate(context.Background(), icons.IconSpec{Size: 48, Path: filepath.Join(blocker, "x.png")})
	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	g, err := Provider{Options: Options{Label: " HT "}}.Probe(context.Background())
	require.NoError(t, err)
	r, ok := g.(*Renderer)
	require.True(t, ok, "got %T", g)
	assert.Equal(t, "HT", r.label)

	_, err = Provider{Disabled: true}.Probe(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
}
