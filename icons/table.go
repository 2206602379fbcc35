package icons

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// IconSpec 一个启动图标：边长（像素）+ 输出路径
type IconSpec struct {
	Size int
	Path string
}

// Validate 检查尺寸与路径
func (s IconSpec) Validate() error {
	if s.Size <= 0 {
		return errors.Errorf("icon size must be positive, got %d", s.Size)
	}
	if s.Path == "" {
		return errors.New("icon path is required")
	}
	return nil
}

// ResDir Android 资源目录（相对于项目根）
const ResDir = "app/src/main/res"

// density 密度桶及对应边长
type density struct {
	name string
	size int
}

var densities = []density{
	{"hdpi", 72},
	{"mdpi", 48},
	{"xhdpi", 96},
	{"xxhdpi", 144},
	{"xxxhdpi", 192},
}

// variants 每个密度下的文件名：普通 + 圆形
var variants = []string{"ic_launcher.png", "ic_launcher_round.png"}

// Table 返回固定的十个图标，root 为空时保持相对路径
func Table(root string) []IconSpec {
	out := make([]IconSpec, 0, len(densities)*len(variants))
	for _, d := range densities {
		for _, name := range variants {
			out = append(out, IconSpec{
				Size: d.size,
				Path: filepath.Join(root, ResDir, "mipmap-"+d.name, name),
			})
		}
	}
	return out
}
