package generator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/xpzouying/hiit-launcher-icons/capability"
	"github.com/xpzouying/hiit-launcher-icons/icons"
	"github.com/xpzouying/hiit-launcher-icons/placeholder"
	"github.com/xpzouying/hiit-launcher-icons/verify"
)

// Status 单个图标的处理结果
type Status string

const (
	StatusCreated     Status = "created"
	StatusPlaceholder Status = "placeholder"
	StatusFailed      Status = "failed"
)

// Entry 单个图标的记录
type Entry struct {
	Spec   icons.IconSpec
	Status Status
	Font   string
	Err    error
}

// Summary 一次运行的汇总
type Summary struct {
	State   capability.State
	Entries []Entry
}

// Count 统计某种状态的数量
func (s Summary) Count(st Status) int {
	n := 0
	for _, e := range s.Entries {
		if e.Status == st {
			n++
		}
	}
	return n
}

// Driver 按固定表生成全部图标
type Driver struct {
	Placeholders placeholder.Writer
	// Verify 生成后检查 PNG 尺寸
	Verify bool
}

// NewDriver 使用本地占位文件写入器
func NewDriver(verifyOutput bool) *Driver {
	return &Driver{Placeholders: placeholder.NewWriter(), Verify: verifyOutput}
}

// Run 能力可用时逐个生成 PNG，否则为每个路径写占位文件。
// 生成失败不会中断批次，批次结束后返回第一个错误；占位文件写入失败立即返回。
func (d *Driver) Run(ctx context.Context, table []icons.IconSpec, res capability.Result) (Summary, error) {
	sum := Summary{State: res.State, Entries: make([]Entry, 0, len(table))}

	if !res.Available() {
		logrus.Warn("Could not obtain drawing capability. Creating placeholder files.")
		for _, spec := range table {
			if err := d.Placeholders.Write(spec.Path); err != nil {
				sum.Entries = append(sum.Entries, Entry{Spec: spec, Status: StatusFailed, Err: err})
				return sum, err
			}
			sum.Entries = append(sum.Entries, Entry{Spec: spec, Status: StatusPlaceholder})
		}
		return sum, nil
	}

	var firstErr error
	for _, spec := range table {
		entry := d.generate(ctx, res, spec)
		if entry.Err != nil {
			logrus.Errorf("failed to create %s: %v", spec.Path, entry.Err)
			if firstErr == nil {
				firstErr = entry.Err
			}
		}
		sum.Entries = append(sum.Entries, entry)
	}

	if failed := sum.Count(StatusFailed); failed > 0 {
		return sum, errors.Wrapf(firstErr, "%d of %d icons failed", failed, len(table))
	}
	return sum, nil
}

func (d *Driver) generate(ctx context.Context, res capability.Result, spec icons.IconSpec) Entry {
	out, err := res.Generator.Generate(ctx, spec)
	if err != nil {
		return Entry{Spec: spec, Status: StatusFailed, Font: out.Font, Err: err}
	}
	if d.Verify {
		rep, err := verify.ExpectPNG(spec.Path, spec.Size)
		if err != nil {
			return Entry{Spec: spec, Status: StatusFailed, Font: out.Font, Err: err}
		}
		logrus.Debugf("verified %s: %s %dx%d", rep.Path, rep.MIME, rep.Width, rep.Height)
	}
	return Entry{Spec: spec, Status: StatusCreated, Font: out.Font}
}
