package render

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// MinFontSize 字号下限
const MinFontSize = 12

// FontSize 字号为边长的 1/6，不低于 MinFontSize
func FontSize(canvas int) int {
	return max(canvas/6, MinFontSize)
}

// CenterOffset (canvas - label) 向下取整除以 2，奇数余量偏向左上
func CenterOffset(canvas, label int) int {
	return floorDiv(canvas-label, 2)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Layout 文字在画布上的位置
type Layout struct {
	// Box 文字外框（画布坐标）
	Box image.Rectangle
	// Dot 绘制基线起点
	Dot fixed.Point26_6
}

// PlaceLabel 计算居中位置；face 为 nil 时外框按 (canvas/3, canvas/4) 估算
func PlaceLabel(face font.Face, label string, canvas int) Layout {
	if face == nil {
		w, h := canvas/3, canvas/4
		x, y := CenterOffset(canvas, w), CenterOffset(canvas, h)
		return Layout{
			Box: image.Rect(x, y, x+w, y+h),
			Dot: fixed.P(x, y+h),
		}
	}

	bounds, _ := font.BoundString(face, label)
	// 按整像素对齐后的墨迹范围；原点按 Min.Floor 平移，宽高必须用同样的取整
	w := bounds.Max.X.Ceil() - bounds.Min.X.Floor()
	h := bounds.Max.Y.Ceil() - bounds.Min.Y.Floor()
	x, y := CenterOffset(canvas, w), CenterOffset(canvas, h)

	return Layout{
		Box: image.Rect(x, y, x+w, y+h),
		Dot: fixed.P(x-bounds.Min.X.Floor(), y-bounds.Min.Y.Floor()),
	}
}
