package maze

import "fmt"

// Layout 迷宫在画布上的物理尺寸
type Layout struct {
	CanvasHeight float64 `json:"canvasHeight" msgpack:"canvasHeight"`
	CanvasWidth  float64 `json:"canvasWidth" msgpack:"canvasWidth"`
	Rows         int     `json:"rows" msgpack:"rows"`
	Cols         int     `json:"cols" msgpack:"cols"`
	Wall         float64 `json:"wallWidth" msgpack:"wallWidth"`
}

// DefaultLayout 700×1200 画布、7×12 迷宫、墙厚 8
func DefaultLayout() Layout {
	return Layout{CanvasHeight: 700, CanvasWidth: 1200, Rows: 7, Cols: 12, Wall: 8}
}

// CellWidth 格子内部宽度（扣除 cols+1 道竖墙）
func (l Layout) CellWidth() float64 {
	return (l.CanvasWidth - float64(l.Cols+1)*l.Wall) / float64(l.Cols)
}

// CellHeight 格子内部高度（扣除 rows+1 道横墙）
func (l Layout) CellHeight() float64 {
	return (l.CanvasHeight - float64(l.Rows+1)*l.Wall) / float64(l.Rows)
}

// Validate 行列必须为正，且墙体不能占满画布
func (l Layout) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("maze size must be positive, got %dx%d", l.Rows, l.Cols)
	}
	if l.Wall < 0 || l.CellWidth() <= 0 || l.CellHeight() <= 0 {
		return fmt.Errorf("canvas %vx%v too small for %dx%d cells with wall %v",
			l.CanvasWidth, l.CanvasHeight, l.Cols, l.Rows, l.Wall)
	}
	return nil
}
