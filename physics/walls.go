package physics

import (
	"math"

	"tankmaze/maze"
)

// WallAddress 墙的地址：Row、Col 中恰有一个是半整数（k+0.5）。
// 半整数行表示上下相邻格子之间的横墙，半整数列表示左右相邻格子之间的竖墙。
type WallAddress struct {
	Row float64
	Col float64
}

func isHalf(v float64) bool { return v != math.Floor(v) }

// Horizontal 是否为横墙
func (a WallAddress) Horizontal() bool { return isHalf(a.Row) && !isHalf(a.Col) }

// Vertical 是否为竖墙
func (a WallAddress) Vertical() bool { return isHalf(a.Col) && !isHalf(a.Row) }

// Locator 将墙地址映射为物理多边形，只读访问迷宫
type Locator struct {
	grid    *maze.Grid
	wall    float64
	cellW   float64
	cellH   float64
	strideX float64
	strideY float64
}

// NewLocator 基于迷宫网格与画布布局创建定位器
func NewLocator(grid *maze.Grid, layout maze.Layout) *Locator {
	cw, ch := layout.CellWidth(), layout.CellHeight()
	return &Locator{
		grid:    grid,
		wall:    layout.Wall,
		cellW:   cw,
		cellH:   ch,
		strideX: cw + layout.Wall,
		strideY: ch + layout.Wall,
	}
}

// WallExists 查询 (row,col) 处是否有墙；越界视为无墙。
// 外围边界的实体性由生成器保证（边缘格子朝外的标志恒为 true）。
func (l *Locator) WallExists(row, col float64) bool {
	if col <= -1 || row <= -1 || col >= float64(l.grid.Cols) || row >= float64(l.grid.Rows) {
		return false
	}
	a := WallAddress{Row: row, Col: col}
	switch {
	case a.Horizontal():
		if row > 0 {
			return l.grid.At(int(row-0.5), int(col)).Bottom
		}
		return l.grid.At(int(row+0.5), int(col)).Top
	case a.Vertical():
		if col > 0 {
			return l.grid.At(int(row), int(col-0.5)).Right
		}
		return l.grid.At(int(row), int(col+0.5)).Left
	default:
		return false
	}
}

// WallPolygon 墙体占据的矩形，顶点顺序：左上、左下、右下、右上
func (l *Locator) WallPolygon(a WallAddress) Polygon {
	var left, top, w, h float64
	if a.Horizontal() {
		left = a.Col * l.strideX
		top = (a.Row + 0.5) * l.strideY
		w, h = l.cellW+2*l.wall, l.wall
	} else {
		left = (a.Col + 0.5) * l.strideX
		top = a.Row * l.strideY
		w, h = l.wall, l.cellH+2*l.wall
	}
	return Polygon{
		{left, top},
		{left, top + h},
		{left + w, top + h},
		{left + w, top},
	}
}

// WallEdges 墙体多边形的四条边
func (l *Locator) WallEdges(a WallAddress) [4]Segment {
	return l.WallPolygon(a).Edges()
}

// CandidateWalls 枚举与包围盒可能重叠的所有存在的墙。
// 数量只与包围盒大小有关，与迷宫规模无关。
func (l *Locator) CandidateWalls(b Box) []WallAddress {
	lWall := math.Ceil((b.MinX-l.wall)/l.strideX) - 0.5
	rWall := math.Floor(b.MaxX/l.strideX) - 0.5
	dWall := math.Ceil((b.MinY-l.wall)/l.strideY) - 0.5
	uWall := math.Floor(b.MaxY/l.strideY) - 0.5

	var walls []WallAddress
	// 竖墙
	for c := lWall; c <= rWall; c++ {
		for r := dWall - 0.5; r <= uWall+0.5; r++ {
			if l.WallExists(r, c) {
				walls = append(walls, WallAddress{Row: r, Col: c})
			}
		}
	}
	// 横墙
	for r := dWall; r <= uWall; r++ {
		for c := lWall - 0.5; c <= rWall+0.5; c++ {
			if l.WallExists(r, c) {
				walls = append(walls, WallAddress{Row: r, Col: c})
			}
		}
	}
	return walls
}
