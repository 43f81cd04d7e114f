package maze

// Cell 迷宫中的一个格子，四个方向是否有墙
type Cell struct {
	Top    bool `json:"top" msgpack:"top"`
	Bottom bool `json:"bottom" msgpack:"bottom"`
	Left   bool `json:"left" msgpack:"left"`
	Right  bool `json:"right" msgpack:"right"`
}

// Side 格子的某一侧
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// Grid rows × cols 的格子网格。生成后只读。
type Grid struct {
	Rows  int      `json:"rows" msgpack:"rows"`
	Cols  int      `json:"cols" msgpack:"cols"`
	Cells [][]Cell `json:"cells" msgpack:"cells"`
}

// NewGrid 创建网格；closed 为 true 时所有格子四面有墙，否则只保留外围边界墙
func NewGrid(rows, cols int, closed bool) *Grid {
	g := &Grid{Rows: rows, Cols: cols, Cells: make([][]Cell, rows)}
	for r := 0; r < rows; r++ {
		g.Cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			g.Cells[r][c] = Cell{
				Top:    closed || r == 0,
				Bottom: closed || r == rows-1,
				Left:   closed || c == 0,
				Right:  closed || c == cols-1,
			}
		}
	}
	return g
}

// InBounds 坐标是否在网格内
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At 返回格子；越界返回零值（无墙）
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Cell{}
	}
	return g.Cells[row][col]
}

// SetWall 设置 (row,col) 某一侧的墙，并同步相邻格子的对侧。
// 外围边界墙不可移除。
func (g *Grid) SetWall(row, col int, side Side, present bool) {
	if !g.InBounds(row, col) {
		return
	}
	nr, nc := neighbour(row, col, side)
	if !g.InBounds(nr, nc) {
		present = true
	}
	setSide(&g.Cells[row][col], side, present)
	if g.InBounds(nr, nc) {
		setSide(&g.Cells[nr][nc], opposite(side), present)
	}
}

func neighbour(row, col int, side Side) (int, int) {
	switch side {
	case SideTop:
		return row - 1, col
	case SideBottom:
		return row + 1, col
	case SideLeft:
		return row, col - 1
	default:
		return row, col + 1
	}
}

func opposite(side Side) Side {
	switch side {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

func setSide(c *Cell, side Side, v bool) {
	switch side {
	case SideTop:
		c.Top = v
	case SideBottom:
		c.Bottom = v
	case SideLeft:
		c.Left = v
	case SideRight:
		c.Right = v
	}
}
