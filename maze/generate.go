package maze

import "math/rand"

// Generate 随机深度优先挖掘生成完美迷宫：任意两个格子之间恰有一条通路，外围边界始终封闭
func Generate(rows, cols int, rng *rand.Rand) *Grid {
	g := NewGrid(rows, cols, true)
	if rows <= 0 || cols <= 0 {
		return g
	}
	visited := make([][]bool, rows)
	for r := range visited {
		visited[r] = make([]bool, cols)
	}

	type pos struct{ row, col int }
	sides := []Side{SideTop, SideBottom, SideLeft, SideRight}
	stack := []pos{{rng.Intn(rows), rng.Intn(cols)}}
	visited[stack[0].row][stack[0].col] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var open []Side
		for _, s := range sides {
			nr, nc := neighbour(cur.row, cur.col, s)
			if g.InBounds(nr, nc) && !visited[nr][nc] {
				open = append(open, s)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		s := open[rng.Intn(len(open))]
		g.SetWall(cur.row, cur.col, s, false)
		nr, nc := neighbour(cur.row, cur.col, s)
		visited[nr][nc] = true
		stack = append(stack, pos{nr, nc})
	}
	return g
}
