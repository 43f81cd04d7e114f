package physics

import "math"

// 未找到出口时的占位距离，必然超出速度上限
const noExit = 1000000

// Corners 计算旋转后矩形的四个顶点。height 沿朝向方向，width 垂直于朝向。
func Corners(pos Vec, heading, width, height float64) [4]Vec {
	vAngle := math.Atan(width / height)
	vDist := math.Sqrt(width*width+height*height) / 2
	at := func(a float64) Vec {
		return Vec{pos.X + math.Cos(a)*vDist, pos.Y + math.Sin(a)*vDist}
	}
	return [4]Vec{
		at(heading + vAngle),
		at(heading - vAngle + math.Pi),
		at(heading + vAngle + math.Pi),
		at(heading - vAngle),
	}
}

// Resolve 计算沿 dir 方向的最小校正平移，使所有嵌入墙体的顶点移出墙外。
// 每面墙取需要平移最大的顶点（约束顶点），所有墙中再取最大者；
// 超出 speed 的校正一律丢弃。无墙约束时返回零向量。
func (l *Locator) Resolve(corners [4]Vec, dir Vec, speed float64) Vec {
	var final Vec
	for _, w := range l.CandidateWalls(BoundingBox(corners[:])) {
		poly := l.WallPolygon(w)
		var transform Vec
		for _, c := range corners {
			if !poly.Contains(c) {
				continue
			}
			dist := exitTranslation(c, dir, poly.Edges())
			if dist.LenSq() > transform.LenSq() && WithinSpeedBound(dist, speed) {
				transform = dist
			}
		}
		if transform.LenSq() > final.LenSq() && WithinSpeedBound(transform, speed) {
			final = transform
		}
	}
	return final
}

// exitTranslation 从 p 沿 dir 发射射线，返回到达最近一条边所需的非负平移
func exitTranslation(p, dir Vec, edges [4]Segment) Vec {
	dist := dir.Scale(noExit)
	for _, e := range edges {
		hit, ok := SegmentIntersection(p, p.Add(dir), e.A, e.B)
		if !ok || !Between(hit, e.A, e.B) {
			continue
		}
		d := hit.Sub(p)
		r := DirectionalRatio(d, dir)
		if r >= 0 && r <= DirectionalRatio(dist, dir) {
			dist = d
		}
	}
	return dist
}

// Penetrates 是否有顶点严格位于某面墙内部
func (l *Locator) Penetrates(corners [4]Vec) bool {
	for _, w := range l.CandidateWalls(BoundingBox(corners[:])) {
		poly := l.WallPolygon(w)
		for _, c := range corners {
			if poly.Contains(c) {
				return true
			}
		}
	}
	return false
}
