package physics

import "math"

// Epsilon 用于吸收浮点舍入误差
const Epsilon = 0.000001

// Vec 平面向量/点（y 轴向下）
type Vec struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Neg() Vec            { return Vec{-v.X, -v.Y} }
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec) LenSq() float64      { return Dot(v, v) }

// Segment 线段
type Segment struct {
	A, B Vec
}

// Dot 点积
func Dot(v1, v2 Vec) float64 {
	return v1.X*v2.X + v1.Y*v2.Y
}

// SegmentIntersection 求过 p1,p2 的直线与过 p3,p4 的直线的交点。
// 行列式严格为 0（平行）时返回 false，不加容差。
func SegmentIntersection(p1, p2, p3, p4 Vec) (Vec, bool) {
	denom := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if denom == 0 {
		return Vec{}, false
	}
	a := p1.X*p2.Y - p1.Y*p2.X
	b := p3.X*p4.Y - p3.Y*p4.X
	return Vec{
		X: (a*(p3.X-p4.X) - (p1.X-p2.X)*b) / denom,
		Y: (a*(p3.Y-p4.Y) - (p1.Y-p2.Y)*b) / denom,
	}, true
}

// Between 判断 p 是否落在 a、b 围成的闭合包围盒内（各轴独立，带 Epsilon 容差）。
// 已知 p 在 ab 所在直线上时，等价于 p 在线段上。
func Between(p, a, b Vec) bool {
	return within(p.X, a.X, b.X) && within(p.Y, a.Y, b.Y)
}

func within(v, a, b float64) bool {
	return v >= math.Min(a, b)-Epsilon && v <= math.Max(a, b)+Epsilon
}

// DirectionalRatio v1 沿 v2 方向的比例：优先用 x 分量，v2.X 接近 0 时改用 y 分量
func DirectionalRatio(v1, v2 Vec) float64 {
	if math.Abs(v2.X) < Epsilon {
		return v1.Y / v2.Y
	}
	return v1.X / v2.X
}

// WithinSpeedBound 校正量各轴分量不得超过单 Tick 速度
func WithinSpeedBound(t Vec, speed float64) bool {
	return math.Abs(t.X) <= speed+Epsilon && math.Abs(t.Y) <= speed+Epsilon
}

// Polygon 凸多边形，顶点按固定方向环绕
type Polygon [4]Vec

// Edges 相邻顶点组成的四条边（首尾闭合）
func (p Polygon) Edges() [4]Segment {
	return [4]Segment{
		{p[0], p[1]},
		{p[1], p[2]},
		{p[2], p[3]},
		{p[3], p[0]},
	}
}

// Contains 点位于多边形内部且距每条边都超过 Epsilon（落在边上或贴边不算）
func (p Polygon) Contains(pt Vec) bool {
	var pos, neg int
	for _, e := range p.Edges() {
		edge := e.B.Sub(e.A)
		n := math.Sqrt(edge.LenSq())
		if n == 0 {
			return false
		}
		d := edge.Cross(pt.Sub(e.A)) / n
		switch {
		case d > Epsilon:
			pos++
		case d < -Epsilon:
			neg++
		default:
			return false
		}
	}
	return pos == 4 || neg == 4
}

// Box 轴对齐包围盒
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundingBox 计算点集的包围盒
func BoundingBox(pts []Vec) Box {
	b := Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range pts {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}
