package sim

import (
	"math"

	"tankmaze/physics"
)

// StepStats 一次 Tick 的统计
type StepStats struct {
	Tanks     int // 参与推进的坦克数
	Corrected int // 发生了撞墙校正的步骤数
	Reverted  int // 校正失败而撤销的步骤数
}

func (s *StepStats) add(o StepStats) {
	s.Tanks += o.Tanks
	s.Corrected += o.Corrected
	s.Reverted += o.Reverted
}

// Engine Tick 引擎：先旋转、再平移，每一步都在提交前消除穿墙
type Engine struct {
	loc    *physics.Locator
	params Params
}

func NewEngine(loc *physics.Locator, p Params) *Engine {
	return &Engine{loc: loc, params: p}
}

func (e *Engine) Params() Params { return e.params }

// SetParams 只能在两次 Step 之间调用
func (e *Engine) SetParams(p Params) { e.params = p }

// Step 将所有坦克推进一个 Tick。同步执行，调用方保证不会并发调用。
func (e *Engine) Step(s *Store) StepStats {
	var st StepStats
	for _, t := range s.tanks {
		st.add(e.Advance(t))
	}
	return st
}

// Advance 推进单辆坦克。旋转校正与平移合计的位移不超过 speed，
// 超出时撤销平移，保留旋转后的位姿。
func (e *Engine) Advance(t *Tank) StepStats {
	st := StepStats{Tanks: 1}
	start := t.Pos
	st.add(e.rotate(t))
	mid := t.Pos
	st.add(e.translate(t))
	if e.exceeds(t.Pos.Sub(start)) {
		t.Pos = mid
		st.Reverted++
	}
	return st
}

// exceeds 位移长度是否超出单 Tick 速度
func (e *Engine) exceeds(d physics.Vec) bool {
	return math.Sqrt(d.LenSq()) > e.params.Speed+physics.Epsilon
}

func (e *Engine) rotate(t *Tank) StepStats {
	var delta float64
	switch {
	case t.Inputs.Left:
		delta = -e.params.RotationSpeed
	case t.Inputs.Right:
		delta = e.params.RotationSpeed
	default:
		return StepStats{}
	}
	prevPos, prevHeading := t.Pos, t.Heading
	t.Heading += delta

	// 旋转时顶点的瞬时速度方向：垂直于朝向的两个方向
	dir := physics.Vec{X: -math.Sin(t.Heading), Y: math.Cos(t.Heading)}
	corners := t.Corners()
	t1 := e.loc.Resolve(corners, dir, e.params.Speed)
	t2 := e.loc.Resolve(corners, dir.Neg(), e.params.Speed)
	if t2.LenSq() < t1.LenSq() {
		t1, t2 = t2, t1
	}

	base := t.Pos
	for _, fix := range [2]physics.Vec{t1, t2} {
		// Resolve 按轴限速，斜向校正可能更长
		if e.exceeds(fix) {
			continue
		}
		t.Pos = base.Add(fix)
		if !e.loc.Penetrates(t.Corners()) {
			return committed(fix)
		}
	}
	t.Pos, t.Heading = prevPos, prevHeading
	return StepStats{Reverted: 1}
}

func (e *Engine) translate(t *Tank) StepStats {
	var back physics.Vec
	switch {
	case t.Inputs.Up:
		back = t.Forward().Neg()
	case t.Inputs.Down:
		back = t.Forward()
	default:
		return StepStats{}
	}
	prevPos := t.Pos
	t.Pos = t.Pos.Add(back.Scale(-e.params.Speed))

	fix := e.loc.Resolve(t.Corners(), back, e.params.Speed)
	t.Pos = t.Pos.Add(fix)
	if e.loc.Penetrates(t.Corners()) {
		t.Pos = prevPos
		return StepStats{Reverted: 1}
	}
	return committed(fix)
}

func committed(fix physics.Vec) StepStats {
	if fix.LenSq() > 0 {
		return StepStats{Corrected: 1}
	}
	return StepStats{}
}
