package sim

import (
	"math"

	"tankmaze/physics"
)

// PlayerID 玩家唯一标识
type PlayerID string

// Intent 客户端可按下/松开的四个操作
type Intent int

const (
	TurnLeft Intent = iota
	TurnRight
	ThrottleForward
	ThrottleBackward
)

// ParseIntent 将按键名解析为 Intent
func ParseIntent(key string) (Intent, bool) {
	switch key {
	case "left":
		return TurnLeft, true
	case "right":
		return TurnRight, true
	case "up":
		return ThrottleForward, true
	case "down":
		return ThrottleBackward, true
	}
	return 0, false
}

// Inputs 当前按键状态。左右互斥、前后互斥，后到的事件覆盖先前的。
type Inputs struct {
	Left  bool `json:"left" msgpack:"left"`
	Right bool `json:"right" msgpack:"right"`
	Up    bool `json:"up" msgpack:"up"`
	Down  bool `json:"down" msgpack:"down"`
}

// Set 按下时清除同轴的另一侧；松开只影响自身
func (in *Inputs) Set(intent Intent, pressed bool) {
	switch intent {
	case TurnLeft:
		in.Left = pressed
		if pressed {
			in.Right = false
		}
	case TurnRight:
		in.Right = pressed
		if pressed {
			in.Left = false
		}
	case ThrottleForward:
		in.Up = pressed
		if pressed {
			in.Down = false
		}
	case ThrottleBackward:
		in.Down = pressed
		if pressed {
			in.Up = false
		}
	}
}

// Idle 四个输入全部为 false
func (in Inputs) Idle() bool {
	return !in.Left && !in.Right && !in.Up && !in.Down
}

// Appearance 展示用属性，引擎不读取
type Appearance struct {
	Name      string `json:"username" msgpack:"username"`
	Color     string `json:"color" msgpack:"color"`
	RandColor string `json:"randColor" msgpack:"randColor"`
}

// Tank 每个在线玩家一辆坦克
type Tank struct {
	ID      PlayerID
	Pos     physics.Vec
	Heading float64 // 弧度，0 朝 +x
	Width   float64
	Height  float64
	Inputs  Inputs
	Look    Appearance
}

// Corners 旋转并平移后的四个顶点
func (t *Tank) Corners() [4]physics.Vec {
	return physics.Corners(t.Pos, t.Heading, t.Width, t.Height)
}

// Forward 朝向单位向量
func (t *Tank) Forward() physics.Vec {
	return physics.Vec{X: math.Cos(t.Heading), Y: math.Sin(t.Heading)}
}

// TankState 广播给客户端的坦克快照
type TankState struct {
	ID     string  `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
	Angle  float64 `json:"angle" msgpack:"angle"`
	Inputs
	Appearance
}

func (t *Tank) state() TankState {
	return TankState{
		ID:         string(t.ID),
		X:          t.Pos.X,
		Y:          t.Pos.Y,
		Width:      t.Width,
		Height:     t.Height,
		Angle:      t.Heading,
		Inputs:     t.Inputs,
		Appearance: t.Look,
	}
}
