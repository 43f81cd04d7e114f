package sim

import (
	"math"

	"tankmaze/physics"
)

// Params 物理参数
type Params struct {
	Speed         float64     `json:"speed"`         // 每 Tick 平移量
	RotationSpeed float64     `json:"rotationSpeed"` // 每 Tick 旋转弧度
	TankWidth     float64     `json:"tankWidth"`
	TankHeight    float64     `json:"tankHeight"`
	Spawn         physics.Vec `json:"spawn"`
}

// DefaultParams 速度 4、每 Tick 转 5°、30×40 车身、出生点 (38,33)
func DefaultParams() Params {
	return Params{
		Speed:         4,
		RotationSpeed: 5 * math.Pi / 180,
		TankWidth:     30,
		TankHeight:    40,
		Spawn:         physics.Vec{X: 38, Y: 33},
	}
}
