package server

import (
	"tankmaze/maze"
	"tankmaze/sim"
)

// Sender 发送端抽象，由 ClientConn 实现
type Sender interface {
	Codec() Codec
	Enqueue(b []byte)
	Close()
}

// Player 房间内的一个连接。Joined 之前只接收广播，不拥有坦克。
type Player struct {
	ID     sim.PlayerID
	Joined bool

	Conn Sender
}

// 出站消息
const (
	MsgTankStates       = "tankStates"
	MsgMazeLayout       = "mazeLayout"
	MsgCanvasDimensions = "canvasDimensions"
)

// TankStatesMessage 每个 Tick 广播的全量坦克快照
type TankStatesMessage struct {
	Type  string          `json:"type" msgpack:"type"`
	Tick  int64           `json:"tick" msgpack:"tick"`
	Tanks []sim.TankState `json:"tanks" msgpack:"tanks"`
}

// MazeLayoutMessage 加入时发送一次
type MazeLayoutMessage struct {
	Type       string        `json:"type" msgpack:"type"`
	Maze       [][]maze.Cell `json:"maze" msgpack:"maze"`
	Rows       int           `json:"rows" msgpack:"rows"`
	Cols       int           `json:"cols" msgpack:"cols"`
	WallWidth  float64       `json:"wallWidth" msgpack:"wallWidth"`
	CellWidth  float64       `json:"cellWidth" msgpack:"cellWidth"`
	CellHeight float64       `json:"cellHeight" msgpack:"cellHeight"`
}

// CanvasMessage 加入时发送一次
type CanvasMessage struct {
	Type   string  `json:"type" msgpack:"type"`
	Height float64 `json:"height" msgpack:"height"`
	Width  float64 `json:"width" msgpack:"width"`
}
