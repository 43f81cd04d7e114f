package server

import "tankmaze/sim"

// InputKind 入站事件类型
type InputKind int

const (
	InputJoin InputKind = iota
	InputPress
	InputRelease
)

// Input 客户端意图，在下一次 Tick 开始时写入坦克状态
type Input struct {
	PlayerID sim.PlayerID
	Kind     InputKind
	Intent   sim.Intent
	Look     sim.Appearance // 仅 InputJoin
}

// InputMessage 入站 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"join","name":"alice","color":"#ff0000"}、{"type":"press","key":"left"}、{"type":"release","key":"up"}
type InputMessage struct {
	Type  string `json:"type"`
	Key   string `json:"key,omitempty"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}
