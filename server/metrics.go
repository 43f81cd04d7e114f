package server

import (
	"sync/atomic"

	"tankmaze/sim"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount      int64 // 统计的 Tick 次数
	TotalTickNs    int64 // Tick 累计耗时（纳秒）
	InputsAccepted int64 // 被接受的输入数
	InputsUnknown  int64 // 目标玩家不存在而忽略的输入数
	InputsDropped  int64 // 因通道满被丢弃的输入数
	Joins          int64
	Leaves         int64
	Corrections    int64 // 撞墙校正次数
	Reverts        int64 // 校正超限而撤销的步骤数
	RelayErrors    int64
}

func (m *RoomMetrics) IncInputsAccepted() { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncInputsUnknown()  { atomic.AddInt64(&m.InputsUnknown, 1) }
func (m *RoomMetrics) IncInputsDropped()  { atomic.AddInt64(&m.InputsDropped, 1) }
func (m *RoomMetrics) IncJoins()          { atomic.AddInt64(&m.Joins, 1) }
func (m *RoomMetrics) IncLeaves()         { atomic.AddInt64(&m.Leaves, 1) }
func (m *RoomMetrics) IncRelayErrors()    { atomic.AddInt64(&m.RelayErrors, 1) }

func (m *RoomMetrics) AddStep(st sim.StepStats) {
	atomic.AddInt64(&m.Corrections, int64(st.Corrected))
	atomic.AddInt64(&m.Reverts, int64(st.Reverted))
}

func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":      tick,
		"avg_tick_ms":     avgMs,
		"inputs_accepted": atomic.LoadInt64(&m.InputsAccepted),
		"inputs_unknown":  atomic.LoadInt64(&m.InputsUnknown),
		"inputs_dropped":  atomic.LoadInt64(&m.InputsDropped),
		"joins":           atomic.LoadInt64(&m.Joins),
		"leaves":          atomic.LoadInt64(&m.Leaves),
		"corrections":     atomic.LoadInt64(&m.Corrections),
		"reverts":         atomic.LoadInt64(&m.Reverts),
		"relay_errors":    atomic.LoadInt64(&m.RelayErrors),
	}
}
