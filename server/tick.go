package server

import "time"

// TickInterval 世界推进周期（40 TPS），进程内唯一常量
const TickInterval = 25 * time.Millisecond

// Tick 执行一次完整的帧：处理输入 → 更新世界 → 广播结果。同步执行。
func (r *Room) Tick() {
	start := time.Now()
	r.BeginTick()
	r.ProcessInputs()
	r.UpdateWorld()
	r.Broadcast()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

// StartTicker 启动房间的 Tick 循环（单线程推进世界）。
// time.Ticker 在上一帧未完成时会丢弃多余的触发，帧之间不会重叠。
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.Tick()
			}
		}
	}()
}

// Stop 停止 Tick 循环
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
