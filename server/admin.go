package server

import (
	"encoding/json"
	"net/http"
)

func (m *RoomManager) roomFromQuery(r *http.Request) (string, *Room) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoom
	}
	return roomID, m.GetOrCreateRoom(roomID)
}

// HandleAdminConfig 提供房间物理参数的读取与更新（下一次 Tick 生效）
// GET /admin/config?room=room-1  返回当前配置
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	roomID, room := m.roomFromQuery(r)

	type cfg struct {
		Speed         *float64 `json:"speed,omitempty"`
		RotationSpeed *float64 `json:"rotationSpeed,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		p := room.Params()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cfg{Speed: &p.Speed, RotationSpeed: &p.RotationSpeed})
		return
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if (body.Speed != nil && *body.Speed < 0) || (body.RotationSpeed != nil && *body.RotationSpeed < 0) {
			http.Error(w, "values must be non-negative", http.StatusBadRequest)
			return
		}
		p := room.Params()
		if body.Speed != nil {
			p.Speed = *body.Speed
		}
		if body.RotationSpeed != nil {
			p.RotationSpeed = *body.RotationSpeed
		}
		room.UpdateParams(p)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		Log.Infof("config updated: room=%s speed=%.2f rotationSpeed=%.4f", roomID, p.Speed, p.RotationSpeed)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID, room := m.roomFromQuery(r)
	payload := map[string]any{
		"room":    roomID,
		"tick":    room.TickSeq(),
		"metrics": room.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
