package server

import (
	"hash/fnv"
	"sync"
)

// DefaultRoom 未指定房间时使用
const DefaultRoom = "room-1"

// RoomManager 管理多个房间的生命周期；所有房间共享同一个迷宫
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	opt   RoomOptions

	autoStart bool
}

// NewRoomManager 创建管理器；autoStart 为 true 时新房间立即开始 Tick
func NewRoomManager(opt RoomOptions, autoStart bool) *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room), opt: opt, autoStart: autoStart}
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		opt := m.opt
		opt.Seed ^= int64(roomHash(id))
		r = NewRoom(id, opt)
		m.rooms[id] = r
		if m.autoStart {
			r.StartTicker()
		}
		Log.Infof("room created: %s", id)
	}
	return r
}

// Room 查询已存在的房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Close 停止所有房间的 Tick
func (m *RoomManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		r.Stop()
	}
}

func roomHash(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}
