package sim

import (
	"errors"
	"sort"
)

// ErrUnknownTank 目标玩家不存在（例如断线后才到达的输入）
var ErrUnknownTank = errors.New("sim: unknown tank")

// Store 玩家到坦克的映射。
// 只由传输适配层（写输入）和 Tick 引擎（写位姿）修改，二者在同一协程内串行执行。
type Store struct {
	tanks map[PlayerID]*Tank
}

func NewStore() *Store {
	return &Store{tanks: make(map[PlayerID]*Tank)}
}

// Join 创建坦克：出生点、朝向 0、输入全部松开。已存在时重置。
func (s *Store) Join(id PlayerID, look Appearance, p Params) *Tank {
	t := &Tank{
		ID:     id,
		Pos:    p.Spawn,
		Width:  p.TankWidth,
		Height: p.TankHeight,
		Look:   look,
	}
	s.tanks[id] = t
	return t
}

// SetIntent 记录一次按下/松开；未知玩家返回 ErrUnknownTank，不做任何修改
func (s *Store) SetIntent(id PlayerID, intent Intent, pressed bool) error {
	t, ok := s.tanks[id]
	if !ok {
		return ErrUnknownTank
	}
	t.Inputs.Set(intent, pressed)
	return nil
}

// Remove 删除坦克；不存在时为空操作
func (s *Store) Remove(id PlayerID) bool {
	if _, ok := s.tanks[id]; !ok {
		return false
	}
	delete(s.tanks, id)
	return true
}

// Get 返回坦克副本
func (s *Store) Get(id PlayerID) (Tank, bool) {
	t, ok := s.tanks[id]
	if !ok {
		return Tank{}, false
	}
	return *t, true
}

func (s *Store) Len() int { return len(s.tanks) }

// Snapshot 所有坦克的状态，按 ID 排序
func (s *Store) Snapshot() []TankState {
	out := make([]TankState, 0, len(s.tanks))
	for _, t := range s.tanks {
		out = append(out, t.state())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
