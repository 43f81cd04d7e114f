package server

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"tankmaze/maze"
	"tankmaze/physics"
	"tankmaze/sim"
)

// RoomOptions 房间创建参数；同一进程内所有房间共享同一个迷宫
type RoomOptions struct {
	Grid    *maze.Grid
	Layout  maze.Layout
	Params  sim.Params
	Relay   Publisher // 可为 nil
	Subject string    // Relay 主题前缀
	Seed    int64
}

// Room 房间世界：权威状态维护在内存，单线程 Tick 推进
type Room struct {
	ID string

	Players map[sim.PlayerID]*Player
	store   *sim.Store
	engine  *sim.Engine
	grid    *maze.Grid
	layout  maze.Layout

	connChan  chan *Player
	inputChan chan Input
	leaveChan chan sim.PlayerID

	// 管理接口热更新的参数，在下一次 Tick 开始时生效
	mu          sync.Mutex
	params      sim.Params
	paramsDirty bool

	rng     *rand.Rand // 仅 Tick 协程使用
	relay   Publisher
	subject string
	metrics *RoomMetrics
	tickSeq atomic.Int64

	tickerStarted bool
	stop          chan struct{}
	stopOnce      sync.Once
}

// NewRoom 创建房间，初始化数据结构
func NewRoom(id string, opt RoomOptions) *Room {
	loc := physics.NewLocator(opt.Grid, opt.Layout)
	return &Room{
		ID:        id,
		Players:   make(map[sim.PlayerID]*Player),
		store:     sim.NewStore(),
		engine:    sim.NewEngine(loc, opt.Params),
		grid:      opt.Grid,
		layout:    opt.Layout,
		connChan:  make(chan *Player, 64),
		inputChan: make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		leaveChan: make(chan sim.PlayerID, 64),
		params:    opt.Params,
		rng:       rand.New(rand.NewSource(opt.Seed)),
		relay:     opt.Relay,
		subject:   opt.Subject,
		metrics:   &RoomMetrics{},
		stop:      make(chan struct{}),
	}
}

// Connect 登记新连接；此后该连接接收广播，发送 join 后才拥有坦克
func (r *Room) Connect(id sim.PlayerID, conn Sender) {
	r.connChan <- &Player{ID: id, Conn: conn}
}

// OnInput 入站输入（不立即改变状态），仅记录意图，等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	select {
	case r.inputChan <- in:
	default:
		// 丢弃：为了实时性，避免背压影响世界推进
		r.metrics.IncInputsDropped()
		Log.Warnf("room=%s input dropped: player=%s kind=%d", r.ID, in.PlayerID, in.Kind)
	}
}

// RequestLeave 请求在 Tick 线程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(pid sim.PlayerID) {
	r.leaveChan <- pid
}

// BeginTick 应用管理接口提交的参数
func (r *Room) BeginTick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paramsDirty {
		r.engine.SetParams(r.params)
		r.paramsDirty = false
	}
}

// ProcessInputs 处理当前帧的所有事件（非阻塞 drain）。
// 按 接入 → 输入 → 离开 的顺序，保证同一玩家的事件因果有序。
func (r *Room) ProcessInputs() {
conns:
	for {
		select {
		case p := <-r.connChan:
			r.Players[p.ID] = p
		default:
			break conns
		}
	}
inputs:
	for {
		select {
		case in := <-r.inputChan:
			r.applyInput(in)
		default:
			break inputs
		}
	}
	for {
		select {
		case pid := <-r.leaveChan:
			r.LeavePlayer(pid)
		default:
			return
		}
	}
}

func (r *Room) applyInput(in Input) {
	if in.Kind == InputJoin {
		r.join(in.PlayerID, in.Look)
		return
	}
	if err := r.store.SetIntent(in.PlayerID, in.Intent, in.Kind == InputPress); err != nil {
		// 断线后才到达的输入等：忽略
		r.metrics.IncInputsUnknown()
		return
	}
	r.metrics.IncInputsAccepted()
}

// join 创建坦克，并向该玩家发送迷宫与画布尺寸
func (r *Room) join(id sim.PlayerID, look sim.Appearance) {
	p, ok := r.Players[id]
	if !ok {
		r.metrics.IncInputsUnknown()
		return
	}
	look.RandColor = fmt.Sprintf("#%06x", r.rng.Intn(1<<24))
	r.store.Join(id, look, r.engine.Params())
	p.Joined = true
	r.metrics.IncJoins()
	Log.Infof("room=%s player joined: id=%s name=%q", r.ID, id, look.Name)

	if p.Conn == nil {
		return
	}
	r.send(p, MazeLayoutMessage{
		Type:       MsgMazeLayout,
		Maze:       r.grid.Cells,
		Rows:       r.grid.Rows,
		Cols:       r.grid.Cols,
		WallWidth:  r.layout.Wall,
		CellWidth:  r.layout.CellWidth(),
		CellHeight: r.layout.CellHeight(),
	})
	r.send(p, CanvasMessage{
		Type:   MsgCanvasDimensions,
		Height: r.layout.CanvasHeight,
		Width:  r.layout.CanvasWidth,
	})
}

func (r *Room) send(p *Player, msg any) {
	b, err := p.Conn.Codec().Marshal(msg)
	if err != nil {
		Log.Errorf("room=%s encode %T: %v", r.ID, msg, err)
		return
	}
	p.Conn.Enqueue(b)
}

// LeavePlayer 将玩家移出房间；未知玩家为空操作
func (r *Room) LeavePlayer(id sim.PlayerID) {
	p, ok := r.Players[id]
	if !ok {
		return
	}
	if p.Conn != nil {
		p.Conn.Close()
	}
	delete(r.Players, id)
	if r.store.Remove(id) {
		r.metrics.IncLeaves()
		Log.Infof("room=%s player left: id=%s", r.ID, id)
	}
}

// UpdateWorld 推进所有坦克一个 Tick
func (r *Room) UpdateWorld() {
	st := r.engine.Step(r.store)
	r.metrics.AddStep(st)
	r.tickSeq.Add(1)
}

// Broadcast 将当前坦克状态广播给房间内所有连接，并转发到 Relay
func (r *Room) Broadcast() {
	msg := TankStatesMessage{Type: MsgTankStates, Tick: r.tickSeq.Load(), Tanks: r.store.Snapshot()}
	frames := newFrameCache(msg)
	for _, p := range r.Players {
		if p.Conn == nil {
			continue
		}
		b, err := frames.get(p.Conn.Codec())
		if err != nil {
			Log.Errorf("room=%s broadcast: %v", r.ID, err)
			continue
		}
		p.Conn.Enqueue(b)
	}
	if r.relay != nil {
		b, err := frames.get(JSON)
		if err == nil {
			err = r.relay.Publish(r.subject+"."+r.ID, b)
		}
		if err != nil {
			r.metrics.IncRelayErrors()
			Log.Warnf("room=%s relay publish: %v", r.ID, err)
		}
	}
}

// Params 当前（或待生效的）物理参数
func (r *Room) Params() sim.Params {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.params
}

// UpdateParams 提交新参数，下一次 Tick 生效
func (r *Room) UpdateParams(p sim.Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params = p
	r.paramsDirty = true
}

func (r *Room) TickSeq() int64 { return r.tickSeq.Load() }

func (r *Room) Metrics() *RoomMetrics { return r.metrics }

// Tank 返回坦克副本；只能在 Tick 协程或 Ticker 未启动时调用
func (r *Room) Tank(id sim.PlayerID) (sim.Tank, bool) {
	return r.store.Get(id)
}
