package server

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"tankmaze/maze"
	"tankmaze/sim"
)

type fakeConn struct {
	codec  Codec
	frames [][]byte
	closed bool
}

func (f *fakeConn) Codec() Codec     { return f.codec }
func (f *fakeConn) Enqueue(b []byte) { f.frames = append(f.frames, b) }
func (f *fakeConn) Close()           { f.closed = true }

type fakePublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return p.err
}

func testOptions() RoomOptions {
	layout := maze.DefaultLayout()
	return RoomOptions{
		Grid:    maze.NewGrid(layout.Rows, layout.Cols, false),
		Layout:  layout,
		Params:  sim.DefaultParams(),
		Subject: "tankmaze.tanks",
		Seed:    1,
	}
}

func newTestRoom() *Room {
	return NewRoom("t", testOptions())
}

func frameTypes(t *testing.T, frames [][]byte) []string {
	t.Helper()
	var types []string
	for _, b := range frames {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(b, &head); err != nil {
			t.Fatalf("bad frame %q: %v", b, err)
		}
		types = append(types, head.Type)
	}
	return types
}

func lastTankStates(t *testing.T, frames [][]byte) TankStatesMessage {
	t.Helper()
	for i := len(frames) - 1; i >= 0; i-- {
		var msg TankStatesMessage
		if err := json.Unmarshal(frames[i], &msg); err == nil && msg.Type == MsgTankStates {
			return msg
		}
	}
	t.Fatal("no tankStates frame")
	return TankStatesMessage{}
}

func TestJoinSendsLayoutOnceThenStates(t *testing.T) {
	r := newTestRoom()
	conn := &fakeConn{codec: JSON}
	r.Connect("p1", conn)
	r.OnInput(Input{PlayerID: "p1", Kind: InputJoin, Look: sim.Appearance{Name: "alice", Color: "#00ff00"}})
	r.Tick()
	r.Tick()

	got := frameTypes(t, conn.frames)
	want := []string{MsgMazeLayout, MsgCanvasDimensions, MsgTankStates, MsgTankStates}
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v, want %v", got, want)
		}
	}

	var layout MazeLayoutMessage
	if err := json.Unmarshal(conn.frames[0], &layout); err != nil {
		t.Fatal(err)
	}
	if layout.Rows != 7 || layout.Cols != 12 || layout.WallWidth != 8 || len(layout.Maze) != 7 {
		t.Errorf("layout = %+v", layout)
	}

	states := lastTankStates(t, conn.frames)
	if states.Tick != 2 || len(states.Tanks) != 1 {
		t.Fatalf("states = %+v", states)
	}
	tank := states.Tanks[0]
	if tank.Name != "alice" || tank.Color != "#00ff00" || tank.X != 38 || tank.Y != 33 {
		t.Errorf("tank = %+v", tank)
	}
	if !regexp.MustCompile(`^#[0-9a-f]{6}$`).MatchString(tank.RandColor) {
		t.Errorf("randColor = %q", tank.RandColor)
	}
}

func TestObserverReceivesStatesWithoutJoining(t *testing.T) {
	r := newTestRoom()
	watcher := &fakeConn{codec: JSON}
	r.Connect("w", watcher)
	r.Tick()

	if got := frameTypes(t, watcher.frames); len(got) != 1 || got[0] != MsgTankStates {
		t.Errorf("frames = %v", got)
	}
	if _, ok := r.Tank("w"); ok {
		t.Error("observer should not own a tank")
	}
}

func TestIntentsAppliedOnNextTick(t *testing.T) {
	r := newTestRoom()
	r.Connect("p1", &fakeConn{codec: JSON})
	r.OnInput(Input{PlayerID: "p1", Kind: InputJoin})
	r.OnInput(Input{PlayerID: "p1", Kind: InputPress, Intent: sim.ThrottleForward})
	r.Tick()

	tank, ok := r.Tank("p1")
	if !ok || tank.Pos.X != 42 || tank.Pos.Y != 33 {
		t.Fatalf("tank after press = %+v", tank)
	}

	r.OnInput(Input{PlayerID: "p1", Kind: InputRelease, Intent: sim.ThrottleForward})
	r.Tick()
	if tank, _ := r.Tank("p1"); tank.Pos.X != 42 {
		t.Errorf("tank moved after release: %+v", tank.Pos)
	}
	if n := r.Metrics().InputsAccepted; n != 2 {
		t.Errorf("accepted = %d, want 2", n)
	}
}

func TestLeaveRemovesTank(t *testing.T) {
	r := newTestRoom()
	a, b := &fakeConn{codec: JSON}, &fakeConn{codec: JSON}
	r.Connect("a", a)
	r.Connect("b", b)
	r.OnInput(Input{PlayerID: "a", Kind: InputJoin})
	r.OnInput(Input{PlayerID: "b", Kind: InputJoin})
	r.Tick()

	r.RequestLeave("a")
	r.Tick()
	if !a.closed {
		t.Error("connection of departed player not closed")
	}
	if _, ok := r.Tank("a"); ok {
		t.Error("tank still present after leave")
	}
	if states := lastTankStates(t, b.frames); len(states.Tanks) != 1 || states.Tanks[0].ID != "b" {
		t.Errorf("states after leave = %+v", states.Tanks)
	}

	// 断线后到达的输入与重复断线均为空操作
	r.OnInput(Input{PlayerID: "a", Kind: InputPress, Intent: sim.TurnLeft})
	r.RequestLeave("a")
	r.RequestLeave("never-connected")
	r.Tick()
	if n := r.Metrics().InputsUnknown; n != 1 {
		t.Errorf("unknown inputs = %d, want 1", n)
	}
	if n := r.Metrics().Leaves; n != 1 {
		t.Errorf("leaves = %d, want 1", n)
	}
}

func TestJoinWithoutConnectionIgnored(t *testing.T) {
	r := newTestRoom()
	r.OnInput(Input{PlayerID: "ghost", Kind: InputJoin})
	r.Tick()
	if _, ok := r.Tank("ghost"); ok {
		t.Error("tank created for unknown connection")
	}
}

func TestParamsTakeEffectNextTick(t *testing.T) {
	r := newTestRoom()
	r.Connect("p1", &fakeConn{codec: JSON})
	r.OnInput(Input{PlayerID: "p1", Kind: InputJoin})
	r.Tick()

	p := r.Params()
	p.Speed = 10
	r.UpdateParams(p)
	r.OnInput(Input{PlayerID: "p1", Kind: InputPress, Intent: sim.ThrottleForward})
	r.Tick()
	if tank, _ := r.Tank("p1"); tank.Pos.X != 48 {
		t.Errorf("x = %v, want 48", tank.Pos.X)
	}
}

func TestMsgpackBroadcast(t *testing.T) {
	r := newTestRoom()
	conn := &fakeConn{codec: MsgPack}
	r.Connect("p1", conn)
	r.OnInput(Input{PlayerID: "p1", Kind: InputJoin, Look: sim.Appearance{Name: "bob"}})
	r.Tick()

	if len(conn.frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(conn.frames))
	}
	var msg TankStatesMessage
	if err := msgpack.Unmarshal(conn.frames[2], &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MsgTankStates || len(msg.Tanks) != 1 || msg.Tanks[0].Name != "bob" || msg.Tanks[0].X != 38 {
		t.Errorf("decoded = %+v", msg)
	}
}

func TestRelayPublishesEveryTick(t *testing.T) {
	opt := testOptions()
	pub := &fakePublisher{}
	opt.Relay = pub
	r := NewRoom("arena", opt)
	r.Tick()
	r.Tick()

	if len(pub.subjects) != 2 || pub.subjects[0] != "tankmaze.tanks.arena" {
		t.Fatalf("subjects = %v", pub.subjects)
	}
	var msg TankStatesMessage
	if err := json.Unmarshal(pub.payloads[1], &msg); err != nil || msg.Tick != 2 {
		t.Errorf("payload = %s err=%v", pub.payloads[1], err)
	}

	pub.err = errors.New("down")
	r.Tick()
	if n := r.Metrics().RelayErrors; n != 1 {
		t.Errorf("relay errors = %d, want 1", n)
	}
}

func TestParseInput(t *testing.T) {
	in, ok := parseInput("p", InputMessage{Type: "Press", Key: "LEFT"})
	if !ok || in.Kind != InputPress || in.Intent != sim.TurnLeft {
		t.Errorf("press = %+v ok=%v", in, ok)
	}
	in, ok = parseInput("p", InputMessage{Type: "release", Key: "down"})
	if !ok || in.Kind != InputRelease || in.Intent != sim.ThrottleBackward {
		t.Errorf("release = %+v ok=%v", in, ok)
	}
	in, ok = parseInput("p", InputMessage{Type: "join", Name: "n", Color: "c"})
	if !ok || in.Kind != InputJoin || in.Look.Name != "n" || in.Look.Color != "c" {
		t.Errorf("join = %+v ok=%v", in, ok)
	}
	if _, ok := parseInput("p", InputMessage{Type: "press", Key: "fire"}); ok {
		t.Error("unknown key accepted")
	}
	if _, ok := parseInput("p", InputMessage{Type: "move"}); ok {
		t.Error("unknown type accepted")
	}
}
