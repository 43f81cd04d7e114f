package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tankmaze/sim"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type frame struct {
	typ  int
	data []byte
}

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws    *websocket.Conn
	codec Codec
	send  chan frame
}

func NewClientConn(ws *websocket.Conn, codec Codec) *ClientConn {
	return &ClientConn{
		ws:    ws,
		codec: codec,
		send:  make(chan frame, 64),
	}
}

func (c *ClientConn) Codec() Codec { return c.codec }

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	if c.send == nil {
		return
	}
	select {
	case c.send <- frame{typ: c.codec.FrameType(), data: b}:
	default:
		// 为了实时性，丢弃（防止阻塞 Tick）
	}
}

// Close 关闭发送队列，写协程退出时关闭底层连接
func (c *ClientConn) Close() {
	if c.send != nil {
		close(c.send)
		c.send = nil
	}
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump(send <-chan frame) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case f, ok := <-send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(f.typ, f.data); err != nil {
				Log.Debugf("write error: %v", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端事件，转换为 Input 注入房间
func (c *ClientConn) readPump(room *Room, playerID sim.PlayerID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 Tick 线程中移除该玩家
	defer room.RequestLeave(playerID)
	c.ws.SetReadLimit(1 << 16)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var im InputMessage
		if err := json.Unmarshal(payload, &im); err != nil {
			continue
		}
		in, ok := parseInput(playerID, im)
		if !ok {
			continue
		}
		room.OnInput(in)
	}
}

func parseInput(id sim.PlayerID, im InputMessage) (Input, bool) {
	switch strings.ToLower(im.Type) {
	case "join":
		return Input{PlayerID: id, Kind: InputJoin, Look: sim.Appearance{Name: im.Name, Color: im.Color}}, true
	case "press", "release":
		intent, ok := sim.ParseIntent(strings.ToLower(im.Key))
		if !ok {
			return Input{}, false
		}
		kind := InputPress
		if strings.ToLower(im.Type) == "release" {
			kind = InputRelease
		}
		return Input{PlayerID: id, Kind: kind, Intent: intent}, true
	}
	return Input{}, false
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?room=room-1&enc=msgpack
func (m *RoomManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoom
	}
	codec := CodecByName(r.URL.Query().Get("enc"))

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	room := m.GetOrCreateRoom(roomID)
	playerID := sim.PlayerID(uuid.NewString())
	client := NewClientConn(ws, codec)
	go client.writePump(client.send)
	room.Connect(playerID, client)
	go client.readPump(room, playerID)
}
