package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec 出站消息编码，每个连接在接入时协商（?enc=json|msgpack）
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	FrameType() int // websocket 帧类型
}

type jsonCodec struct{}

func (jsonCodec) Name() string                  { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) FrameType() int                { return websocket.TextMessage }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                  { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }
func (msgpackCodec) FrameType() int                { return websocket.BinaryMessage }

var (
	JSON    Codec = jsonCodec{}
	MsgPack Codec = msgpackCodec{}
)

// CodecByName 未知名称回退到 JSON
func CodecByName(name string) Codec {
	if name == MsgPack.Name() {
		return MsgPack
	}
	return JSON
}

// frameCache 同一条消息对每种编码只序列化一次
type frameCache struct {
	msg    any
	frames map[string][]byte
}

func newFrameCache(msg any) *frameCache {
	return &frameCache{msg: msg, frames: make(map[string][]byte, 2)}
}

func (f *frameCache) get(c Codec) ([]byte, error) {
	if b, ok := f.frames[c.Name()]; ok {
		return b, nil
	}
	b, err := c.Marshal(f.msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	f.frames[c.Name()] = b
	return b, nil
}
