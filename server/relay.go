package server

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher 每个 Tick 的 tankStates 快照的外部转发目标。*nats.Conn 满足该接口。
type Publisher interface {
	Publish(subject string, data []byte) error
}

// DialRelay 连接 NATS；调用方负责 Close
func DialRelay(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("tankmaze"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				Log.Warnf("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			Log.Infof("nats reconnected: %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return nc, nil
}
