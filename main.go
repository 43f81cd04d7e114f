package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tankmaze/maze"
	"tankmaze/server"
	"tankmaze/sim"
)

// TankMaze 入口：生成迷宫，启动 HTTP + WebSocket 服务与房间 Tick
func main() {
	var (
		addr        string
		logPath     string
		webDir      string
		rows, cols  int
		seed        int64
		natsURL     string
		natsSubject string
	)
	flag.StringVar(&addr, "addr", ":3000", "server listen address, e.g. :3000")
	flag.StringVar(&logPath, "log", "tankmaze.log", "log file path")
	flag.StringVar(&webDir, "web", "web", "static client directory")
	flag.IntVar(&rows, "rows", 7, "maze rows")
	flag.IntVar(&cols, "cols", 12, "maze columns")
	flag.Int64Var(&seed, "seed", 0, "maze seed (0 for random)")
	flag.StringVar(&natsURL, "nats", "", "NATS url for relaying tank states, empty to disable")
	flag.StringVar(&natsSubject, "nats-subject", "tankmaze.tanks", "NATS subject prefix")
	flag.Parse()

	if err := server.InitLogger(logPath); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	layout := maze.DefaultLayout()
	layout.Rows, layout.Cols = rows, cols
	if err := layout.Validate(); err != nil {
		server.Log.Fatalf("invalid layout: %v", err)
	}
	grid := maze.Generate(rows, cols, rand.New(rand.NewSource(seed)))
	server.Log.Infof("maze generated: %dx%d seed=%d", rows, cols, seed)

	opt := server.RoomOptions{
		Grid:    grid,
		Layout:  layout,
		Params:  sim.DefaultParams(),
		Subject: natsSubject,
		Seed:    seed,
	}
	if natsURL != "" {
		nc, err := server.DialRelay(natsURL)
		if err != nil {
			server.Log.Fatalf("relay: %v", err)
		}
		defer nc.Close()
		opt.Relay = nc
	}

	rm := server.NewRoomManager(opt, true)
	defer rm.Close()
	// 先预创建一个默认房间
	_ = rm.GetOrCreateRoom(server.DefaultRoom)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", rm.HandleWS)
	mux.Handle("/", http.FileServer(http.Dir(webDir)))
	// 管理与监控接口
	mux.HandleFunc("/admin/config", rm.HandleAdminConfig)
	mux.HandleFunc("/metrics", rm.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		server.Log.Infof("TankMaze listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
}
