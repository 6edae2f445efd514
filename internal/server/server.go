package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/config"
	"github.com/palemoky/hilo-trainer/internal/server/handler"
	"github.com/palemoky/hilo-trainer/internal/server/storage"
)

const (
	maxMessagesPerSecond = 20
	monitorInterval      = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 终端客户端没有 Origin
	},
}

// Server 训练服务器，每个 WebSocket 连接拥有一个独立的训练会话
type Server struct {
	config         *config.Config
	store          *storage.RedisStore
	handler        *handler.Handler
	messageLimiter *MessageRateLimiter

	clients   map[*Client]struct{}
	clientsMu sync.RWMutex
	clientsWG sync.WaitGroup

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	shuttingDown atomic.Bool
	httpServer   *http.Server
}

// NewServer 创建服务器实例。store 为 nil 时不保存断线会话
func NewServer(cfg *config.Config, store *storage.RedisStore) *Server {
	deps := handler.HandlerDeps{
		SessionTTL: cfg.Redis.SessionTTLDuration(),
		NumDecks:   cfg.Trainer.NumDecks,
	}
	if store != nil {
		deps.Store = store
	}
	if seed := cfg.Trainer.Seed; seed != 0 {
		deps.NewRand = func() card.Shuffler { return card.NewSeededRand(seed) }
	}

	s := &Server{
		config:         cfg,
		store:          store,
		handler:        handler.NewHandler(deps),
		messageLimiter: NewMessageRateLimiter(maxMessagesPerSecond),
		clients:        make(map[*Client]struct{}),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Routes 注册 HTTP 路由
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/hilo", s.handleHiLoTable)
	})
	return r
}

// Start 启动服务器，ctx 取消后优雅关闭
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.monitorStats(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d, 牌副数: %d)",
			ln.Addr(), runtime.NumCPU(), s.config.Trainer.NumDecks)
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown 关闭服务器：停止接受连接，关闭所有客户端并等待其会话保存完毕
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.shuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	log.Println("🔧 正在关闭服务器...")

	err := s.httpServer.Shutdown(ctx)

	s.clientsMu.RLock()
	for c := range s.clients {
		c.Close()
	}
	s.clientsMu.RUnlock()

	done := make(chan struct{})
	go func() {
		s.clientsWG.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Println("服务器已关闭")
	case <-ctx.Done():
		log.Printf("⚠️ 超时，仍有 %d 个连接未断开", s.OnlineCount())
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)

	if s.shuttingDown.Load() {
		http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
		return
	}

	// 连接数限制检查，信号量在连接断开时释放
	select {
	case s.semaphore <- struct{}{}:
	default:
		log.Printf("🚫 达到最大连接数限制 (%d), IP: %s", s.maxConnections, clientIP)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn, uuid.NewString())
	client.IP = clientIP
	s.registerClient(client)
	s.handler.Connect(client)

	go client.WritePump()
	go client.ReadPump()
}

// disconnect 在读协程退出时调用
func (s *Server) disconnect(c *Client) {
	s.handler.Disconnect(c)
	s.messageLimiter.RemoveClient(c.connID)
	s.unregisterClient(c)
	c.Close()
	<-s.semaphore
	s.clientsWG.Done()
}

func (s *Server) registerClient(c *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c] = struct{}{}
	s.clientsWG.Add(1)
}

func (s *Server) unregisterClient(c *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, c)
}

// OnlineCount 当前进程内的连接数
func (s *Server) OnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":      "ok",
		"connections": s.OnlineCount(),
		"redis":       "disabled",
	}
	code := http.StatusOK

	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			status["redis"] = "ok"
		}
	}
	writeJSON(w, code, status)
}

// hiLoEntry 一个点数及其计数值
type hiLoEntry struct {
	Rank  string `json:"rank"`
	Short string `json:"short"`
	Value int    `json:"value"`
}

// handleHiLoTable 返回 Hi-Lo 计数表
func (s *Server) handleHiLoTable(w http.ResponseWriter, _ *http.Request) {
	ranks := card.Ranks()
	table := make([]hiLoEntry, len(ranks))
	for i, rank := range ranks {
		table[i] = hiLoEntry{Rank: rank.String(), Short: rank.Short(), Value: card.HiLoValue(rank)}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"system":    "hi-lo",
		"num_decks": s.config.Trainer.NumDecks,
		"values":    table,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("写入响应失败: %v", err)
	}
}

// monitorStats 定期记录服务器状态
func (s *Server) monitorStats(ctx context.Context) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Printf("📊 [监控] 在线: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
			s.OnlineCount(),
			runtime.NumGoroutine(),
			len(s.semaphore),
			s.maxConnections,
			float64(m.Alloc)/1024/1024)
	}
}
