package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// MessageRateLimiter 消息速率限制器（针对已连接的客户端）
type MessageRateLimiter struct {
	limits map[string]*messageRate
	mu     sync.Mutex

	maxMessagesPerSecond int
}

type messageRate struct {
	count     int
	lastReset time.Time
	warnings  int // 超速次数
}

// NewMessageRateLimiter 创建消息速率限制器
func NewMessageRateLimiter(maxPerSecond int) *MessageRateLimiter {
	return &MessageRateLimiter{
		limits:               make(map[string]*messageRate),
		maxMessagesPerSecond: maxPerSecond,
	}
}

// AllowMessage reports whether the connection may send another message in
// the current one-second window.
func (ml *MessageRateLimiter) AllowMessage(connID string) bool {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := time.Now()
	rate, exists := ml.limits[connID]
	if !exists {
		ml.limits[connID] = &messageRate{count: 1, lastReset: now}
		return true
	}

	if now.Sub(rate.lastReset) >= time.Second {
		rate.count = 1
		rate.lastReset = now
		return true
	}

	rate.count++
	if rate.count > ml.maxMessagesPerSecond {
		rate.warnings++
		return false
	}
	return true
}

// WarningCount 获取超速次数
func (ml *MessageRateLimiter) WarningCount(connID string) int {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if rate, ok := ml.limits[connID]; ok {
		return rate.warnings
	}
	return 0
}

// RemoveClient 移除连接记录
func (ml *MessageRateLimiter) RemoveClient(connID string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	delete(ml.limits, connID)
}

// GetClientIP 获取客户端真实 IP
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// 取第一个 IP（最原始的客户端）
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
