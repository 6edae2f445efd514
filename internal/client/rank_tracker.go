package client

import "github.com/palemoky/hilo-trainer/internal/card"

// RankTracker 记录牌靴中每个点数剩余的张数。只在后端操作内部修改，
// 界面拿到的是 Snapshot 的副本
type RankTracker struct {
	remaining map[card.Rank]int
	valid     bool // 重连后无法知道已发出的牌
}

// NewRankTracker creates a tracker for a fresh shoe of numDecks decks.
func NewRankTracker(numDecks int) *RankTracker {
	rt := &RankTracker{remaining: make(map[card.Rank]int)}
	rt.Reset(numDecks)
	return rt
}

// Reset 恢复为完整牌靴
func (rt *RankTracker) Reset(numDecks int) {
	perRank := len(card.Suits()) * max(numDecks, 1)
	for _, rank := range card.Ranks() {
		rt.remaining[rank] = perRank
	}
	rt.valid = true
}

// Deduct removes a dealt card.
func (rt *RankTracker) Deduct(c card.Card) {
	if rt.remaining[c.Rank] > 0 {
		rt.remaining[c.Rank]--
	}
}

// Invalidate marks the tracker as unknown until the next Reset.
func (rt *RankTracker) Invalidate() {
	rt.valid = false
}

func (rt *RankTracker) Valid() bool {
	return rt.valid
}

// Remaining returns the count left for rank.
func (rt *RankTracker) Remaining(rank card.Rank) int {
	return rt.remaining[rank]
}

// Snapshot copies the counts into a value that is safe to hand to another
// goroutine.
func (rt *RankTracker) Snapshot() TrackerSnapshot {
	snap := TrackerSnapshot{Valid: rt.valid}
	for rank, n := range rt.remaining {
		if rank >= card.Rank2 && rank <= card.RankA {
			snap.counts[rank] = n
		}
	}
	return snap
}

// TrackerSnapshot 某一时刻的剩余点数统计
type TrackerSnapshot struct {
	Valid  bool
	counts [card.RankA + 1]int
}

// Remaining returns the count left for rank.
func (s TrackerSnapshot) Remaining(rank card.Rank) int {
	if rank < card.Rank2 || rank > card.RankA {
		return 0
	}
	return s.counts[rank]
}

// Groups 返回低牌 (+1)、中性牌 (0)、高牌 (-1) 各自的剩余张数
func (s TrackerSnapshot) Groups() (low, neutral, high int) {
	for _, rank := range card.Ranks() {
		n := s.counts[rank]
		switch card.HiLoValue(rank) {
		case 1:
			low += n
		case 0:
			neutral += n
		case -1:
			high += n
		}
	}
	return low, neutral, high
}
