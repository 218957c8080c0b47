package authclient

import (
	"sync"
	"time"
)

// Session はクライアントが保持する認証状態。
// サーバーはこの値を信用せず、リクエストのたびにトークンを検証する。
type Session struct {
	// Token はサーバーが発行したトークン。
	Token string
	// ExpiresAt はログイン時刻とexpiresInから計算した有効期限。
	ExpiresAt time.Time
	// Section はログインしたセクション。
	Section string
}

// IsValid はトークンがあり、nowの時点で期限内であればtrueを返す。
func (s Session) IsValid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}

// For はセッションがsectionのものであればtrueを返す。
func (s Session) For(section string) bool {
	return s.Token != "" && s.Section == section
}

// Holder はセッションの保存先。
// ブラウザのlocalStorageに相当し、get/set/clearのみを提供する。
type Holder interface {
	Get() (Session, bool)
	Set(Session)
	Clear()
}

// MemoryHolder はメモリ上にセッションを保持するHolder。
// 複数のgoroutineから同時に使用できる。
type MemoryHolder struct {
	mu      sync.Mutex
	session *Session
}

// NewMemoryHolder は空のMemoryHolderを生成する。
func NewMemoryHolder() *MemoryHolder {
	return &MemoryHolder{}
}

// Get は保存されているセッションを返す。
func (h *MemoryHolder) Get() (Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		return Session{}, false
	}
	return *h.session, true
}

// Set はセッションを保存する。
func (h *MemoryHolder) Set(s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = &s
}

// Clear はセッションを破棄する。
func (h *MemoryHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = nil
}
