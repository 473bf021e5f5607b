// Package tokens 管理仪表盘访问令牌：不透明随机串，带绝对过期时间，
// 过期即失效，不做滑动续期。
package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"gorm.io/gorm"

	"spendbot/models"
)

// Store 访问令牌存取接口
type Store interface {
	// Issue 为指定用户签发一个新令牌，有效期 ttl
	Issue(ownerID string, ttl time.Duration) (string, error)
	// Resolve 校验令牌并返回其归属用户，过期或不存在时 ok 为 false
	Resolve(token string) (ownerID string, ok bool)
	// Sweep 清理已过期的令牌，返回清理数量
	Sweep() int
}

// newToken 生成 32 位十六进制随机令牌
func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GormStore 基于 dashboard_tokens 表的令牌存储
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Issue(ownerID string, ttl time.Duration) (string, error) {
	// 签发时顺手清理过期令牌，避免表无限增长
	s.Sweep()

	token, err := newToken()
	if err != nil {
		return "", err
	}
	record := models.AccessToken{
		Token:     token,
		OwnerID:   ownerID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

func (s *GormStore) Resolve(token string) (string, bool) {
	var record models.AccessToken
	err := s.db.Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&record).Error
	if err != nil {
		return "", false
	}
	return record.OwnerID, true
}

func (s *GormStore) Sweep() int {
	result := s.db.Where("expires_at <= ?", time.Now()).
		Delete(&models.AccessToken{})
	return int(result.RowsAffected)
}

// MemoryStore 内存版令牌存储，供测试与单机调试使用
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	ownerID   string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Issue(ownerID string, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{ownerID: ownerID, expiresAt: time.Now().Add(ttl)}
	return token, nil
}

func (s *MemoryStore) Resolve(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok || !time.Now().Before(entry.expiresAt) {
		return "", false
	}
	return entry.ownerID, true
}

func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	swept := 0
	for token, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, token)
			swept++
		}
	}
	return swept
}
