package api

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// sqlDownload 一份待下载的 SQL 脚本
type sqlDownload struct {
	filePath  string
	filename  string
	expiresAt time.Time
}

// downloadStore 一次性下载令牌表，带 TTL
type downloadStore struct {
	mu    sync.Mutex
	items map[string]sqlDownload
}

func newDownloadStore() *downloadStore {
	return &downloadStore{items: make(map[string]sqlDownload)}
}

func (s *downloadStore) put(filePath, filename string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = sqlDownload{
		filePath:  filePath,
		filename:  filename,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *downloadStore) get(token string) (sqlDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return sqlDownload{}, false
	}
	return v, true
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
