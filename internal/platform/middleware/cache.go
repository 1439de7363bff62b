package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// CacheStore is a response cache backend.
type CacheStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear()
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryCacheStore is a thread-safe in-memory CacheStore with lazy
// expiration.
type InMemoryCacheStore struct {
	entries map[string]*cacheEntry
	mu      sync.RWMutex
}

func NewInMemoryCacheStore() *InMemoryCacheStore {
	return &InMemoryCacheStore{
		entries: make(map[string]*cacheEntry),
	}
}

func (s *InMemoryCacheStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

func (s *InMemoryCacheStore) Set(key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &cacheEntry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *InMemoryCacheStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *InMemoryCacheStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*cacheEntry)
}

// StartCleanup runs a background goroutine that periodically removes expired
// entries. It stops when the context is cancelled.
func (s *InMemoryCacheStore) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				now := time.Now()
				for k, v := range s.entries {
					if now.After(v.expiresAt) {
						delete(s.entries, k)
					}
				}
				s.mu.Unlock()
			}
		}
	}()
}

// bufferedResponseWriter captures the response body so the middleware can
// decide whether to cache it before flushing to the real writer.
type bufferedResponseWriter struct {
	writer     http.ResponseWriter
	buf        *bytes.Buffer
	statusCode int
}

func newBufferedResponseWriter(w http.ResponseWriter) *bufferedResponseWriter {
	return &bufferedResponseWriter{
		writer:     w,
		buf:        &bytes.Buffer{},
		statusCode: http.StatusOK,
	}
}

func (w *bufferedResponseWriter) Header() http.Header { return w.writer.Header() }

func (w *bufferedResponseWriter) Write(b []byte) (int, error) { return w.buf.Write(b) }

func (w *bufferedResponseWriter) WriteHeader(code int) { w.statusCode = code }

func (w *bufferedResponseWriter) Flush() {}

func (w *bufferedResponseWriter) flushTo() error {
	w.writer.WriteHeader(w.statusCode)
	if w.buf.Len() > 0 {
		_, err := w.writer.Write(w.buf.Bytes())
		return err
	}
	return nil
}

// ResponseCache caches GET responses by URL for a short TTL. The free-slot
// calendar is recomputed from rules and occupancy on every read, so a brief
// cache absorbs the burst of month views the public booking page generates.
// A cached month may be seconds stale; the claim's conflict check is what
// guards correctness, not this cache.
func ResponseCache(store CacheStore, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}

			key := req.URL.Path + "?" + req.URL.RawQuery

			if data, ok := store.Get(key); ok {
				c.Response().Header().Set("X-Cache", "HIT")
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				c.Response().Writer.WriteHeader(http.StatusOK)
				_, err := c.Response().Writer.Write(data)
				return err
			}

			res := c.Response()
			origWriter := res.Writer
			buf := newBufferedResponseWriter(origWriter)
			res.Writer = buf

			if err := next(c); err != nil {
				res.Writer = origWriter
				return err
			}

			res.Writer = origWriter

			if buf.statusCode < 400 {
				store.Set(key, buf.buf.Bytes(), ttl)
			}

			res.Header().Set("X-Cache", "MISS")
			return buf.flushTo()
		}
	}
}
