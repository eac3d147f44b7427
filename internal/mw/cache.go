package mw

import (
	"bytes"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// cacheHeader reports whether a response was served from the cache.
const cacheHeader = "X-Cache"

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache is an in-memory cache of GET responses that can be invalidated as a
// whole. A response whose handler was still running when Flush was called is not
// stored, since it may have been built from the data the flush invalidated.
type ResponseCache struct {
	store    *cache.Cache
	duration time.Duration

	mu         sync.Mutex
	generation atomic.Uint64
}

// NewResponseCache creates a cache keeping responses for duration.
func NewResponseCache(duration time.Duration) *ResponseCache {
	return &ResponseCache{
		store:    cache.New(duration, 2*duration),
		duration: duration,
	}
}

// Flush drops every cached response and every response still being built.
func (rc *ResponseCache) Flush() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.generation.Add(1)
	rc.store.Flush()
}

// Handler is the caching middleware. Only 2xx responses are stored, keyed by request
// URI.
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if resp, found := rc.store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set(cacheHeader, "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		generation := rc.generation.Load()
		c.Writer.Header().Set(cacheHeader, "MISS")
		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if blw.Status() < 200 || blw.Status() >= 300 {
			return
		}
		headers := blw.Header().Clone()
		headers.Del(cacheHeader)
		response := cachedResponse{
			status:  blw.Status(),
			headers: headers,
			body:    blw.body.Bytes(),
		}

		rc.mu.Lock()
		defer rc.mu.Unlock()
		if rc.generation.Load() != generation {
			return
		}
		rc.store.Set(key, response, rc.duration)
	}
}
