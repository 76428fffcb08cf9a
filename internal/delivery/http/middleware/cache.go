package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxCachedBody = 1 << 20

// Cache stores successful GET responses in Redis. A nil client makes every
// method a pass-through.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewCache(rdb *redis.Client, ttl time.Duration, prefix string) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Handler serves GET requests from the cache and records 200 responses.
func (c *Cache) Handler(next http.Handler) http.Handler {
	if !c.enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := c.key(r)
		if bs, err := c.rdb.Get(r.Context(), key).Bytes(); err == nil {
			if status, hdr, body, ok := decodePayload(bs); ok {
				for k, vals := range hdr {
					if k == "Content-Length" {
						continue
					}
					for _, v := range vals {
						w.Header().Add(k, v)
					}
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(status)
				_, _ = w.Write(body)
				return
			}
		}

		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(cw, r)

		if cw.status != http.StatusOK || cw.overflow {
			return
		}
		hdr := w.Header().Clone()
		hdr.Del("X-Cache")
		payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
		if err != nil {
			return
		}
		if err := c.rdb.Set(context.WithoutCancel(r.Context()), key, payload, c.ttl).Err(); err != nil {
			log.Printf("Cache write failed for %s: %v", r.URL.Path, err)
		}
	})
}

// InvalidateOnSuccess purges every cached entry after a 2xx write.
func (c *Cache) InvalidateOnSuccess(next http.Handler) http.Handler {
	if !c.enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		if sw.status >= 200 && sw.status < 300 {
			if err := c.Purge(context.WithoutCancel(r.Context())); err != nil {
				log.Printf("Cache purge failed: %v", err)
			}
		}
	})
}

// Purge deletes every key under the cache prefix.
func (c *Cache) Purge(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Cache) key(r *http.Request) string {
	return cacheKey(c.prefix, r.URL.Path, r.URL.RawQuery)
}

func cacheKey(prefix, path, rawQuery string) string {
	sum := sha1.Sum([]byte(path + "?" + rawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	return sw.ResponseWriter.Write(b)
}

type captureWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	buf         bytes.Buffer
	overflow    bool
}

func (cw *captureWriter) WriteHeader(code int) {
	if !cw.wroteHeader {
		cw.status = code
		cw.wroteHeader = true
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.wroteHeader = true
	if !cw.overflow {
		if cw.buf.Len()+len(b) > maxCachedBody {
			cw.overflow = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// encodePayload packs [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (int, http.Header, []byte, bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status := int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	hdr := make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, hdr, bs[8+hlen:], true
}
