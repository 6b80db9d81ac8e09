package handlers

import (
	"log"
	"net"
	"net/http"
	"sync"
	"time"
)

// SecureHeaders afegeix les capçaleres de seguretat a les respostes de l'API.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Robots-Tag", "noindex, nofollow")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// RateLimiter limita les peticions per IP a una cada interval.
type RateLimiter struct {
	interval time.Duration
	last     sync.Map // ip -> time.Time
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	val, loaded := rl.last.LoadOrStore(ip, now)
	if loaded {
		if now.Sub(val.(time.Time)) < rl.interval {
			return false
		}
		rl.last.Store(ip, now)
	}
	return true
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.allow(ip, time.Now()) {
			log.Printf("[HTTP] massa peticions de %s", ip)
			writeError(w, http.StatusTooManyRequests, "massa peticions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func applyMiddleware(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, mw := range middlewares {
		h = mw(h)
	}
	return h
}
