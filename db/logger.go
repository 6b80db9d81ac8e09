package db

import (
	"log"
	"strings"
	"sync/atomic"
)

var quiet atomic.Bool

// SetLogLevel silencia els missatges informatius amb "silent" o "error".
func SetLogLevel(level string) {
	l := strings.ToLower(strings.TrimSpace(level))
	quiet.Store(l == "silent" || l == "error")
}

func logInfof(format string, v ...interface{}) {
	if quiet.Load() {
		return
	}
	log.Printf("[DB] "+format, v...)
}

func logErrorf(format string, v ...interface{}) {
	log.Printf("[DB][ERROR] "+format, v...)
}
