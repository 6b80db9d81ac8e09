package core

import (
	"io"
	"log"
	"strings"
	"sync/atomic"
)

type logLevel int32

const (
	logSilent logLevel = iota
	logError
	logInfo
	logDebug
)

// El separa en lots escriu des de diverses goroutines.
var currentLevel atomic.Int32

func init() {
	currentLevel.Store(int32(logInfo))
}

// SetLogLevel fixa el nivell: silent, error, info (per defecte) o debug.
func SetLogLevel(levelStr string) {
	lvl := strings.ToLower(strings.TrimSpace(levelStr))
	switch lvl {
	case "silent":
		currentLevel.Store(int32(logSilent))
	case "error":
		currentLevel.Store(int32(logError))
	case "debug":
		currentLevel.Store(int32(logDebug))
	default:
		currentLevel.Store(int32(logInfo))
	}
	Debugf("[log] nivell configurat: %s", lvl)
}

func enabled(l logLevel) bool {
	return logLevel(currentLevel.Load()) >= l
}

func Debugf(format string, v ...interface{}) {
	if enabled(logDebug) {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(logInfo) {
		log.Printf("[INFO] "+format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if enabled(logError) {
		log.Printf("[ERROR] "+format, v...)
	}
}

// AttachLoggerOutput redirigeix la sortida del log.
func AttachLoggerOutput(w io.Writer) {
	log.SetOutput(w)
}
