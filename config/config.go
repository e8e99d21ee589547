package config

import (
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of engine performance.
var (
	RefreshRate   = getEnvInt("SNAKE_REFRESH_RATE", 20)
	TickBurst     = getEnvInt("SNAKE_TICK_BURST", 1)
	MaxOpenConns  = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns  = getEnvInt("MAX_IDLE_CONNS", 20)
	FramePageSize = getEnvInt("FRAME_PAGE_SIZE", 100)
)

// TickLimit converts a refresh rate in ticks per second to a rate limit. A
// non positive rate falls back to RefreshRate.
func TickLimit(refreshRate int) rate.Limit {
	if refreshRate <= 0 {
		refreshRate = RefreshRate
	}
	return rate.Limit(refreshRate)
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}
