package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type App struct {
	Addr        string
	Development bool
	LogFile     string
	CorsOrigins []string
}

func NewApp() (*App, error) {
	addr, ok := os.LookupEnv("APP_ADDR")
	if !ok {
		addr = ":8080"
	}
	var origins []string
	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return &App{
		Addr:        addr,
		Development: Development(),
		LogFile:     os.Getenv("LOG_FILE"),
		CorsOrigins: origins,
	}, nil
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

type Game struct {
	MaxWidth      int
	MaxHeight     int
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func NewGame() (*Game, error) {
	maxWidth, err := intEnv("GAME_MAX_WIDTH", 100)
	if err != nil {
		return nil, err
	}
	maxHeight, err := intEnv("GAME_MAX_HEIGHT", 100)
	if err != nil {
		return nil, err
	}
	ttl, err := durationEnv("SESSION_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	interval, err := durationEnv("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive, got %s", interval)
	}

	return &Game{
		MaxWidth:      maxWidth,
		MaxHeight:     maxHeight,
		SessionTTL:    ttl,
		SweepInterval: interval,
	}, nil
}

func (g Game) ValidateSize(width, height int) error {
	if width < 1 || width > g.MaxWidth {
		return fmt.Errorf("width must be between 1 and %d", g.MaxWidth)
	}
	if height < 1 || height > g.MaxHeight {
		return fmt.Errorf("height must be between 1 and %d", g.MaxHeight)
	}
	return nil
}

func intEnv(key string, def int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %s: %w", key, err)
	}
	return d, nil
}
