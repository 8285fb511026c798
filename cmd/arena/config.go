package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/brensch/snekarena/engine"
	"github.com/brensch/snekarena/logging"
)

// gameFlags are shared by every subcommand that starts a game.
type gameFlags struct {
	players  string
	colors   string
	mapName  string
	speed    int
	seed     int64
	logFile  string
	logLevel string
	logJSON  bool
}

func addGameFlags(fs *flag.FlagSet, defaultPlayers, defaultLogFile string) *gameFlags {
	g := &gameFlags{}
	fs.StringVar(&g.players, "players", getEnvOrDefault("ARENA_PLAYERS", defaultPlayers), "Comma separated player types (human, ai), 2 to 4")
	fs.StringVar(&g.colors, "colors", getEnvOrDefault("ARENA_COLORS", ""), "Comma separated colors per player (random or a palette name); empty means all random")
	fs.StringVar(&g.mapName, "map", getEnvOrDefault("ARENA_MAP", "classic"), "Map: classic, death-star, kingdoms, lake")
	fs.IntVar(&g.speed, "speed", getEnvIntOrDefault("ARENA_SPEED", engine.DefaultSpeedMs), "Tick interval in ms: 50, 100, 150 or 200")
	fs.Int64Var(&g.seed, "seed", getEnvInt64OrDefault("ARENA_SEED", 0), "Random seed; 0 picks one from the clock")
	fs.StringVar(&g.logFile, "log-file", getEnvOrDefault("ARENA_LOG_FILE", defaultLogFile), "Rolling log file; empty logs to stderr")
	fs.StringVar(&g.logLevel, "log-level", getEnvOrDefault("ARENA_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	fs.BoolVar(&g.logJSON, "log-json", getEnvBoolOrDefault("ARENA_LOG_JSON", false), "Log one JSON object per line")
	return g
}

func (g *gameFlags) settings() (engine.Settings, error) {
	return engine.ParseSettings(splitList(g.players), splitList(g.colors), g.mapName, g.speed)
}

func (g *gameFlags) logger() (*zap.SugaredLogger, func(), error) {
	return logging.New(logging.Config{Level: g.logLevel, File: g.logFile, JSON: g.logJSON})
}

func (g *gameFlags) engine(log *zap.SugaredLogger) *engine.Engine {
	opts := []engine.Option{engine.WithLogger(log)}
	if g.seed != 0 {
		opts = append(opts, engine.WithSeed(g.seed))
	}
	return engine.New(opts...)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64OrDefault(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		var i int64
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
