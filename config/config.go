package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	game_constants "Mafia/constants/game"
	"Mafia/services/game"
	"Mafia/services/rooms"

	"golang.org/x/time/rate"
)

// Config is the whole server configuration, read from the environment.
type Config struct {
	Port     string
	Debug    bool
	LogLevel string
	// Secret of the session cookie store
	Key string

	DefaultName         string
	NewRoomTimeout      time.Duration
	InactiveRoomTimeout time.Duration
	GameOptions         game.Options

	ChatRate      float64
	ChatBurst     int
	MaxMessageLen int

	// Empty disables live statistics
	RedisURL string
	Postgres PostgresConfig
	// Capacity of the stats and archive queue
	SyncQueue int
}

// PostgresConfig locates the game archive. An empty Host disables it.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Migrate  bool
	Verbose  bool
}

func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// Load reads the configuration from the environment, falling back to the
// defaults in constants/game.
func Load() (*Config, error) {
	l := loader{}
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Debug:               l.bool("DEBUG", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Key:                 getEnv("KEY", "mafia-session-secret"),
		DefaultName:         getEnv("DEFAULT_NAME", game_constants.DEFAULT_PLAYER_NAME),
		NewRoomTimeout:      l.seconds("NEW_ROOM_TIMEOUT", game_constants.NEW_ROOM_TIMEOUT),
		InactiveRoomTimeout: l.seconds("INACTIVE_ROOM_TIMEOUT", game_constants.INACTIVE_ROOM_TIMEOUT),
		GameOptions: game.Options{
			MaxPlayers:    l.int("MAX_PLAYERS", game_constants.DEFAULT_MAX_PLAYERS),
			MafiaCoeff:    l.int("MAFIA_COEFF", game_constants.DEFAULT_MAFIA_COEFF),
			DayTimeout:    l.int("DAY_TIMEOUT", game_constants.DAY_TIMEOUT),
			NightTimeout:  l.int("NIGHT_TIMEOUT", game_constants.NIGHT_TIMEOUT),
			VoteTimeout:   l.int("VOTE_TIMEOUT", game_constants.VOTE_TIMEOUT),
			OptionalRoles: l.roles("OPTIONAL_ROLES", game_constants.DEFAULT_OPTIONAL_ROLES),
		},
		ChatRate:      l.float("CHAT_RATE", game_constants.CHAT_MESSAGES_PER_SECOND),
		ChatBurst:     l.int("CHAT_BURST", game_constants.CHAT_BURST),
		MaxMessageLen: l.int("MAX_MESSAGE_LENGTH", game_constants.MAX_MESSAGE_LENGTH),
		RedisURL:      os.Getenv("REDIS_URL"),
		Postgres: PostgresConfig{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Database: os.Getenv("POSTGRES_DATABASE"),
			Migrate:  l.bool("MIGRATE_POSTGRES", false),
			Verbose:  l.bool("VERBOSE_POSTGRES", false),
		},
		SyncQueue: l.int("SYNC_QUEUE_SIZE", game_constants.SYNC_QUEUE_SIZE),
	}
	if l.err != nil {
		return nil, l.err
	}
	if err := cfg.GameOptions.Validate(); err != nil {
		return nil, err
	}
	if cfg.NewRoomTimeout <= 0 || cfg.InactiveRoomTimeout <= 0 {
		return nil, fmt.Errorf("room timeouts must be positive")
	}
	return cfg, nil
}

// RoomsConfig is the part of the configuration the room registry needs.
func (c *Config) RoomsConfig() rooms.Config {
	return rooms.Config{
		WaitingTimeout: c.NewRoomTimeout,
		ActiveTimeout:  c.InactiveRoomTimeout,
		DefaultName:    c.DefaultName,
		ChatRate:       rate.Limit(c.ChatRate),
		ChatBurst:      c.ChatBurst,
		MaxMessageLen:  c.MaxMessageLen,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// loader keeps the first parse error so Load can read every key in one go.
type loader struct {
	err error
}

func (l *loader) fail(key, val string, err error) {
	if l.err == nil {
		l.err = fmt.Errorf("invalid %s=%q: %w", key, val, err)
	}
}

func (l *loader) int(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		l.fail(key, val, err)
		return fallback
	}
	return n
}

func (l *loader) float(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		l.fail(key, val, err)
		return fallback
	}
	return f
}

func (l *loader) bool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		l.fail(key, val, err)
		return fallback
	}
	return b
}

func (l *loader) seconds(key string, fallback int) time.Duration {
	return time.Duration(l.int(key, fallback)) * time.Second
}

// roles parses a comma separated role list. "none" means no optional roles.
func (l *loader) roles(key, fallback string) []game.Role {
	val := getEnv(key, fallback)
	if strings.EqualFold(strings.TrimSpace(val), "none") {
		return []game.Role{}
	}
	var roles []game.Role
	for _, name := range strings.Split(val, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		role, ok := game.ParseRole(name)
		if !ok {
			l.fail(key, val, fmt.Errorf("unknown role %q", strings.TrimSpace(name)))
			return nil
		}
		roles = append(roles, role)
	}
	return roles
}
