package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/playmatatu/poolsim/internal/game"
)

type Config struct {
	// Environment
	Environment string

	// Redis (empty URL disables caching and cross-instance fan-out)
	RedisURL            string
	ShotCacheTTLMinutes int

	// Server
	Port        string
	FrontendURL string

	// Security
	APIKeyHash string

	// Simulation
	MaxSegmentsPerShot int

	// Table physics
	TableLength  float64
	TableWidth   float64
	BallDiameter float64
	PocketRadius float64
	Drag         float64
	VelEpsilon   float64
	SimRate      float64
	MaxTime      float64
	MaxObjects   int
	FrameRate    float64
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	def := game.DefaultConstants()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Redis
		RedisURL:            getEnv("REDIS_URL", ""),
		ShotCacheTTLMinutes: getEnvInt("SHOT_CACHE_TTL_MINUTES", 60),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Security
		APIKeyHash: getEnv("API_KEY_HASH", ""),

		// Simulation
		MaxSegmentsPerShot: getEnvInt("MAX_SEGMENTS_PER_SHOT", 500),

		// Table physics
		TableLength:  getEnvFloat("TABLE_LENGTH", def.TableLength),
		TableWidth:   getEnvFloat("TABLE_WIDTH", def.TableWidth),
		BallDiameter: getEnvFloat("BALL_DIAMETER", def.BallDiameter),
		PocketRadius: getEnvFloat("POCKET_RADIUS", def.PocketRadius),
		Drag:         getEnvFloat("DRAG", def.Drag),
		VelEpsilon:   getEnvFloat("VEL_EPSILON", def.VelEpsilon),
		SimRate:      getEnvFloat("SIM_RATE", def.SimRate),
		MaxTime:      getEnvFloat("MAX_TIME", def.MaxTime),
		MaxObjects:   getEnvInt("MAX_OBJECTS", def.MaxObjects),
		FrameRate:    getEnvFloat("FRAME_RATE", def.FrameRate),
	}
}

// Physics returns the engine constants described by the configuration.
func (c *Config) Physics() game.Constants {
	return game.Constants{
		TableLength:  c.TableLength,
		TableWidth:   c.TableWidth,
		BallDiameter: c.BallDiameter,
		BallRadius:   c.BallDiameter / 2,
		PocketRadius: c.PocketRadius,
		Drag:         c.Drag,
		VelEpsilon:   c.VelEpsilon,
		SimRate:      c.SimRate,
		MaxTime:      c.MaxTime,
		MaxObjects:   c.MaxObjects,
		FrameRate:    c.FrameRate,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
