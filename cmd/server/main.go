package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"flightmiles/internal/handler"
	"flightmiles/internal/identity"
	"flightmiles/internal/loyalty"
	"flightmiles/internal/ratelimit"
	"flightmiles/internal/session"
	"flightmiles/internal/upstream"
)

type Config struct {
	Port string

	SearchBaseURL  string
	SearchUsername string
	SearchPassword string

	MilefyBaseURL  string
	MilefyKey      string
	MilefyUsername string
	MilefyPassword string

	UpstreamTimeout time.Duration

	SessionBackend string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewUpstreamLimiterWithDefaults()
	rateLimiter.SetUpstreamLimit(upstream.LimiterName, 20, 30)
	rateLimiter.SetUpstreamLimit(loyalty.LimiterName, 10, 20)

	sessionStore := initSessionStore(cfg)
	defer sessionStore.Close()

	searchClient := upstream.NewSearchClient(upstream.Config{
		BaseURL:  cfg.SearchBaseURL,
		Username: cfg.SearchUsername,
		Password: cfg.SearchPassword,
		Timeout:  cfg.UpstreamTimeout,
	}, rateLimiter)

	var loyaltyClient *loyalty.Client
	var identityProvider identity.Provider
	if cfg.MilefyBaseURL != "" {
		loyaltyClient = loyalty.NewClient(loyalty.Config{
			BaseURL:  cfg.MilefyBaseURL,
			APIKey:   cfg.MilefyKey,
			Username: cfg.MilefyUsername,
			Password: cfg.MilefyPassword,
			Timeout:  cfg.UpstreamTimeout,
		}, sessionStore, rateLimiter)
		identityProvider = identity.NewCookieProvider(loyaltyClient)
		log.Println("Mileage enrichment enabled")
	} else {
		log.Println("Mileage enrichment disabled (MILEFY_BASE_URL not set)")
	}

	searchHandler := handler.NewSearchHandler(searchClient, loyaltyClient, identityProvider)

	api := e.Group("/api")
	api.GET("/searches", searchHandler.ListSearches)
	api.GET("/results", searchHandler.FlightResults)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting flight miles server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initSessionStore(cfg Config) session.Store {
	if cfg.SessionBackend != "redis" {
		log.Println("In-memory session store enabled")
		return session.NewMemoryStore()
	}

	store, err := session.NewRedisStore(session.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.SessionTTL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Printf("Redis session store enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.SessionTTL)
	return store
}

func loadConfig() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		SearchBaseURL:  getEnv("SEARCH_API_BASE_URL", "https://qpx-dev.30k.com"),
		SearchUsername: getEnv("SEARCH_API_USERNAME", ""),
		SearchPassword: getEnv("SEARCH_API_PASSWORD", ""),

		MilefyBaseURL:  getEnv("MILEFY_BASE_URL", ""),
		MilefyKey:      getEnv("MILEFY_KEY", ""),
		MilefyUsername: getEnv("MILEFY_USERNAME", ""),
		MilefyPassword: getEnv("MILEFY_PASSWORD", ""),

		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 120*time.Second),

		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
