package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey string
	DatabaseURL  string
	HTTPPort     string
	LogLevel     string

	// Knowledge base
	DataFolder    string
	ChunkSize     int
	ChunkOverlap  int
	SearchResults int

	// Agent
	AgentTemperature float32
	AgentMaxTokens   int
	MaxChatHistory   int

	// Budget for a full message turn, in seconds.
	RequestTimeoutSecs int
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		DatabaseURL:  getEnv("DATABASE_URL", "support_kb.db"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),

		DataFolder:    getEnv("DATA_FOLDER", "./data"),
		ChunkSize:     getEnvAsInt("KB_CHUNK_SIZE", 1000),
		ChunkOverlap:  getEnvAsInt("KB_CHUNK_OVERLAP", 200),
		SearchResults: getEnvAsInt("KB_SEARCH_RESULTS", 5),

		AgentTemperature: getEnvAsFloat32("AGENT_TEMPERATURE", 0.7),
		AgentMaxTokens:   getEnvAsInt("AGENT_MAX_TOKENS", 1024),
		MaxChatHistory:   getEnvAsInt("MAX_CHAT_HISTORY", 50),

		RequestTimeoutSecs: getEnvAsInt("REQUEST_TIMEOUT_SECS", 60),
	}

	if AppConfig.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	if AppConfig.ChunkOverlap >= AppConfig.ChunkSize {
		log.Fatalf("KB_CHUNK_OVERLAP (%d) must be smaller than KB_CHUNK_SIZE (%d)",
			AppConfig.ChunkOverlap, AppConfig.ChunkSize)
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}
