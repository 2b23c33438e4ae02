package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Knowledge KnowledgeConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "huggingface"
	LLMModel       string // e.g. "llama3", "qwen2.5-coder"
	OllamaBaseURL  string
	HuggingFaceKey string
}

// KnowledgeConfig selects the deployment mode and locates the KB stores.
type KnowledgeConfig struct {
	// Mode is "remote" (object storage + postgres audit trail),
	// "local" (filesystem + in-memory sessions) or "both".
	Mode string

	KBBucket     string // remote mode: GCS bucket holding "{project}.json"
	ProjectsDir  string // local mode: directory holding "{project}.json"
	TribalKBDir  string // directory holding "{project_type}.json"
	KBCacheRedis bool   // remote mode: cache KB documents in redis
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/coder-agent.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Knowledge: KnowledgeConfig{
			Mode:         getEnv("CODER_DEPLOYMENT_MODE", "local"),
			KBBucket:     getEnv("KB_BUCKET", ""),
			ProjectsDir:  getEnv("PROJECTS_DIR", "project_json"),
			TribalKBDir:  getEnv("TRIBAL_KB_DIR", "tribal_kb"),
			KBCacheRedis: getEnvAsBool("KB_CACHE_REDIS", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
