package config

import (
	"log"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"os"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Extractor ExtractorConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadLimitMB      int
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string // e.g. "llama3", "gpt-4o-mini"
	OllamaBaseURL string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

type ExtractorConfig struct {
	Mode           string // "script" (per-file subprocess) or "remote" (HTTP service)
	PythonBin      string
	ScriptPath     string
	ServiceURL     string
	TempDir        string
	TimeoutSeconds int
}

type SessionConfig struct {
	TTL        time.Duration
	EventTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			UploadLimitMB:      getEnvAsInt("UPLOAD_LIMIT_MB", 10),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Extractor: ExtractorConfig{
			Mode:           getEnv("EXTRACTOR_MODE", "script"),
			PythonBin:      getEnv("EXTRACTOR_PYTHON_BIN", "python3"),
			ScriptPath:     getEnv("EXTRACTOR_SCRIPT_PATH", "./scripts/read_file.py"),
			ServiceURL:     getEnv("EXTRACTOR_SERVICE_URL", "http://localhost:8000"),
			TempDir:        getEnv("EXTRACTOR_TEMP_DIR", ""),
			TimeoutSeconds: getEnvAsInt("EXTRACTOR_TIMEOUT_SECONDS", 60),
		},
		Session: SessionConfig{
			TTL:        time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
			EventTopic: getEnv("SESSION_EVENT_TOPIC_NAME", "SESSION_EVENTS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
