package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	LogLevel        string
	DefaultProvider string
	DefaultModel    string
	OpenAIKey       string
	OpenAIBaseURL   string
	OllamaHost      string
	GeminiKey       string
	GeminiBaseURL   string
	QuestionCount   int
	QuestionTopic   string
	Language        string
	SheetBaseURL    string
	AnswerDelay     time.Duration
	DefaultPoolFile string
	SingleSession   bool
	ExportEnabled   bool
	ExportFile      string
}

// Load reads an optional .env file before resolving the environment.
// Variables already set in the process win over the file.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.DefaultProvider = getenv("DEFAULT_PROVIDER", "openai")
	c.DefaultModel = getenv("DEFAULT_MODEL", defaultModel(c.DefaultProvider))
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	c.OllamaHost = getenv("OLLAMA_HOST", "http://localhost:11434")
	c.GeminiKey = getenv("GEMINI_API_KEY", os.Getenv("API_KEY"))
	c.GeminiBaseURL = os.Getenv("GEMINI_BASE_URL")
	c.QuestionCount = getenvInt("QUESTION_COUNT", 30)
	c.QuestionTopic = getenv("QUESTION_TOPIC", "informatika dasar (basic computer science)")
	c.Language = getenv("QUESTION_LANGUAGE", "Indonesian")
	c.SheetBaseURL = os.Getenv("SHEET_BASE_URL")
	c.AnswerDelay = time.Duration(getenvInt("ANSWER_DELAY_MS", 600)) * time.Millisecond
	c.DefaultPoolFile = os.Getenv("DEFAULT_POOL_FILE")
	c.SingleSession = getenvBool("SINGLE_SESSION", true)
	c.ExportEnabled = getenvBool("EXPORT_ENABLED", false)
	c.ExportFile = getenv("EXPORT_FILE", "./quizrace-results.txt")
	return c
}

func defaultModel(provider string) string {
	switch provider {
	case "ollama":
		return "llama3.1"
	case "gemini":
		return "gemini-2.5-flash"
	default:
		return "gpt-4o-mini"
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return b
}
