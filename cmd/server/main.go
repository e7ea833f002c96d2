package main

import (
    "flag"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/kiliankoe/quizrace/internal/ai"
    "github.com/kiliankoe/quizrace/internal/ai/gemini"
    "github.com/kiliankoe/quizrace/internal/ai/ollama"
    "github.com/kiliankoe/quizrace/internal/ai/openai"
    "github.com/kiliankoe/quizrace/internal/api"
    "github.com/kiliankoe/quizrace/internal/config"
    "github.com/kiliankoe/quizrace/internal/feedback"
    "github.com/kiliankoe/quizrace/internal/game"
    "github.com/kiliankoe/quizrace/internal/pool"
    "github.com/kiliankoe/quizrace/internal/quiz"
    "github.com/kiliankoe/quizrace/internal/sheet"
    "github.com/kiliankoe/quizrace/internal/ws"
    staticserver "github.com/kiliankoe/quizrace/static"
    "github.com/rs/zerolog"
    zerologlog "github.com/rs/zerolog/log"
)

const version = "v1.0.0-dev"

func main() {
    var (
        showHelp    = flag.Bool("help", false, "Show help message")
        showVersion = flag.Bool("version", false, "Show version information")
        portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
        envFile     = flag.String("env", ".env", "Optional dotenv file to load")
    )
    flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
    flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
    flag.Parse()

    if *showHelp {
        fmt.Printf(`QuizRace - two-player trivia race on a shared screen

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)
  --env FILE      Dotenv file to load before reading the environment (default: .env)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  LOG_LEVEL           debug, info, warn or error (default: info)
  DEFAULT_PROVIDER    Question generator: "openai", "ollama" or "gemini" (default: openai)
  DEFAULT_MODEL       Model for the chosen provider
  OPENAI_API_KEY      OpenAI API key (required for the openai provider)
  OPENAI_BASE_URL     Custom OpenAI API base URL (optional)
  OLLAMA_HOST         Ollama host URL (default: http://localhost:11434)
  GEMINI_API_KEY      Gemini API key (falls back to API_KEY)
  GEMINI_BASE_URL     Custom Gemini API base URL (optional)
  QUESTION_COUNT      Questions per generated batch (default: 30)
  QUESTION_TOPIC      Topic of generated questions
  QUESTION_LANGUAGE   Language of generated questions (default: Indonesian)
  SHEET_BASE_URL      Spreadsheet export host (default: https://docs.google.com)
  ANSWER_DELAY_MS     Feedback delay before an answer counts (default: 600)
  DEFAULT_POOL_FILE   JSON file replacing the built-in question pool (optional)
  SINGLE_SESSION      Allow only one active table (default: true)
  EXPORT_ENABLED      Append finished match results to a file (default: false)
  EXPORT_FILE         Path for exported results (default: ./quizrace-results.txt)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000

Visit http://localhost:8080 after starting the server.
`, os.Args[0], os.Args[0], os.Args[0])
        return
    }

    if *showVersion {
        fmt.Printf("QuizRace %s\n", version)
        return
    }

    cfg := config.Load(*envFile)
    if *portFlag != "" {
        cfg.Port = *portFlag
    }

    // zerolog setup (human-friendly console)
    zerolog.TimeFieldFormat = time.RFC3339
    cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
    zerologlog.Logger = zerologlog.Output(cw)
    level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
    if err != nil || level == zerolog.NoLevel {
        level = zerolog.InfoLevel
    }
    zerolog.SetGlobalLevel(level)

    defaults := quiz.DefaultPool()
    if cfg.DefaultPoolFile != "" {
        qs, err := quiz.LoadPoolFile(cfg.DefaultPoolFile)
        if err != nil {
            zerologlog.Fatal().Err(err).Str("file", cfg.DefaultPoolFile).Msg("failed to load default pool")
        }
        defaults = qs
    }
    zerologlog.Info().Int("questions", len(defaults)).Msg("default pool ready")

    opts := game.ManagerOptions{DefaultPool: defaults, SingleTable: cfg.SingleSession}
    if cfg.ExportEnabled {
        opts.ExportFile = cfg.ExportFile
    }
    tm := game.NewManager(opts)
    gate := feedback.NewGate(cfg.AnswerDelay)

    var gen pool.QuestionGenerator
    if p := newProvider(cfg); p != nil {
        gen = ai.NewGenerator(p, ai.GeneratorConfig{
            Model:    cfg.DefaultModel,
            Topic:    cfg.QuestionTopic,
            Language: cfg.Language,
        })
        zerologlog.Info().Str("provider", cfg.DefaultProvider).Str("model", cfg.DefaultModel).Msg("question generation enabled")
    }
    ps := pool.NewService(defaults, sheet.New(cfg.SheetBaseURL), gen, cfg.QuestionCount)

    // Gin setup with custom logger (skip /socket.io noise)
    gin.SetMode(gin.ReleaseMode)
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(api.Logger())

    // Socket server
    sock := ws.New(tm, ps, gate)
    io := sock.Mount(r)
    defer io.Close()

    api.New(tm, ps, gate, sock).Register(r)

    // Serve frontend (if embedded build is present) for all other routes
    r.NoRoute(func(c *gin.Context) {
        staticserver.Handler().ServeHTTP(c.Writer, c.Request)
    })

    zerologlog.Info().Str("port", cfg.Port).Msg("listening")
    if err := r.Run(":" + cfg.Port); err != nil {
        zerologlog.Fatal().Err(err).Msg("server stopped")
    }
}

// newProvider returns the configured question provider, or nil when it is
// missing credentials.
func newProvider(cfg config.Config) ai.Provider {
    switch strings.ToLower(cfg.DefaultProvider) {
    case "ollama":
        return ollama.New(cfg.OllamaHost)
    case "gemini":
        if cfg.GeminiKey == "" {
            zerologlog.Warn().Msg("GEMINI_API_KEY not set, question generation disabled")
            return nil
        }
        return gemini.New(cfg.GeminiKey, cfg.GeminiBaseURL)
    case "openai":
        if cfg.OpenAIKey == "" {
            zerologlog.Warn().Msg("OPENAI_API_KEY not set, question generation disabled")
            return nil
        }
        return openai.New(cfg.OpenAIKey, cfg.OpenAIBaseURL)
    }
    zerologlog.Warn().Str("provider", cfg.DefaultProvider).Msg("unknown provider, question generation disabled")
    return nil
}
