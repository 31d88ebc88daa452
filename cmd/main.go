package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/raiderhub/arc-loot-bot/internal/ai"
	"github.com/raiderhub/arc-loot-bot/internal/loot"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_BOT_TOKEN is not set")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY is not set, every !loot will fail until it is configured")
	}

	// --- DB (optional) ---
	repo := loot.NewNopRepo()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatalf("db open error: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			log.Fatalf("db ping error: %v", err)
		}
		cancel()

		repo = loot.NewRepo(db)
	} else {
		log.Warn("DATABASE_URL is not set, report history disabled")
	}

	// --- Discord session ---
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("discord session error: %v", err)
	}
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	// --- Loot module wiring ---
	fetcher := ai.NewRetryingFetcher(ai.DefaultRetryPolicy(), log)
	aiClient := ai.NewGeminiClient(apiKey, fetcher, log)
	outbound := loot.NewDiscordOutbound(session, log)
	svc := loot.NewService(repo, aiClient, outbound, log)
	handler := loot.NewHandler(svc, outbound, log)

	session.AddHandler(handler.HandleMessageCreate)

	if err := session.Open(); err != nil {
		log.Fatalf("discord open error: %v", err)
	}
	defer session.Close()
	log.Info("discord session open")

	// --- Keep-alive HTTP ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	loot.RegisterRoutes(r, repo, log)

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Infof("listening on :%s", port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
}
