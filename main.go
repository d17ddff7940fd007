package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"adastra/config"
	"adastra/internal/chat"
	"adastra/internal/database"
	"adastra/internal/domain"
	"adastra/internal/handler"
	"adastra/internal/knowledge"
	"adastra/internal/leads"
	"adastra/internal/service"
	"adastra/internal/sessions"
	"adastra/pkg/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Println("Server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	kb, err := loadKnowledge(cfg.KnowledgeFile)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}
	matcher := knowledge.NewMatcher(kb)
	delay := chat.UniformDelay(cfg.TypingDelayMin, cfg.TypingDelayMax)

	store := sessions.NewStore(func() *chat.Conversation {
		return chat.New(matcher, kb.Greeting, kb.QuickReplies, chat.WithDelay(delay))
	}, cfg.SessionTTL)
	defer store.Close()

	var repo leads.Repository
	if cfg.DatabaseUrl != "" {
		db, err := database.Open(ctx, cfg.DatabaseUrl)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = leads.NewSQLRepository(db)
	} else {
		log.Println("DATABASE_URL not set, lead forms will be rejected")
	}

	notifier := notify.NewWebhook(cfg.NotifyWebhookURL, cfg.NotifyToken)
	if notifier.Enabled() {
		log.Println("Lead notifications enabled")
	}

	h := handler.New(
		service.NewChatService(store),
		service.NewLeadService(repo, notifier),
		handler.Options{
			CORSOrigins: cfg.CORSOrigins,
			RateLimit:   rate.Limit(cfg.RateLimitRPS),
			RateBurst:   cfg.RateLimitBurst,
		},
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return store.Run(gCtx, cfg.SessionSweepInterval)
	})

	return g.Wait()
}

func loadKnowledge(path string) (domain.KnowledgeBase, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	kb, err := knowledge.LoadFile(path)
	if err != nil {
		return kb, err
	}
	log.Printf("Loaded %d knowledge entries from %s", len(kb.Entries), path)
	return kb, nil
}
