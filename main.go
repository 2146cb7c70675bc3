package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ingpabc-ai/citasMB/bot"
	"github.com/ingpabc-ai/citasMB/config"
	"github.com/ingpabc-ai/citasMB/menu"
	"github.com/ingpabc-ai/citasMB/server"
	"github.com/ingpabc-ai/citasMB/session"
	"github.com/ingpabc-ai/citasMB/twilio"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Session store: prefer Redis, fall back to in-memory when unreachable
	var store session.Store
	redisStore, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPassword, cfg.SessionTTL)
	if err != nil {
		log.Printf("⚠️ Redis unavailable (%v), sessions will not survive restarts", err)
		store = session.NewMemoryStore()
	} else {
		log.Printf("💾 Session store connected: %s", cfg.RedisURL)
		store = redisStore
		defer redisStore.Close()
	}

	// Outbound gateway for operator proposals
	var gateway bot.Gateway
	tw := twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
	if tw.Configured() {
		gateway = tw
	} else {
		log.Println("⚠️ Twilio REST not configured, proactive messages disabled")
	}

	engine := bot.NewEngine(store, menu.Spa(), gateway, cfg.AdminNumbers)
	if len(cfg.AdminNumbers) > 0 {
		log.Printf("🔑 %d admin number(s) allow-listed", len(cfg.AdminNumbers))
	}

	monitor := server.NewMonitor(cfg.AllowedOrigins)
	engine.SetNotifier(monitor)

	srv := server.NewWebhook(cfg, engine, store, monitor)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\nReceived shutdown signal...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}
