package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ingpabc-ai/citasMB/bot"
	"github.com/ingpabc-ai/citasMB/config"
	"github.com/ingpabc-ai/citasMB/messages"
	"github.com/ingpabc-ai/citasMB/session"

	"github.com/google/uuid"
)

// Webhook is the HTTP entry point for the messaging provider. One form POST
// arrives per inbound message; the reply is a TwiML document. The transport
// keeps no call state, so every request is handled independently.
type Webhook struct {
	httpServer *http.Server
	engine     *bot.Engine
	store      session.Store
	config     *config.Config
	monitor    *Monitor
}

// NewWebhook wires the webhook routes. monitor may be nil to disable the
// operator event stream.
func NewWebhook(cfg *config.Config, engine *bot.Engine, store session.Store, monitor *Monitor) *Webhook {
	s := &Webhook{
		engine:  engine,
		store:   store,
		config:  cfg,
		monitor: monitor,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/whatsapp", s.handleWhatsApp)
	mux.HandleFunc("/health", s.handleHealth)
	if monitor != nil {
		mux.HandleFunc("/events", monitor.handleEvents)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Start begins listening for webhook requests
func (s *Webhook) Start() error {
	log.Printf("🚀 Webhook server starting on port %d", s.config.Port)
	log.Printf("📡 WhatsApp endpoint: http://localhost:%d/whatsapp", s.config.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Webhook) Shutdown(ctx context.Context) error {
	log.Println("🛑 Shutting down webhook server...")
	if s.monitor != nil {
		s.monitor.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Webhook) handleWhatsApp(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()[:8]

	// Nothing may escape past the webhook boundary: the transport always
	// gets a well-formed TwiML document, even on an internal fault.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("❌ [%s] Panic while handling message: %v", reqID, rec)
			writeTwiML(w, reqID, bot.ReplyUnavailable)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		log.Printf("⚠️ [%s] Malformed form payload: %v", reqID, err)
		writeTwiML(w, reqID, bot.ReplyUnavailable)
		return
	}

	numMedia, _ := strconv.Atoi(r.FormValue("NumMedia"))
	in := bot.Inbound{
		From:     r.FormValue("From"),
		Body:     r.FormValue("Body"),
		NumMedia: numMedia,
		MediaURL: r.FormValue("MediaUrl0"),
	}

	replies, err := s.engine.Handle(r.Context(), in)
	if err != nil {
		log.Printf("⚠️ [%s] Engine error for %s: %v", reqID, in.From, err)
	}

	writeTwiML(w, reqID, replies...)
}

func writeTwiML(w http.ResponseWriter, reqID string, texts ...string) {
	body, err := messages.NewMessagingResponse(texts...).Render()
	if err != nil {
		log.Printf("❌ [%s] TwiML render failed: %v", reqID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write(body)
}

func (s *Webhook) handleHealth(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	if err := s.store.Ping(r.Context()); err != nil {
		storeStatus = "down"
	}

	operators := 0
	if s.monitor != nil {
		operators = s.monitor.Count()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","store":"%s","operators":%d}`, storeStatus, operators)
}

// GetAddr returns the server's listen address (for logging in main)
func (s *Webhook) GetAddr() string {
	return s.httpServer.Addr
}
