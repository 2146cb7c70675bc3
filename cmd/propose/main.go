// Command propose delivers an appointment proposal to a contact from the
// command line, using the same Twilio credentials as the server. It only
// sends the message; run it next to a live server (or use the admin command
// over WhatsApp) so the target session is updated too.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ingpabc-ai/citasMB/bot"
	"github.com/ingpabc-ai/citasMB/config"
	"github.com/ingpabc-ai/citasMB/session"
	"github.com/ingpabc-ai/citasMB/twilio"
)

func main() {
	target := flag.String("to", "", "target identity, e.g. +573001234567")
	dateTime := flag.String("at", "", "proposed date/time, e.g. '19/09 18:00'")
	flag.Parse()

	if *target == "" || *dateTime == "" {
		log.Fatal("usage: propose -to <identity> -at '<DD/MM HH:MM>'")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
	if !client.Configured() {
		log.Fatal("Twilio REST not configured (TWILIO_ACCOUNT_SID / TWILIO_AUTH_TOKEN / TWILIO_WHATSAPP_NUMBER)")
	}

	identity := bot.NormalizeIdentity(*target)
	body := fmt.Sprintf("Hemos revisado nuestra agenda y proponemos la fecha/hora: %s.\n\n"+
		"Por favor *confirma* con 'Sí' para que agendemos, o responde 'No' para reprogramar.", *dateTime)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := client.Send(ctx, identity, body); err != nil {
		log.Fatalf("❌ Failed to send proposal: %v", err)
	}
	log.Printf("✅ Proposal sent to %s: %s", identity, *dateTime)

	// Best effort: mirror the proposal into the session store so the
	// contact's next "sí" confirms it even without the admin command path.
	store, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPassword, cfg.SessionTTL)
	if err != nil {
		log.Printf("⚠️ Redis unavailable (%v), session not updated", err)
		return
	}
	defer store.Close()

	sess, err := store.Load(ctx, identity)
	if errors.Is(err, session.ErrNotFound) {
		sess = session.New(identity)
	} else if err != nil {
		// A read error is not "no session": overwriting here would wipe the
		// contact's name and request.
		log.Printf("⚠️ Failed to read session (%v), session not updated", err)
		return
	}
	sess.ConfirmedDateTime = *dateTime
	sess.State = session.StateManualReview
	sess.UpdatedAt = time.Now()
	if err := store.Save(ctx, sess); err != nil {
		log.Printf("⚠️ Failed to update session: %v", err)
		return
	}
	log.Printf("💾 Session for %s moved to manual review", identity)
}
