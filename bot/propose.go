package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ingpabc-ai/citasMB/session"
)

// The proposal command an allow-listed operator sends to push a date/time to
// a contact, e.g. "PROPUESTA +573001234567 19/09 18:00". The English prefix
// is accepted too. For any non-admin sender the same text is ordinary input.

func isProposeCommand(body string) bool {
	folded := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(folded, "propuesta ") || strings.HasPrefix(folded, "propose ")
}

// parsePropose splits "<cmd> <target> <date-time text>". The date/time part
// keeps its spacing; it is stored and displayed literally.
func parsePropose(body string) (target, dateTime string, err error) {
	parts := strings.Fields(strings.TrimSpace(body))
	if len(parts) < 3 {
		return "", "", errors.New("propose: missing target or date/time")
	}
	return parts[1], strings.Join(parts[2:], " "), nil
}

// handlePropose mutates the target identity's session and delivers the
// proposal through the outbound gateway, bypassing the reply cycle. All
// errors are reported to the sender; the target never sees a malformed
// command.
func (e *Engine) handlePropose(ctx context.Context, sender, body string) ([]string, error) {
	targetRaw, dateTime, err := parsePropose(body)
	if err != nil {
		return []string{proposeUsage}, nil
	}
	target := NormalizeIdentity(targetRaw)

	sess, err := e.store.Load(ctx, target)
	if errors.Is(err, session.ErrNotFound) {
		sess = session.New(target)
	} else if err != nil {
		return []string{fmt.Sprintf("❌ Error: no se pudo leer la sesión de %s.", target)},
			fmt.Errorf("propose load %s: %w", target, err)
	}

	sess.ConfirmedDateTime = dateTime
	sess.State = session.StateManualReview
	sess.UpdatedAt = time.Now()

	if err := e.store.Save(ctx, sess); err != nil {
		return []string{fmt.Sprintf("❌ Error: no se pudo guardar la propuesta para %s.", target)},
			fmt.Errorf("propose save %s: %w", target, err)
	}

	e.publish(newEvent(target, "proposal", dateTime))

	// Delivery is fire-and-forget: a failed send is reported to the sender
	// and never retried here.
	if e.gateway == nil {
		return []string{"❌ Error: el envío proactivo no está configurado (revisa las credenciales de Twilio)."}, nil
	}
	if err := e.gateway.Send(ctx, target, proposalText(dateTime)); err != nil {
		return []string{"❌ Error: no se pudo enviar la propuesta al cliente (revisa configuración de Twilio)."},
			fmt.Errorf("propose send %s: %w", target, err)
	}

	return []string{fmt.Sprintf("✅ Propuesta enviada a %s: %s", target, dateTime)}, nil
}
