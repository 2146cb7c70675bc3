package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ingpabc-ai/citasMB/menu"
	"github.com/ingpabc-ai/citasMB/session"
)

// Gateway delivers a proactive message outside the request/reply cycle.
type Gateway interface {
	Send(ctx context.Context, to, body string) error
}

// Inbound is one message as extracted from the transport webhook. Only the
// first attachment is ever read.
type Inbound struct {
	From     string
	Body     string
	NumMedia int
	MediaURL string
}

// Engine is the session dialog state machine. It is stateless itself: every
// invocation is load → transition → save against the injected store.
//
// Concurrent messages from the same identity are not serialized; the store's
// read-then-overwrite semantics mean the second write wins. This is a known,
// documented limitation rather than something the engine papers over.
type Engine struct {
	store    session.Store
	root     *menu.Node
	gateway  Gateway
	admins   map[string]bool
	notifier Notifier
}

// NewEngine wires the state machine to its collaborators. gateway and
// notifier may be nil; the proposal path then reports not-configured and
// events are dropped.
func NewEngine(store session.Store, root *menu.Node, gateway Gateway, adminNumbers []string) *Engine {
	admins := make(map[string]bool, len(adminNumbers))
	for _, n := range adminNumbers {
		admins[NormalizeIdentity(n)] = true
	}
	return &Engine{
		store:   store,
		root:    root,
		gateway: gateway,
		admins:  admins,
	}
}

// SetNotifier attaches an event sink for the operator monitor.
func (e *Engine) SetNotifier(n Notifier) { e.notifier = n }

// Handle interprets one inbound message and returns the ordered reply texts.
// The replies are always usable even when err is non-nil; err exists so the
// caller can log what went wrong.
func (e *Engine) Handle(ctx context.Context, in Inbound) ([]string, error) {
	identity := NormalizeIdentity(in.From)
	if identity == "" {
		return []string{ReplyUnavailable}, errors.New("inbound message without sender identity")
	}

	// The proposal command is only a command from allow-listed senders; the
	// same text from anyone else falls through as ordinary contact input.
	if e.admins[identity] && isProposeCommand(in.Body) {
		return e.handlePropose(ctx, identity, in.Body)
	}

	sess, err := e.store.Load(ctx, identity)
	if errors.Is(err, session.ErrNotFound) {
		sess = session.New(identity)
	} else if err != nil {
		return []string{ReplyUnavailable}, fmt.Errorf("load session: %w", err)
	}

	replies := e.transition(sess, Classify(in.Body), in)

	sess.UpdatedAt = time.Now()
	if err := e.store.Save(ctx, sess); err != nil {
		// The session is not advanced; the contact's next message retries
		// from the previous persisted state.
		return []string{ReplyUnavailable}, fmt.Errorf("save session: %w", err)
	}
	return replies, nil
}

// transition applies the state table, mutating sess in place.
func (e *Engine) transition(sess *session.Session, in Input, msg Inbound) []string {
	// Greeting is a cross-cutting override, suppressed only inside
	// ManualHandoff once a name is on file: a new contact must always be
	// able to restart, but an engaged contact must not derail a live human
	// conversation by saying hello.
	if in.Kind == KindGreeting {
		switch {
		case sess.State == session.StateManualHandoff && sess.DisplayName != "":
			return []string{replyHandoff}
		case sess.DisplayName == "":
			sess.State = session.StateAwaitingName
			sess.Path = nil
			return []string{replyWelcome}
		default:
			sess.State = session.StateMenu
			sess.Path = nil
			return []string{e.greetingMenu(sess.DisplayName)}
		}
	}

	switch sess.State {
	case session.StateAwaitingName:
		return e.captureName(sess, in)
	case session.StateMenu, session.StateSubmenu:
		return e.navigateMenu(sess, in)
	case session.StateAwaitingDesignDecision:
		return e.designDecision(sess, in, msg)
	case session.StateAwaitingDesignUpload:
		return e.designUpload(sess, msg)
	case session.StateAwaitingDate, session.StateAwaitingDateNoDesign:
		return e.captureDate(sess, in)
	case session.StateManualReview:
		return e.manualReview(sess, in)
	case session.StateManualHandoff:
		return []string{replyHandoff}
	default:
		// Unknown persisted state: recover to the root menu, or to name
		// capture when we never got a name.
		sess.Path = nil
		if sess.DisplayName == "" {
			sess.State = session.StateAwaitingName
			return []string{replyWelcome}
		}
		sess.State = session.StateMenu
		return []string{replyStartOver, renderOptions(e.root)}
	}
}

func (e *Engine) captureName(sess *session.Session, in Input) []string {
	if in.Raw == "" {
		return []string{replyAskName}
	}
	sess.DisplayName = TitleName(in.Raw)
	sess.State = session.StateMenu
	sess.Path = nil
	return []string{e.greetingMenu(sess.DisplayName)}
}

func (e *Engine) greetingMenu(name string) string {
	return fmt.Sprintf("¡Hola, %s! 😊\n%s", name, renderOptions(e.root))
}

// navigateMenu handles both Menu (root) and Submenu (path non-empty). The
// resolved node is validated before any child lookup so a stale path can
// never index into a missing branch.
func (e *Engine) navigateMenu(sess *session.Session, in Input) []string {
	node, ok := menu.Resolve(e.root, sess.Path)
	if !ok {
		sess.Path = nil
		sess.State = session.StateMenu
		return []string{replyStartOver, renderOptions(e.root)}
	}

	key := in.Key
	if in.Kind != KindMenuChoice {
		// Word forms like "pedir cita" or "instagram" count as the key they
		// alias at this node.
		alias, ok := node.AliasKey(in.Raw)
		if !ok {
			return []string{replyInvalidChoice, renderOptions(node)}
		}
		key = alias
	}

	chosen, ok := node.Children[key]
	if !ok {
		return []string{replyInvalidChoice, renderOptions(node)}
	}

	if !chosen.IsLeaf() {
		sess.Path = menu.Step(sess.Path, key)
		sess.State = session.StateSubmenu
		return []string{renderOptions(chosen)}
	}

	return e.dispatchLeaf(sess, node, chosen)
}

// dispatchLeaf enters the sub-flow a terminal menu node names.
func (e *Engine) dispatchLeaf(sess *session.Session, parent, leaf *menu.Node) []string {
	switch leaf.Action {
	case menu.ActionInformational:
		sess.Path = nil
		sess.State = session.StateMenu
		return []string{leaf.Reply}

	case menu.ActionDateOnly:
		sess.SelectedService = parent.Label
		sess.SelectedOption = leaf.Label
		sess.Path = nil
		sess.State = session.StateAwaitingDate
		return []string{fmt.Sprintf("Elegiste: %s · %s", parent.Label, leaf.Label), replyAskDate}

	case menu.ActionDesignEligible:
		sess.SelectedService = parent.Label
		sess.SelectedOption = leaf.Label
		sess.Path = nil
		sess.State = session.StateAwaitingDesignDecision
		return []string{fmt.Sprintf("Elegiste: %s · %s", parent.Label, leaf.Label), replyDesignQuestion}

	case menu.ActionHandoff:
		sess.Path = nil
		sess.State = session.StateManualHandoff
		e.publish(newEvent(sess.Identity, sess.State, leaf.Label))
		return []string{replyHandoff}

	default:
		// A leaf with an unknown tag means the tree changed under us.
		sess.Path = nil
		sess.State = session.StateMenu
		return []string{replyStartOver, renderOptions(e.root)}
	}
}

func (e *Engine) designDecision(sess *session.Session, in Input, msg Inbound) []string {
	// An attachment arriving here already answers the question.
	if msg.NumMedia > 0 {
		if msg.MediaURL != "" {
			sess.DesignAttachment = msg.MediaURL
		}
		sess.State = session.StateAwaitingDate
		return []string{replyDesignReceived, replyAskDate}
	}

	switch in.Kind {
	case KindAffirmation:
		sess.State = session.StateAwaitingDesignUpload
		return []string{replyDesignYes}
	case KindNegation:
		sess.State = session.StateAwaitingDateNoDesign
		return []string{replyDesignNo, replyAskDate}
	default:
		return []string{replyDesignQuestion}
	}
}

// designUpload accepts anything: an image reference when present, otherwise
// the text stands in as the design description.
func (e *Engine) designUpload(sess *session.Session, msg Inbound) []string {
	if msg.NumMedia > 0 && msg.MediaURL != "" {
		sess.DesignAttachment = msg.MediaURL
	} else if desc := strings.TrimSpace(msg.Body); desc != "" {
		sess.DesignAttachment = desc
	}
	sess.State = session.StateAwaitingDate
	return []string{replyDesignReceived, replyAskDate}
}

func (e *Engine) captureDate(sess *session.Session, in Input) []string {
	if !ValidDateTime(in.Raw) {
		return []string{replyDateFormat}
	}
	sess.RequestedDateTime = strings.TrimSpace(in.Raw)
	sess.State = session.StateManualReview
	e.publish(newEvent(sess.Identity, sess.State, sess.RequestedDateTime))
	return []string{replyInReview}
}

// manualReview is the only state an external actor writes into: an operator
// proposal sets ConfirmedDateTime asynchronously, and the contact's next
// affirmation fires the final confirmation. A contact's own requested date is
// never treated as a confirmed one.
func (e *Engine) manualReview(sess *session.Session, in Input) []string {
	switch {
	case in.Kind == KindAffirmation && sess.ConfirmedDateTime != "":
		confirmed := sess.ConfirmedDateTime
		sess.State = session.StateMenu
		sess.Path = nil
		e.publish(newEvent(sess.Identity, "confirmed", confirmed))
		return []string{replyConfirmed(confirmed)}

	case in.Kind == KindNegation && sess.ConfirmedDateTime != "":
		sess.ConfirmedDateTime = ""
		return []string{replyReschedule}

	case sess.ConfirmedDateTime != "":
		// A proposal is on the table; anything but a clear yes/no gets the
		// yes/no reprompt, not the keep-waiting text.
		return []string{replyYesNo}

	default:
		return []string{replyReviewPending}
	}
}

func (e *Engine) publish(evt Event) {
	if e.notifier != nil {
		e.notifier.Publish(evt)
	}
}

// NormalizeIdentity maps a phone-style address to the canonical WhatsApp
// form: "+57300..." becomes "whatsapp:+57300...", already-prefixed values
// pass through unchanged.
func NormalizeIdentity(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "whatsapp:") {
		return p
	}
	if strings.HasPrefix(p, "+") {
		return "whatsapp:" + p
	}
	return p
}
