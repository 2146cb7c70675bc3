// Package bot implements the dialog engine that answers inbound WhatsApp
// messages: input classification, the per-state transition table, and the
// operator proposal command.
package bot

import (
	"regexp"
	"strings"
	"unicode"
)

// Kind is the closed classification of an inbound message.
type Kind int

const (
	KindOther Kind = iota
	KindGreeting
	KindAffirmation
	KindNegation
	KindMenuChoice
	KindDateLike
)

// Input carries a classified message. Raw preserves the original text (only
// surrounding whitespace trimmed) for display and literal storage; Key is the
// normalized choice token when Kind is KindMenuChoice.
type Input struct {
	Kind Kind
	Key  string
	Raw  string
}

var greetings = map[string]bool{
	"hola": true, "hola!": true, "holaa": true, "buenas": true,
	"buenos dias": true, "buenos días": true, "buenas tardes": true,
	"buenas noches": true, "hey": true, "saludos": true,
}

var affirmations = map[string]bool{
	"sí": true, "si": true, "s": true, "claro": true,
	"si,": true, "sí,": true, "si claro": true, "sí claro": true,
}

var negations = map[string]bool{
	"no": true, "n": true, "nop": true, "nope": true, "no,": true,
}

// choiceToken matches short tokens that are syntactically valid choice-keys.
// Whether the key exists at the contact's current menu node is the engine's
// check, not the classifier's.
var choiceToken = regexp.MustCompile(`^[0-9a-z]{1,2}$`)

// strictDateTime is the authoritative date/time pattern: two-digit day,
// slash, two-digit month, space, two-digit hour, colon, two-digit minute.
var strictDateTime = regexp.MustCompile(`^\d{2}/\d{2} \d{2}:\d{2}$`)

// Classify categorizes a raw message. It never fails; anything unmatched is
// KindOther.
func Classify(raw string) Input {
	trimmed := strings.TrimSpace(raw)
	folded := strings.ToLower(trimmed)

	in := Input{Kind: KindOther, Raw: trimmed}
	switch {
	case greetings[folded]:
		in.Kind = KindGreeting
	case affirmations[folded]:
		in.Kind = KindAffirmation
	case negations[folded]:
		in.Kind = KindNegation
	case choiceToken.MatchString(folded):
		in.Kind = KindMenuChoice
		in.Key = folded
	case isDateLike(folded):
		in.Kind = KindDateLike
	}
	return in
}

// isDateLike is the permissive heuristic used during classification: at least
// one digit and at least one separator character. The strict check happens
// only where a date is captured as authoritative.
func isDateLike(s string) bool {
	hasDigit := strings.ContainsFunc(s, unicode.IsDigit)
	return hasDigit && strings.ContainsAny(s, "/-: ")
}

// ValidDateTime reports whether s matches the strict DD/MM HH:MM pattern.
func ValidDateTime(s string) bool {
	return strictDateTime.MatchString(strings.TrimSpace(s))
}

// TitleName title-cases a supplied name for display: "juan perez" becomes
// "Juan Perez". Applied exactly once, at capture time.
func TitleName(raw string) string {
	words := strings.Fields(raw)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
