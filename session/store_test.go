package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLoadMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "whatsapp:+573000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := New("whatsapp:+573001234567")
	s.State = StateSubmenu
	s.DisplayName = "Maria"
	s.Path = []string{"1", "2"}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Load(ctx, s.Identity)
	require.NoError(t, err)
	assert.Equal(t, StateSubmenu, got.State)
	assert.Equal(t, "Maria", got.DisplayName)
	assert.Equal(t, []string{"1", "2"}, got.Path)
	assert.Equal(t, 1, store.Len())
}

// The store hands out copies: mutating a loaded session, or the session that
// was saved, must never reach other readers until Save is called again.
func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := New("whatsapp:+573001234567")
	s.Path = []string{"1"}
	require.NoError(t, store.Save(ctx, s))

	s.Path[0] = "9"
	s.DisplayName = "mutated after save"

	a, err := store.Load(ctx, s.Identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, a.Path)
	assert.Empty(t, a.DisplayName)

	a.Path = append(a.Path, "2")
	a.State = StateManualHandoff

	b, err := store.Load(ctx, s.Identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, b.Path)
	assert.Equal(t, StateAwaitingName, b.State)
}

// Load-then-save from two holders: the later Save wins wholesale. The dialog
// engine relies on exactly this behavior being stable.
func TestMemoryStoreLastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, New("whatsapp:+573001234567")))

	first, err := store.Load(ctx, "whatsapp:+573001234567")
	require.NoError(t, err)
	second, err := store.Load(ctx, "whatsapp:+573001234567")
	require.NoError(t, err)

	first.DisplayName = "First"
	require.NoError(t, store.Save(ctx, first))
	second.State = StateMenu
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Load(ctx, "whatsapp:+573001234567")
	require.NoError(t, err)
	assert.Equal(t, StateMenu, got.State)
	assert.Empty(t, got.DisplayName, "the second writer's snapshot overwrites the first's name")
}

func TestSessionCodecRoundTrip(t *testing.T) {
	s := &Session{
		Identity:          "whatsapp:+573001234567",
		State:             StateManualReview,
		DisplayName:       "Maria Fernanda",
		Path:              []string{"1", "2"},
		SelectedService:   "Manicure en gel",
		SelectedOption:    "Francesa",
		RequestedDateTime: "20/09 15:00",
		ConfirmedDateTime: "20/09 16:00",
		DesignAttachment:  "https://media.example/design.jpg",
		CreatedAt:         time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC),
	}

	data, err := encodeSession(s)
	require.NoError(t, err)

	got, err := decodeSession(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDecodeSessionRejectsGarbage(t *testing.T) {
	_, err := decodeSession([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewSessionDefaults(t *testing.T) {
	s := New("whatsapp:+573001234567")
	assert.Equal(t, StateAwaitingName, s.State)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Equal(t, s.CreatedAt, s.UpdatedAt)
}
