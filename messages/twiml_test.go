package messages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrdersMessages(t *testing.T) {
	body, err := NewMessagingResponse("primero", "segundo").Render()
	require.NoError(t, err)

	s := string(body)
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, "<Response><Message>primero</Message><Message>segundo</Message></Response>")
}

func TestRenderEscapesMarkup(t *testing.T) {
	body, err := NewMessagingResponse("fecha & hora <ya>").Render()
	require.NoError(t, err)

	s := string(body)
	assert.Contains(t, s, "fecha &amp; hora &lt;ya&gt;")
	assert.NotContains(t, s, "<ya>")
}

func TestRenderEmptyResponse(t *testing.T) {
	body, err := NewMessagingResponse().Render()
	require.NoError(t, err)
	assert.Contains(t, string(body), "<Response></Response>")
}
