package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"hola", KindGreeting},
		{"  Hola  ", KindGreeting},
		{"Buenos días", KindGreeting},
		{"sí", KindAffirmation},
		{"Si claro", KindAffirmation},
		{"S", KindAffirmation},
		{"no", KindNegation},
		{"Nop", KindNegation},
		{"1", KindMenuChoice},
		{"2a", KindMenuChoice},
		{"20/09 15:00", KindDateLike},
		{"el 20-09", KindDateLike},
		{"mañana a las 3", KindDateLike}, // permissive on purpose; strict check is separate
		{"quiero una cita", KindOther},
		{"", KindOther},
		{"si porfa", KindOther}, // ambiguous yes must not be guessed
		{"nunca", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Classify(tt.input)
			assert.Equal(t, tt.kind, got.Kind, "Classify(%q)", tt.input)
		})
	}
}

func TestClassifyPreservesRawAndKey(t *testing.T) {
	in := Classify("  Maria Fernanda  ")
	assert.Equal(t, "Maria Fernanda", in.Raw)

	in = Classify(" 3 ")
	assert.Equal(t, KindMenuChoice, in.Kind)
	assert.Equal(t, "3", in.Key)
}

func TestValidDateTime(t *testing.T) {
	valid := []string{"20/09 15:00", "01/01 09:30", " 20/09 15:00 "}
	for _, s := range valid {
		assert.True(t, ValidDateTime(s), "expected %q to be valid", s)
	}

	invalid := []string{"20-09 1500", "mañana a las 3", "20/09", "20/09 15", "2/9 15:00", ""}
	for _, s := range invalid {
		assert.False(t, ValidDateTime(s), "expected %q to be invalid", s)
	}
}

func TestTitleName(t *testing.T) {
	assert.Equal(t, "Juan Perez", TitleName("juan perez"))
	assert.Equal(t, "Maria", TitleName("  maria "))
	assert.Equal(t, "Ana Maria Lopez", TitleName("ANA MARIA LOPEZ"))
}
