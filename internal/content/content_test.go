package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nataliaSk777/tochka-opory/internal/models"
)

func TestPickUndeliveredSkipsExcluded(t *testing.T) {
	list := []Variant{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	excluded := map[string]struct{}{"a": {}, "c": {}}

	for i := 0; i < 50; i++ {
		v, ok := PickUndelivered(list, excluded)
		require.True(t, ok)
		assert.Equal(t, "b", v.ID)
	}
}

func TestPickUndeliveredFallsBackWhenExhausted(t *testing.T) {
	list := []Variant{{ID: "a"}, {ID: "b"}}
	excluded := map[string]struct{}{"a": {}, "b": {}}

	for i := 0; i < 50; i++ {
		v, ok := PickUndelivered(list, excluded)
		require.True(t, ok)
		assert.Contains(t, []string{"a", "b"}, v.ID, "must never return a foreign id")
	}
}

func TestPickUndeliveredEmptyCatalog(t *testing.T) {
	_, ok := PickUndelivered(nil, nil)
	assert.False(t, ok)
}

func TestApplyToneFallsBackToBase(t *testing.T) {
	v := Variant{
		ID:   "x",
		Text: "базовый",
		Tones: map[models.Tone]string{
			models.ToneBrave: "бодрый",
		},
	}

	assert.Equal(t, "бодрый", ApplyTone(v, models.ToneBrave))
	assert.Equal(t, "базовый", ApplyTone(v, models.ToneNeutral))
	assert.Equal(t, "базовый", ApplyTone(v, models.ToneSoft))
	assert.Equal(t, "базовый", ApplyTone(v, models.Tone("мусор")))
}

func TestCatalogIDsUnique(t *testing.T) {
	for _, slot := range []models.Slot{models.SlotMorning, models.SlotEvening, models.SlotBonus} {
		seen := map[string]bool{}
		for _, v := range ForSlot(slot) {
			require.NotEmpty(t, v.ID)
			require.NotEmpty(t, v.Text)
			assert.False(t, seen[v.ID], "duplicate id %s in %s", v.ID, slot)
			seen[v.ID] = true
		}
		require.NotEmpty(t, seen)
	}
}

func TestMicroActionKnownLabelByTone(t *testing.T) {
	assert.Contains(t, MicroAction("тревога", models.ToneSoft), "Я рядом.")
	assert.Contains(t, MicroAction("тревога", models.ToneBrave), "Я с тобой.")
	assert.Contains(t, MicroAction("тревога", models.ToneNeutral), "Я здесь.")
}

func TestMicroActionAliases(t *testing.T) {
	// «устала» сводится к «усталость»: тексты совпадают
	assert.Equal(t, MicroAction("усталость", models.ToneSoft), MicroAction("устала", models.ToneSoft))
	assert.Equal(t, MicroAction("тревога", models.ToneBrave), MicroAction("тревожно", models.ToneBrave))
	assert.Equal(t, MicroAction("пусто", models.ToneNeutral), MicroAction("одиноко", models.ToneNeutral))
}

func TestMicroActionUnknownLabelEchoed(t *testing.T) {
	got := MicroAction("Растерянность", models.ToneSoft)
	assert.Contains(t, got, "растерянность", "literal label must be echoed")
	assert.Contains(t, got, "60 секунд")
}

func TestMicroActionTotal(t *testing.T) {
	for _, label := range []string{"", "   ", "abc", "???", "очень длинное состояние"} {
		for _, tone := range []models.Tone{models.ToneSoft, models.ToneBrave, models.ToneNeutral, ""} {
			got := MicroAction(label, tone)
			require.True(t, strings.TrimSpace(got) != "", "label=%q tone=%q", label, tone)
		}
	}
}
