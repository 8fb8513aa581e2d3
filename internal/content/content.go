package content

import (
	"math/rand"

	"github.com/nataliaSk777/tochka-opory/internal/models"
)

// Variant is one catalog entry for a slot. Text is the base (soft) wording;
// Tones holds optional brave/neutral rewrites.
type Variant struct {
	ID    string
	Text  string
	Tones map[models.Tone]string
}

// ApplyTone returns the tone-specific wording or falls back to the base text.
func ApplyTone(v Variant, tone models.Tone) string {
	if t, ok := v.Tones[models.NormalizeTone(string(tone))]; ok && t != "" {
		return t
	}
	return v.Text
}

// PickUndelivered выбирает случайный вариант, которого нет в excluded.
// Если все варианты уже были — берём любой из полного списка: рассылка
// важнее свежести. ok=false только для пустого каталога.
func PickUndelivered(list []Variant, excluded map[string]struct{}) (Variant, bool) {
	if len(list) == 0 {
		return Variant{}, false
	}

	fresh := make([]Variant, 0, len(list))
	for _, v := range list {
		if _, seen := excluded[v.ID]; !seen {
			fresh = append(fresh, v)
		}
	}
	if len(fresh) == 0 {
		fresh = list
	}
	return fresh[rand.Intn(len(fresh))], true
}

// ForSlot returns the active catalog for a slot.
func ForSlot(slot models.Slot) []Variant {
	switch slot {
	case models.SlotMorning:
		return Morning
	case models.SlotEvening:
		return Evening
	case models.SlotBonus:
		return Bonus
	}
	return nil
}
