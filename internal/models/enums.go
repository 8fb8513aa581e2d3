package models

// Tone is a user-selected style variant applied to delivered text.
type Tone string

const (
	ToneSoft    Tone = "soft"
	ToneBrave   Tone = "brave"
	ToneNeutral Tone = "neutral"
)

// NormalizeTone maps arbitrary input to one of the three valid tones,
// falling back to soft.
func NormalizeTone(s string) Tone {
	switch Tone(s) {
	case ToneBrave, ToneNeutral, ToneSoft:
		return Tone(s)
	}
	return ToneSoft
}

// Slot is a delivery time-of-day category.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
	SlotBonus   Slot = "bonus"
)

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	return s == SlotMorning || s == SlotEvening || s == SlotBonus
}
