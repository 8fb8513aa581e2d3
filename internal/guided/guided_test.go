package guided

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nataliaSk777/tochka-opory/internal/session"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

type fakeSender struct {
	msgs []string
	fail bool
}

func (f *fakeSender) Send(_ int64, text string, _ *telegram.Markup) error {
	if f.fail {
		return errors.New("send failed")
	}
	f.msgs = append(f.msgs, text)
	return nil
}

func (f *fakeSender) last() string {
	if len(f.msgs) == 0 {
		return ""
	}
	return f.msgs[len(f.msgs)-1]
}

func newTestMachine() (*Machine, *session.Store, *fakeSender) {
	sender := &fakeSender{}
	sessions := session.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(sessions, sender, logger), sessions, sender
}

const uid int64 = 7

func TestEnterAndStartConfirm(t *testing.T) {
	m, sessions, sender := newTestMachine()

	m.Enter(uid)
	g := sessions.Get(uid).Guided
	assert.True(t, g.Active)
	assert.Equal(t, session.GuidedNotStarted, g.Step)
	assert.Contains(t, sender.last(), "Готова начать?")

	require.True(t, m.HandleCallback(uid, CbStart))
	assert.Equal(t, session.GuidedGround, sessions.Get(uid).Guided.Step)
	assert.Contains(t, sender.last(), "Шаг 1 из 5")
}

func TestNextWalksLinearSteps(t *testing.T) {
	m, sessions, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)

	m.HandleCallback(uid, CbNext)
	assert.Equal(t, session.GuidedBreath, sessions.Get(uid).Guided.Step)
	assert.Contains(t, sender.last(), "Шаг 2 из 5")

	m.HandleCallback(uid, CbNext)
	assert.Equal(t, session.GuidedLabel, sessions.Get(uid).Guided.Step)
	assert.Contains(t, sender.last(), "Шаг 3 из 5")
}

func TestStepThreeIsATextGate(t *testing.T) {
	m, sessions, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)
	m.HandleCallback(uid, CbNext)
	m.HandleCallback(uid, CbNext) // шаг 3

	// Next на шаге 3 — no-op, кроме повторного вопроса
	for i := 0; i < 3; i++ {
		m.HandleCallback(uid, CbNext)
		assert.Equal(t, session.GuidedLabel, sessions.Get(uid).Guided.Step)
		assert.Contains(t, sender.last(), "Шаг 3 из 5")
	}

	// текст продвигает на шаг 4 и отражается в ответе
	require.True(t, m.HandleText(uid, "тревога"))
	g := sessions.Get(uid).Guided
	assert.Equal(t, session.GuidedReflect, g.Step)
	assert.Equal(t, "тревога", g.Label)
	assert.Contains(t, sender.last(), "тревога")
}

func TestEmptyTextKeepsGateClosed(t *testing.T) {
	m, sessions, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)
	m.HandleCallback(uid, CbNext)
	m.HandleCallback(uid, CbNext) // шаг 3

	// стикеры и фото приходят с пустым текстом: шаг не двигается
	for _, text := range []string{"", "   ", "\n\t"} {
		require.True(t, m.HandleText(uid, text))
		g := sessions.Get(uid).Guided
		assert.Equal(t, session.GuidedLabel, g.Step, "text %q", text)
		assert.Empty(t, g.Label)
		assert.Contains(t, sender.last(), "Шаг 3 из 5")
	}

	m.HandleText(uid, "тревога")
	assert.Equal(t, session.GuidedReflect, sessions.Get(uid).Guided.Step)
}

func TestStaleMoreButtonDoesNotAdvance(t *testing.T) {
	m, sessions, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)
	m.HandleCallback(uid, CbNext) // шаг 2

	// кнопка «Ещё круг» из прошлого круга
	m.HandleCallback(uid, CbMore)
	assert.Equal(t, session.GuidedBreath, sessions.Get(uid).Guided.Step)
	assert.Contains(t, sender.last(), "Шаг 2 из 5")
}

func TestLabelTruncatedToSixtyRunes(t *testing.T) {
	m, sessions, _ := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)
	m.HandleCallback(uid, CbNext)
	m.HandleCallback(uid, CbNext)

	long := strings.Repeat("я", 80)
	m.HandleText(uid, long)

	g := sessions.Get(uid).Guided
	assert.Equal(t, 60, len([]rune(g.Label)))
}

func TestPauseResumePreservesStepAndScratch(t *testing.T) {
	m, sessions, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)
	m.HandleCallback(uid, CbNext)
	m.HandleCallback(uid, CbNext)
	m.HandleText(uid, "пусто") // шаг 4, label в черновике

	m.HandleCallback(uid, CbPause)
	g := sessions.Get(uid).Guided
	assert.True(t, g.Paused)
	assert.Equal(t, session.GuidedReflect, g.Step)

	// на паузе любое событие возвращает паузный экран, шаг не двигается
	m.HandleCallback(uid, CbNext)
	assert.Equal(t, session.GuidedReflect, sessions.Get(uid).Guided.Step)
	assert.Contains(t, sender.last(), "Пауза")
	m.HandleText(uid, "что-то")
	assert.Equal(t, session.GuidedReflect, sessions.Get(uid).Guided.Step)

	m.HandleCallback(uid, CbResume)
	g = sessions.Get(uid).Guided
	assert.False(t, g.Paused)
	assert.Equal(t, session.GuidedReflect, g.Step)
	assert.Equal(t, "пусто", g.Label, "scratch survives pause")
	assert.Contains(t, sender.last(), "пусто")
}

func TestEaseSelectionClosesWithSpecificText(t *testing.T) {
	m, sessions, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)
	m.HandleCallback(uid, CbNext)
	m.HandleCallback(uid, CbNext)
	m.HandleText(uid, "тревога")
	m.HandleCallback(uid, CbNext) // шаг 5

	m.HandleCallback(uid, cbEasePfx+EaseBody)
	g := sessions.Get(uid).Guided
	assert.Equal(t, session.GuidedDone, g.Step)
	assert.Equal(t, EaseBody, g.Ease)
	assert.Contains(t, sender.last(), "Тело заметило первым")
}

func TestMoreRestartsWithClearedScratch(t *testing.T) {
	m, sessions, _ := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)
	m.HandleCallback(uid, CbNext)
	m.HandleCallback(uid, CbNext)
	m.HandleText(uid, "боль")
	m.HandleCallback(uid, CbNext)
	m.HandleCallback(uid, cbEasePfx+EaseNone) // шаг 6

	m.HandleCallback(uid, CbMore)
	g := sessions.Get(uid).Guided
	assert.Equal(t, session.GuidedGround, g.Step)
	assert.Empty(t, g.Label)
	assert.Empty(t, g.Ease)
}

func TestEndResetsSession(t *testing.T) {
	m, sessions, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)

	m.HandleCallback(uid, CbEnd)
	assert.False(t, sessions.Get(uid).Guided.Active)
	assert.Contains(t, sender.last(), "Момент закрыт")

	// после завершения текст сценарию не принадлежит
	assert.False(t, m.HandleText(uid, "привет"))
}

func TestNoEventIsSilentlyLost(t *testing.T) {
	m, _, sender := newTestMachine()
	m.Enter(uid)
	m.HandleCallback(uid, CbStart)

	before := len(sender.msgs)
	m.HandleCallback(uid, "GM_UNKNOWN")
	assert.Greater(t, len(sender.msgs), before, "unrecognized event must re-prompt")

	before = len(sender.msgs)
	m.HandleText(uid, "случайный текст")
	assert.Greater(t, len(sender.msgs), before)
}

func TestForeignCallbackDeclined(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.False(t, m.HandleCallback(uid, "SM_SOFTEN"))
	assert.False(t, m.HandleCallback(uid, "TONE_soft"))
}
