package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/nataliaSk777/tochka-opory/internal/content"
	"github.com/nataliaSk777/tochka-opory/internal/metrics"
	"github.com/nataliaSk777/tochka-opory/internal/models"
	"github.com/nataliaSk777/tochka-opory/internal/storage"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

const (
	// SubscriptionDays — срок, который даёт один succeeded-платёж.
	SubscriptionDays = 30
	// TrialWindow — пробный период от trial_start.
	TrialWindow = 3 * 24 * time.Hour
	// LookbackDays — окно дедупликации вариантов.
	LookbackDays = 120
	// BonusCooldownDays — не чаще одного бонуса в сутки.
	BonusCooldownDays = 1
)

// Eligible — чистое правило допуска к утру/вечеру: активная подписка, или
// пробный период, или совпавший бесплатный слот. Бонус-слот решается
// отдельно (подписка + вероятность + кулдаун).
func Eligible(u *models.User, slot models.Slot, subActive bool, now time.Time) bool {
	if slot == models.SlotBonus {
		return subActive
	}
	if subActive {
		return true
	}
	if u.InTrial(now, TrialWindow) {
		return true
	}
	return u.FreeMode == slot
}

// Stats summarises one batch slot run.
type Stats struct {
	Users    int
	Eligible int
	Sent     int
	Failed   int
}

// Engine decides who receives a slot message and which variant they get.
type Engine struct {
	db      *storage.DB
	sender  telegram.Sender
	metrics *metrics.Metrics
	logger  *slog.Logger

	bonusProbability float64

	now    func() time.Time
	chance func() float64 // [0,1), подменяется в тестах
}

func NewEngine(db *storage.DB, sender telegram.Sender, m *metrics.Metrics, logger *slog.Logger, bonusProbability float64) *Engine {
	return &Engine{
		db:               db,
		sender:           sender,
		metrics:          m,
		logger:           logger.With("component", "delivery"),
		bonusProbability: bonusProbability,
		now:              time.Now,
		chance:           rand.Float64,
	}
}

// IsEligible resolves the derived subscription state and applies Eligible.
// Вероятность и кулдаун бонуса сюда не входят — это фильтры поверх допуска.
func (e *Engine) IsEligible(u *models.User, slot models.Slot) (bool, error) {
	subActive, err := e.db.IsSubscriptionActive(u.ID, SubscriptionDays)
	if err != nil {
		return false, fmt.Errorf("subscription check: %w", err)
	}
	return Eligible(u, slot, subActive, e.now()), nil
}

// SelectAndRecord picks an unseen variant, sends it and — только после
// успешной отправки — пишет строку в журнал доставок.
func (e *Engine) SelectAndRecord(u *models.User, slot models.Slot) error {
	delivered, err := e.db.GetDeliveredIDs(u.ID, slot, LookbackDays)
	if err != nil {
		return fmt.Errorf("delivered ids: %w", err)
	}

	picked, ok := content.PickUndelivered(content.ForSlot(slot), delivered)
	if !ok {
		return fmt.Errorf("empty catalog for slot %s", slot)
	}

	text := content.ApplyTone(picked, u.Tone)
	if err := e.sender.Send(u.ID, text, nil); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	if err := e.db.AppendDelivery(u.ID, slot, picked.ID); err != nil {
		// сообщение ушло, а журнал не записался: хуже повтор, чем пропуск
		e.logger.Error("ledger append failed after send", "user_id", u.ID, "slot", slot, "error", err)
		return fmt.Errorf("append delivery: %w", err)
	}
	return nil
}

// DeliverTo serves an interactive «дай сегодняшнее сообщение» request for a
// single user. Ошибка отдаётся вызывающему, чтобы её увидел пользователь.
func (e *Engine) DeliverTo(u *models.User, slot models.Slot) (bool, error) {
	ok, err := e.IsEligible(u, slot)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := e.SelectAndRecord(u, slot); err != nil {
		return false, err
	}
	return true, nil
}

// RunSlot iterates the full user set for a scheduler tick. Отказ одного
// получателя логируется и не останавливает остальных.
func (e *Engine) RunSlot(ctx context.Context, slot models.Slot) (Stats, error) {
	var st Stats

	users, err := e.db.ListUsers()
	if err != nil {
		return st, fmt.Errorf("list users: %w", err)
	}
	st.Users = len(users)

	for i := range users {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		u := &users[i]

		ok, err := e.IsEligible(u, slot)
		if err != nil {
			e.metrics.Errors.WithLabelValues("delivery").Inc()
			e.logger.Error("eligibility check failed", "user_id", u.ID, "slot", slot, "error", err)
			continue
		}
		if !ok {
			e.metrics.DeliveriesSkipped.WithLabelValues(string(slot), "not_eligible").Inc()
			continue
		}

		if slot == models.SlotBonus {
			skip, reason, err := e.bonusFiltered(u)
			if err != nil {
				e.metrics.Errors.WithLabelValues("delivery").Inc()
				e.logger.Error("bonus filter failed", "user_id", u.ID, "error", err)
				continue
			}
			if skip {
				e.metrics.DeliveriesSkipped.WithLabelValues(string(slot), reason).Inc()
				continue
			}
		}

		st.Eligible++
		if err := e.SelectAndRecord(u, slot); err != nil {
			st.Failed++
			e.metrics.DeliveriesFailed.WithLabelValues(string(slot)).Inc()
			e.logger.Warn("slot send failed", "user_id", u.ID, "slot", slot, "error", err)
			continue
		}
		st.Sent++
		e.metrics.DeliveriesSent.WithLabelValues(string(slot)).Inc()
	}

	e.logger.Info("slot run finished", "slot", slot,
		"users", st.Users, "eligible", st.Eligible, "sent", st.Sent, "failed", st.Failed)
	return st, nil
}

// bonusFiltered applies the per-invocation probability and the 1-day
// cooldown on top of bonus eligibility.
func (e *Engine) bonusFiltered(u *models.User) (bool, string, error) {
	if e.chance() > e.bonusProbability {
		return true, "probability", nil
	}
	lastDay, err := e.db.GetDeliveredIDs(u.ID, models.SlotBonus, BonusCooldownDays)
	if err != nil {
		return false, "", err
	}
	if len(lastDay) > 0 {
		return true, "cooldown", nil
	}
	return false, "", nil
}
