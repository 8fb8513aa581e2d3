package payments

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/nataliaSk777/tochka-opory/internal/metrics"
	"github.com/nataliaSk777/tochka-opory/internal/models"
	"github.com/nataliaSk777/tochka-opory/internal/storage"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail — грубая проверка перед передачей адреса в чек.
func ValidEmail(s string) bool {
	return emailRx.MatchString(strings.TrimSpace(s))
}

// Service owns payment creation and webhook-driven reconciliation.
type Service struct {
	client  *Client
	db      *storage.DB
	sender  telegram.Sender
	metrics *metrics.Metrics
	logger  *slog.Logger

	priceRUB  string
	returnURL string
}

func NewService(client *Client, db *storage.DB, sender telegram.Sender, m *metrics.Metrics, logger *slog.Logger, priceRUB, returnURL string) *Service {
	return &Service{
		client:    client,
		db:        db,
		sender:    sender,
		metrics:   m,
		logger:    logger.With("component", "payments"),
		priceRUB:  priceRUB,
		returnURL: returnURL,
	}
}

// CreateSubscription creates a pending payment and returns the URL the user
// should open to confirm it.
func (s *Service) CreateSubscription(ctx context.Context, userID int64, email string) (string, error) {
	p, err := s.client.CreateSubscriptionPayment(ctx, userID, s.priceRUB, s.returnURL, email)
	if err != nil {
		s.metrics.Errors.WithLabelValues("payments").Inc()
		return "", fmt.Errorf("create payment: %w", err)
	}

	if err := s.db.UpsertPayment(&models.Payment{
		UserID:     userID,
		ExternalID: p.ID,
		Status:     p.Status,
		Amount:     p.Amount.Value,
		Currency:   p.Amount.Currency,
		CreatedAt:  p.CreatedAt.UnixMilli(),
	}); err != nil {
		return "", fmt.Errorf("record payment: %w", err)
	}

	return p.Confirmation.ConfirmationURL, nil
}

// Reconcile refetches the payment from the API (webhook body is never
// trusted), upserts it and on success switches the subscription on.
// Повторные уведомления с тем же id безопасны: upsert по уникальному
// yk_payment_id, created_at закреплён за первым значением.
func (s *Service) Reconcile(ctx context.Context, externalID string) error {
	p, err := s.client.GetPayment(ctx, externalID)
	if err != nil {
		s.metrics.Errors.WithLabelValues("payments").Inc()
		return fmt.Errorf("fetch payment %s: %w", externalID, err)
	}

	userID, err := strconv.ParseInt(p.Metadata["user_id"], 10, 64)
	if err != nil || userID <= 0 {
		// платёж не наш или без метаданных: фиксировать нечего
		s.logger.Warn("payment without valid user_id metadata", "payment_id", externalID)
		s.metrics.Reconciliations.WithLabelValues("no_user").Inc()
		return nil
	}

	if err := s.db.UpsertPayment(&models.Payment{
		UserID:     userID,
		ExternalID: p.ID,
		Status:     p.Status,
		Amount:     p.Amount.Value,
		Currency:   p.Amount.Currency,
		CreatedAt:  p.CreatedAt.UnixMilli(),
	}); err != nil {
		return fmt.Errorf("upsert payment %s: %w", externalID, err)
	}
	s.metrics.Reconciliations.WithLabelValues(p.Status).Inc()

	if !p.IsPaid() {
		return nil
	}

	if err := s.db.SetSubscribed(userID, true); err != nil {
		return fmt.Errorf("set subscribed %d: %w", userID, err)
	}

	if err := s.sender.Send(userID, "✅ Оплата получена.\nПодписка активна: утро + вечер.\nЯ рядом.", nil); err != nil {
		// подтверждение не дошло, но платёж учтён — этого не откатываем
		s.logger.Warn("payment confirmation message failed", "user_id", userID, "error", err)
	}
	return nil
}
