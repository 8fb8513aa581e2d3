package payments

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nataliaSk777/tochka-opory/internal/metrics"
	"github.com/nataliaSk777/tochka-opory/internal/storage"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "  user@example.com  ", "имя@почта.рф"}
	for _, s := range valid {
		assert.True(t, ValidEmail(s), s)
	}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@c.d", "a@.d "}
	for _, s := range invalid {
		assert.False(t, ValidEmail(s), s)
	}
}

type fakeSender struct {
	msgs []string
	fail bool
}

func (f *fakeSender) Send(_ int64, text string, _ *telegram.Markup) error {
	if f.fail {
		return assert.AnError
	}
	f.msgs = append(f.msgs, text)
	return nil
}

func newTestService(t *testing.T, apiURL string) (*Service, *storage.DB, *fakeSender) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(ClientConfig{
		BaseURL:   apiURL,
		ShopID:    "shop",
		SecretKey: "secret",
	}, logger)
	sender := &fakeSender{}
	svc := NewService(client, db, sender, metrics.Registry("test"), logger, "299", "https://t.me/bot")
	return svc, db, sender
}

func paymentJSON(id, status string, userID string, createdAt time.Time) []byte {
	p := map[string]any{
		"id":         id,
		"status":     status,
		"paid":       status == "succeeded",
		"amount":     map[string]string{"value": "299.00", "currency": "RUB"},
		"created_at": createdAt.Format(time.RFC3339),
		"metadata":   map[string]string{},
	}
	if userID != "" {
		p["metadata"] = map[string]string{"user_id": userID}
	}
	data, _ := json.Marshal(p)
	return data
}

func TestReconcileSucceededActivatesSubscription(t *testing.T) {
	created := time.Now().Add(-time.Hour).Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/payments/pay-1", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "shop", user)
		w.Write(paymentJSON("pay-1", "succeeded", "42", created))
	}))
	defer srv.Close()

	svc, db, sender := newTestService(t, srv.URL)
	require.NoError(t, db.UpsertUser(42, "Ната"))

	require.NoError(t, svc.Reconcile(context.Background(), "pay-1"))

	u, err := db.GetUser(42)
	require.NoError(t, err)
	assert.True(t, u.Subscribed)

	active, err := db.IsSubscriptionActive(42, 30)
	require.NoError(t, err)
	assert.True(t, active)

	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.msgs[0], "Оплата получена")
}

func TestReconcileIsIdempotent(t *testing.T) {
	created := time.Now().Add(-time.Hour).Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(paymentJSON("pay-2", "succeeded", "42", created))
	}))
	defer srv.Close()

	svc, db, sender := newTestService(t, srv.URL)
	require.NoError(t, db.UpsertUser(42, "Ната"))

	require.NoError(t, svc.Reconcile(context.Background(), "pay-2"))
	require.NoError(t, svc.Reconcile(context.Background(), "pay-2"))

	p, err := db.GetPayment("pay-2")
	require.NoError(t, err)
	assert.Equal(t, created.UnixMilli(), p.CreatedAt)
	// дубль уведомления шлёт второе подтверждение, но строка платежа одна
	assert.Len(t, sender.msgs, 2)
}

func TestReconcilePendingDoesNotSubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(paymentJSON("pay-3", "pending", "42", time.Now()))
	}))
	defer srv.Close()

	svc, db, sender := newTestService(t, srv.URL)
	require.NoError(t, db.UpsertUser(42, "Ната"))

	require.NoError(t, svc.Reconcile(context.Background(), "pay-3"))

	u, err := db.GetUser(42)
	require.NoError(t, err)
	assert.False(t, u.Subscribed)
	assert.Empty(t, sender.msgs)

	p, err := db.GetPayment("pay-3")
	require.NoError(t, err)
	assert.Equal(t, "pending", p.Status)
}

func TestReconcileIgnoresForeignPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(paymentJSON("pay-4", "succeeded", "", time.Now()))
	}))
	defer srv.Close()

	svc, db, _ := newTestService(t, srv.URL)

	require.NoError(t, svc.Reconcile(context.Background(), "pay-4"))
	p, err := db.GetPayment("pay-4")
	require.NoError(t, err)
	assert.Nil(t, p, "payment without user_id metadata is not recorded")
}

func TestReconcileAPIErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, _, _ := newTestService(t, srv.URL)
	assert.Error(t, svc.Reconcile(context.Background(), "pay-5"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "299.00", formatPrice("299"))
	assert.Equal(t, "299.50", formatPrice("299.5"))
	assert.Equal(t, "abc", formatPrice("abc"))
}
