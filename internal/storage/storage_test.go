package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nataliaSk777/tochka-opory/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertUserKeepsPreferences(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.UpsertUser(1, "Наташа"))
	require.NoError(t, db.SetTone(1, models.ToneBrave))
	require.NoError(t, db.SetFreeMode(1, models.SlotEvening))
	require.NoError(t, db.StartTrial(1))

	// повторный /start меняет только имя
	require.NoError(t, db.UpsertUser(1, "Ната"))

	u, err := db.GetUser(1)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ната", u.FirstName)
	assert.Equal(t, models.ToneBrave, u.Tone)
	assert.Equal(t, models.SlotEvening, u.FreeMode)
	assert.Positive(t, u.TrialStart)
}

func TestGetUserMissing(t *testing.T) {
	db := newTestDB(t)
	u, err := db.GetUser(404)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestDeliveredIDsWindow(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.UpsertUser(1, ""))

	require.NoError(t, db.AppendDelivery(1, models.SlotMorning, "m01"))
	require.NoError(t, db.AppendDelivery(1, models.SlotMorning, "m02"))
	require.NoError(t, db.AppendDelivery(1, models.SlotEvening, "e01"))

	// старая доставка за пределами окна
	old := time.Now().Add(-10 * 24 * time.Hour).UnixMilli()
	_, err := db.Exec(`INSERT INTO deliveries (user_id, slot, msg_id, delivered_at) VALUES (1,'morning','m99',?)`, old)
	require.NoError(t, err)

	ids, err := db.GetDeliveredIDs(1, models.SlotMorning, 7)
	require.NoError(t, err)
	assert.Contains(t, ids, "m01")
	assert.Contains(t, ids, "m02")
	assert.NotContains(t, ids, "e01", "slots are independent")
	assert.NotContains(t, ids, "m99", "outside the lookback window")
}

func TestUpsertPaymentPinsCreatedAt(t *testing.T) {
	db := newTestDB(t)

	first := time.Now().Add(-time.Hour).UnixMilli()
	require.NoError(t, db.UpsertPayment(&models.Payment{
		UserID: 1, ExternalID: "pay-1", Status: "pending",
		Amount: "490.00", Currency: "RUB", CreatedAt: first,
	}))

	// повторное уведомление: статус обновляется, created_at остаётся
	require.NoError(t, db.UpsertPayment(&models.Payment{
		UserID: 1, ExternalID: "pay-1", Status: models.StatusSucceeded,
		Amount: "490.00", Currency: "RUB", CreatedAt: time.Now().UnixMilli(),
	}))

	p, err := db.GetPayment("pay-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.StatusSucceeded, p.Status)
	assert.Equal(t, first, p.CreatedAt)
}

func TestIsSubscriptionActiveWindow(t *testing.T) {
	db := newTestDB(t)

	// свежий succeeded-платёж — активна
	require.NoError(t, db.UpsertPayment(&models.Payment{
		UserID: 1, ExternalID: "fresh", Status: models.StatusSucceeded,
		Amount: "490.00", Currency: "RUB",
		CreatedAt: time.Now().Add(-29 * 24 * time.Hour).UnixMilli(),
	}))
	active, err := db.IsSubscriptionActive(1, 30)
	require.NoError(t, err)
	assert.True(t, active)

	// только старый платёж — не активна
	require.NoError(t, db.UpsertPayment(&models.Payment{
		UserID: 2, ExternalID: "stale", Status: models.StatusSucceeded,
		Amount: "490.00", Currency: "RUB",
		CreatedAt: time.Now().Add(-31 * 24 * time.Hour).UnixMilli(),
	}))
	active, err = db.IsSubscriptionActive(2, 30)
	require.NoError(t, err)
	assert.False(t, active)

	// pending не считается
	require.NoError(t, db.UpsertPayment(&models.Payment{
		UserID: 3, ExternalID: "pending", Status: "pending",
		Amount: "490.00", Currency: "RUB",
		CreatedAt: time.Now().UnixMilli(),
	}))
	active, err = db.IsSubscriptionActive(3, 30)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestSecondPaymentExtendsFromItsOwnDate(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.UpsertPayment(&models.Payment{
		UserID: 1, ExternalID: "p1", Status: models.StatusSucceeded,
		Amount: "490.00", Currency: "RUB",
		CreatedAt: time.Now().Add(-40 * 24 * time.Hour).UnixMilli(),
	}))
	require.NoError(t, db.UpsertPayment(&models.Payment{
		UserID: 1, ExternalID: "p2", Status: models.StatusSucceeded,
		Amount: "490.00", Currency: "RUB",
		CreatedAt: time.Now().Add(-5 * 24 * time.Hour).UnixMilli(),
	}))

	active, err := db.IsSubscriptionActive(1, 30)
	require.NoError(t, err)
	assert.True(t, active)

	last, err := db.GetLastSucceededPayment(1)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "p2", last.ExternalID)
}
