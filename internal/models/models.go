package models

import "time"

// User represents bot settings and subscription state for a telegram user.
type User struct {
	ID            int64  `db:"user_id"        json:"user_id"`
	FirstName     string `db:"first_name"     json:"first_name"`
	Tone          Tone   `db:"tone"           json:"tone"`
	TrialStart    int64  `db:"trial_start"    json:"trial_start"` // unix ms, 0 = не начинался
	Subscribed    bool   `db:"subscribed"     json:"subscribed"`
	FreeMode      Slot   `db:"free_mode"      json:"free_mode"` // только morning|evening
	HeavyEvenings int64  `db:"heavy_evenings" json:"heavy_evenings"`
	CreatedAt     int64  `db:"created_at"     json:"created_at"`
	UpdatedAt     int64  `db:"updated_at"     json:"updated_at"`
}

// InTrial reports whether now falls inside the trial window.
func (u *User) InTrial(now time.Time, window time.Duration) bool {
	if u.TrialStart <= 0 {
		return false
	}
	return now.Sub(time.UnixMilli(u.TrialStart)) <= window
}

// Delivery is one row of the append-only delivery ledger.
type Delivery struct {
	ID          int64  `db:"id"`
	UserID      int64  `db:"user_id"`
	Slot        Slot   `db:"slot"`
	MsgID       string `db:"msg_id"` // id варианта из каталога на момент отправки
	DeliveredAt int64  `db:"delivered_at"`
}

// Payment mirrors a YooKassa payment as we last saw it.
// CreatedAt is the payment time reported by YooKassa; UpdatedAt is the
// moment we processed the notification locally.
type Payment struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	ExternalID string `db:"yk_payment_id"` // globally unique
	Status     string `db:"status"`
	Amount     string `db:"amount_value"`
	Currency   string `db:"amount_currency"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}

// StatusSucceeded is the only payment status that grants subscription time.
const StatusSucceeded = "succeeded"
