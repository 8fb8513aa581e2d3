package storage

import (
	"database/sql"
	"embed"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nataliaSk777/tochka-opory/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct{ *sql.DB }

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

func nowMs() int64 { return time.Now().UnixMilli() }

// ---------- users -----------------------------------------------------------

// UpsertUser создаёт пользователя при первом контакте; при повторном —
// обновляет только имя, настройки не трогает.
func (d *DB) UpsertUser(userID int64, firstName string) error {
	ts := nowMs()
	_, err := d.Exec(`
        INSERT INTO users (user_id, first_name, created_at, updated_at)
        VALUES (?,?,?,?)
        ON CONFLICT(user_id) DO UPDATE SET first_name=excluded.first_name,
            updated_at=excluded.updated_at
    `, userID, firstName, ts, ts)
	return err
}

func (d *DB) GetUser(userID int64) (*models.User, error) {
	var u models.User
	var subscribed int64
	var tone, freeMode string

	err := d.QueryRow(`
        SELECT user_id, first_name, tone, trial_start, subscribed, free_mode,
               heavy_evenings, created_at, updated_at
        FROM users WHERE user_id=?`, userID,
	).Scan(&u.ID, &u.FirstName, &tone, &u.TrialStart, &subscribed, &freeMode,
		&u.HeavyEvenings, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Tone = models.NormalizeTone(tone)
	u.Subscribed = subscribed != 0
	u.FreeMode = models.Slot(freeMode)
	return &u, nil
}

func (d *DB) ListUsers() ([]models.User, error) {
	rows, err := d.Query(`
        SELECT user_id, first_name, tone, trial_start, subscribed, free_mode,
               heavy_evenings, created_at, updated_at
        FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.User
	for rows.Next() {
		var u models.User
		var subscribed int64
		var tone, freeMode string
		if err := rows.Scan(&u.ID, &u.FirstName, &tone, &u.TrialStart, &subscribed,
			&freeMode, &u.HeavyEvenings, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Tone = models.NormalizeTone(tone)
		u.Subscribed = subscribed != 0
		u.FreeMode = models.Slot(freeMode)
		res = append(res, u)
	}
	return res, rows.Err()
}

func (d *DB) SetTone(userID int64, tone models.Tone) error {
	_, err := d.Exec(`UPDATE users SET tone=?, updated_at=? WHERE user_id=?`,
		string(models.NormalizeTone(string(tone))), nowMs(), userID)
	return err
}

func (d *DB) SetSubscribed(userID int64, subscribed bool) error {
	v := 0
	if subscribed {
		v = 1
	}
	_, err := d.Exec(`UPDATE users SET subscribed=?, updated_at=? WHERE user_id=?`,
		v, nowMs(), userID)
	return err
}

func (d *DB) SetFreeMode(userID int64, mode models.Slot) error {
	_, err := d.Exec(`UPDATE users SET free_mode=?, updated_at=? WHERE user_id=?`,
		string(mode), nowMs(), userID)
	return err
}

func (d *DB) IncHeavyEvenings(userID int64) error {
	_, err := d.Exec(`UPDATE users SET heavy_evenings=heavy_evenings+1, updated_at=? WHERE user_id=?`,
		nowMs(), userID)
	return err
}

func (d *DB) StartTrial(userID int64) error {
	ts := nowMs()
	_, err := d.Exec(`UPDATE users SET trial_start=?, updated_at=? WHERE user_id=?`,
		ts, ts, userID)
	return err
}

// ---------- delivery ledger -------------------------------------------------

func (d *DB) AppendDelivery(userID int64, slot models.Slot, msgID string) error {
	_, err := d.Exec(`
        INSERT INTO deliveries (user_id, slot, msg_id, delivered_at)
        VALUES (?,?,?,?)`, userID, string(slot), msgID, nowMs())
	return err
}

// GetDeliveredIDs возвращает id сообщений, отправленных пользователю в слот
// за последние windowDays дней.
func (d *DB) GetDeliveredIDs(userID int64, slot models.Slot, windowDays int) (map[string]struct{}, error) {
	since := nowMs() - int64(windowDays)*24*60*60*1000
	rows, err := d.Query(`
        SELECT msg_id FROM deliveries
        WHERE user_id=? AND slot=? AND delivered_at>=?`,
		userID, string(slot), since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		res[id] = struct{}{}
	}
	return res, rows.Err()
}

// ---------- payments --------------------------------------------------------

// UpsertPayment записывает платёж по уникальному yk_payment_id.
// created_at — время платежа по данным YooKassa; при повторном уведомлении
// не перетирается, иначе сломается расчёт срока подписки.
func (d *DB) UpsertPayment(p *models.Payment) error {
	ts := nowMs()
	created := p.CreatedAt
	if created <= 0 {
		created = ts
	}

	var existing int64
	err := d.QueryRow(`SELECT id FROM payments WHERE yk_payment_id=?`, p.ExternalID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = d.Exec(`
            INSERT INTO payments (user_id, yk_payment_id, status, amount_value, amount_currency, created_at, updated_at)
            VALUES (?,?,?,?,?,?,?)`,
			p.UserID, p.ExternalID, p.Status, p.Amount, p.Currency, created, ts)
		return err
	case err != nil:
		return err
	}

	_, err = d.Exec(`
        UPDATE payments
        SET user_id=?, status=?, amount_value=?, amount_currency=?, updated_at=?
        WHERE yk_payment_id=?`,
		p.UserID, p.Status, p.Amount, p.Currency, ts, p.ExternalID)
	return err
}

func (d *DB) GetPayment(externalID string) (*models.Payment, error) {
	var p models.Payment
	err := d.QueryRow(`
        SELECT id, user_id, yk_payment_id, status, amount_value, amount_currency, created_at, updated_at
        FROM payments WHERE yk_payment_id=?`, externalID,
	).Scan(&p.ID, &p.UserID, &p.ExternalID, &p.Status, &p.Amount, &p.Currency, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DB) GetLastSucceededPayment(userID int64) (*models.Payment, error) {
	var p models.Payment
	err := d.QueryRow(`
        SELECT id, user_id, yk_payment_id, status, amount_value, amount_currency, created_at, updated_at
        FROM payments
        WHERE user_id=? AND status=?
        ORDER BY created_at DESC LIMIT 1`, userID, models.StatusSucceeded,
	).Scan(&p.ID, &p.UserID, &p.ExternalID, &p.Status, &p.Amount, &p.Currency, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IsSubscriptionActive: подписка активна, если есть succeeded-платёж
// моложе periodDays дней (по времени платежа). Ровно в момент
// created_at+period подписка уже не активна.
func (d *DB) IsSubscriptionActive(userID int64, periodDays int) (bool, error) {
	since := nowMs() - int64(periodDays)*24*60*60*1000
	var ok int
	err := d.QueryRow(`
        SELECT 1 FROM payments
        WHERE user_id=? AND status=? AND created_at>?
        ORDER BY created_at DESC LIMIT 1`,
		userID, models.StatusSucceeded, since).Scan(&ok)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok == 1, nil
}
