package payments

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.yookassa.ru"

// Client talks to the YooKassa payments API with basic auth.
type Client struct {
	baseURL    string
	shopID     string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientConfig defines connection parameters for YooKassa.
type ClientConfig struct {
	BaseURL   string
	ShopID    string
	SecretKey string
	Timeout   time.Duration
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    base,
		shopID:     cfg.ShopID,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "yookassa"),
	}
}

// Amount is a YooKassa money value.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Payment is the API view of a payment.
type Payment struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Paid         bool              `json:"paid"`
	Amount       Amount            `json:"amount"`
	CreatedAt    time.Time         `json:"created_at"`
	Metadata     map[string]string `json:"metadata"`
	Confirmation struct {
		Type            string `json:"type"`
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

// IsPaid: единственный признак успеха — status succeeded.
func (p *Payment) IsPaid() bool {
	return p != nil && p.Status == "succeeded"
}

type createPaymentRequest struct {
	Amount       Amount            `json:"amount"`
	Confirmation map[string]string `json:"confirmation"`
	Capture      bool              `json:"capture"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata"`
	Receipt      *receipt          `json:"receipt,omitempty"`
}

type receipt struct {
	Customer receiptCustomer `json:"customer"`
	Items    []receiptItem   `json:"items"`
}

type receiptCustomer struct {
	Email string `json:"email"`
}

type receiptItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Amount      Amount `json:"amount"`
	VATCode     int    `json:"vat_code"`
}

// CreateSubscriptionPayment creates a redirect-confirmed payment for one
// month and returns the API payment object with the confirmation URL.
func (c *Client) CreateSubscriptionPayment(ctx context.Context, userID int64, priceRUB, returnURL, email string) (*Payment, error) {
	amount := Amount{Value: formatPrice(priceRUB), Currency: "RUB"}
	req := createPaymentRequest{
		Amount:       amount,
		Confirmation: map[string]string{"type": "redirect", "return_url": returnURL},
		Capture:      true,
		Description:  "Подписка «Точка опоры» на 1 месяц",
		Metadata:     map[string]string{"user_id": fmt.Sprintf("%d", userID)},
	}
	if email != "" {
		req.Receipt = &receipt{
			Customer: receiptCustomer{Email: email},
			Items: []receiptItem{{
				Description: "Подписка «Точка опоры» на 1 месяц",
				Quantity:    "1",
				Amount:      amount,
				VATCode:     1,
			}},
		}
	}

	var out Payment
	if err := c.do(ctx, http.MethodPost, "/v3/payments", idempotenceKey(userID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPayment fetches the authoritative payment state by id.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var out Payment
	path := "/v3/payments/" + url.PathEscape(paymentID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, idemKey string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.shopID, c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	if idemKey != "" {
		req.Header.Set("Idempotence-Key", idemKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("yookassa request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// в лог — класс статуса и описание провайдера, пользователю это не уходит
		var apiErr struct {
			Description string `json:"description"`
		}
		_ = json.Unmarshal(data, &apiErr)
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			c.logger.Error("yookassa auth rejected", "status", resp.StatusCode)
		case resp.StatusCode >= 500:
			c.logger.Error("yookassa server error", "status", resp.StatusCode)
		default:
			c.logger.Error("yookassa rejected request", "status", resp.StatusCode, "description", apiErr.Description)
		}
		return fmt.Errorf("yookassa api error %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func idempotenceKey(userID int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%d:%s", userID, time.Now().UnixNano(), uuid.NewString())))
	return hex.EncodeToString(sum[:])
}

func formatPrice(priceRUB string) string {
	// config гарантирует положительное число; API ждёт два знака
	var v float64
	_, err := fmt.Sscanf(priceRUB, "%f", &v)
	if err != nil {
		return priceRUB
	}
	return fmt.Sprintf("%.2f", v)
}
