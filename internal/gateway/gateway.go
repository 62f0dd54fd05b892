// Package gateway is the outbound adapter for the spreadsheet script
// endpoint: month reads over GET, transaction writes over POST. It owns
// the translation from wire shapes and HTTP failures into domain types
// and the app-level error taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"aperture/internal/core"
	"aperture/internal/log"
)

// monthNotFound is the backend's "no data for this month" marker. It is
// an empty result, not a failure.
const monthNotFound = "Month not found"

// Client talks to one or more script endpoints. Safe for concurrent use.
type Client struct {
	fetchHTTP *http.Client
	saveHTTP  *http.Client
	logger    *log.Logger
	group     singleflight.Group
}

// SaveResult is the outcome of a write. Confirmed=false means the
// endpoint answered with an uninspectable redirect and success is
// assumed, not observed.
type SaveResult struct {
	Success   bool
	Confirmed bool
	Message   string
}

func New(timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		// Reads follow the script's redirect to the content host.
		fetchHTTP: &http.Client{Timeout: timeout},
		// Writes stop at a cross-host redirect; the script has already
		// accepted the row by then and the final body is not for us.
		saveHTTP: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > 0 && req.URL.Host != via[0].URL.Host {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		logger: logger.WithComponent(log.ComponentGateway),
	}
}

type (
	wireRow struct {
		Date     string  `json:"date"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Item     string  `json:"item"`
		Note     string  `json:"note"`
		User     string  `json:"user"`
		Currency string  `json:"currency"`
	}

	wireMonth struct {
		Total        float64   `json:"total"`
		Transactions []wireRow `json:"transactions"`
	}

	wireError struct {
		Error           string   `json:"error"`
		AvailableMonths []string `json:"available_months"`
	}

	wireWrite struct {
		Date     string  `json:"date"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Note     string  `json:"note"`
		User     string  `json:"user"`
	}
)

// FetchMonth reads one month for one user. Concurrent calls for the
// same (endpoint, month, user) collapse into a single request.
func (c *Client) FetchMonth(ctx context.Context, endpoint, month, user string) (core.MonthData, error) {
	key := endpoint + "|" + month + "|" + user
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetchMonth(ctx, endpoint, month, user)
	})
	if err != nil {
		return core.EmptyMonth(), err
	}
	return v.(core.MonthData), nil
}

func (c *Client) fetchMonth(ctx context.Context, endpoint, month, user string) (core.MonthData, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return core.EmptyMonth(), connectionFailed(fmt.Sprintf("invalid endpoint: %v", err))
	}
	q := u.Query()
	q.Set("type", "json")
	q.Set("month", month)
	if user != "" {
		q.Set("user", user)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return core.EmptyMonth(), connectionFailed(err.Error())
	}

	start := time.Now()
	resp, err := c.fetchHTTP.Do(req)
	if err != nil {
		c.logger.Warn("Month fetch failed", log.FieldMonth, month, log.FieldError, err)
		return core.EmptyMonth(), connectionFailed(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Month fetch returned non-success status",
			log.FieldMonth, month, log.FieldStatusCode, resp.StatusCode)
		return core.EmptyMonth(), connectionFailed(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.EmptyMonth(), connectionFailed(err.Error())
	}

	// The backend answers either a month-keyed map or an error object.
	var werr wireError
	if err := json.Unmarshal(body, &werr); err == nil && werr.Error != "" {
		if werr.Error == monthNotFound {
			c.logger.Debug("Month has no data", log.FieldMonth, month)
			return core.EmptyMonth(), nil
		}
		return core.EmptyMonth(), remoteError(werr.Error)
	}

	var months map[string]wireMonth
	if err := json.Unmarshal(body, &months); err != nil {
		return core.EmptyMonth(), connectionFailed(fmt.Sprintf("malformed response: %v", err))
	}

	// The backend's contract is not fully trusted: a response missing
	// the requested month key is an empty month.
	wm, ok := months[month]
	if !ok {
		return core.EmptyMonth(), nil
	}

	data := core.MonthData{
		Total:        decimal.NewFromFloat(wm.Total),
		Transactions: make([]core.Transaction, 0, len(wm.Transactions)),
	}
	for _, row := range wm.Transactions {
		data.Transactions = append(data.Transactions, rowToTransaction(row))
	}

	c.logger.Info("Month fetched",
		log.FieldMonth, month,
		log.FieldUser, user,
		"transactions", len(data.Transactions),
		log.FieldDuration, time.Since(start).Milliseconds())
	return data, nil
}

// SaveTransaction writes one transaction. Transport failures are
// converted into a failed result, never surfaced as raw errors.
func (c *Client) SaveTransaction(ctx context.Context, endpoint string, tx core.Transaction) SaveResult {
	if !tx.Amount.IsPositive() {
		return SaveResult{Success: false, Confirmed: true, Message: core.ErrInvalidAmount.Error()}
	}

	amount, _ := tx.Amount.Float64()
	currency := tx.Currency
	if currency == "" {
		currency = core.DefaultCurrency
	}
	payload := wireWrite{
		Date:     string(tx.Date),
		Category: tx.Category,
		Amount:   amount,
		Currency: currency,
		Note:     tx.Note(),
		User:     tx.User,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SaveResult{Success: false, Confirmed: true, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return SaveResult{Success: false, Confirmed: true, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.saveHTTP.Do(req)
	if err != nil {
		c.logger.Warn("Transaction save failed",
			log.FieldDate, tx.Date, log.FieldCategory, tx.Category, log.FieldError, err)
		return SaveResult{Success: false, Confirmed: true, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		// Cross-host redirect the client elected not to follow: the
		// outcome cannot be inspected, assume success.
		c.logger.Info("Transaction sent, response unconfirmed",
			log.FieldDate, tx.Date, log.FieldCategory, tx.Category)
		return SaveResult{Success: true, Confirmed: false, Message: "request sent (response not inspectable)"}
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		text, _ := io.ReadAll(resp.Body)
		c.logger.Info("Transaction saved",
			log.FieldDate, tx.Date, log.FieldCategory, tx.Category, log.FieldAmount, payload.Amount)
		return SaveResult{Success: true, Confirmed: true, Message: strings.TrimSpace(string(text))}
	default:
		c.logger.Warn("Transaction save returned non-success status",
			log.FieldDate, tx.Date, log.FieldStatusCode, resp.StatusCode)
		return SaveResult{Success: false, Confirmed: true, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
}

func rowToTransaction(row wireRow) core.Transaction {
	item := row.Item
	if item == "" {
		item = row.Note
	}
	currency := row.Currency
	if currency == "" {
		currency = core.DefaultCurrency
	}
	return core.Transaction{
		Date:     core.Date(row.Date),
		Category: row.Category,
		Amount:   decimal.NewFromFloat(row.Amount),
		Item:     item,
		User:     row.User,
		Currency: currency,
	}
}
