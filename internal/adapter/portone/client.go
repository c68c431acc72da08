package portone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/minseo-cho/gomall/internal/domain/model"
)

// ErrPaymentNotFound indicates the gateway has no record for the merchant uid.
var ErrPaymentNotFound = errors.New("payment not found at gateway")

// TooManyRequestsError represents a rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the payment gateway.
type Client interface {
	Fetch(ctx context.Context, uid string) (*model.GatewayPayment, error)
	Cancel(ctx context.Context, uid, reason string) error
}

// HTTPClient implements Client via the gateway's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// envelope is the gateway's common response wrapper. Code zero means success.
type envelope struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiredAt   int64  `json:"expired_at"`
}

type paymentResponse struct {
	MerchantUID string `json:"merchant_uid"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
	ReceiptURL  string `json:"receipt_url"`
}

// NewHTTPClient creates a gateway client with a default timeout.
func NewHTTPClient(baseURL, apiKey, apiSecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch queries the gateway for the current status and paid amount of the
// payment attempt identified by uid.
func (c *HTTPClient) Fetch(ctx context.Context, uid string) (*model.GatewayPayment, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/payments/find/", uid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data paymentResponse
		if err := c.decode(resp.Body, &data); err != nil {
			return nil, err
		}
		return &model.GatewayPayment{
			UID:        data.MerchantUID,
			Status:     model.PayStatus(data.Status),
			Amount:     data.Amount,
			ReceiptURL: data.ReceiptURL,
		}, nil
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	case http.StatusUnauthorized:
		c.invalidateToken()
		return nil, fmt.Errorf("gateway rejected access token")
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway lookup failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("gateway error: %s", resp.Status)
	}
}

// Cancel requests cancellation of the payment attempt. Callers re-run Fetch
// afterwards regardless of the result to reconcile with ground truth.
func (c *HTTPClient) Cancel(ctx context.Context, uid, reason string) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/payments/cancel")

	payload, err := json.Marshal(map[string]string{
		"merchant_uid": uid,
		"reason":       reason,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data paymentResponse
		return c.decode(resp.Body, &data)
	case http.StatusNotFound:
		return ErrPaymentNotFound
	case http.StatusUnauthorized:
		c.invalidateToken()
		return fmt.Errorf("gateway rejected access token")
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway cancel failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("gateway error: %s", resp.Status)
	}
}

// token returns a cached access token, fetching a fresh one when missing or
// close to expiry.
func (c *HTTPClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Add(30*time.Second).Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/users/getToken")

	payload, err := json.Marshal(map[string]string{
		"imp_key":    c.apiKey,
		"imp_secret": c.apiSecret,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway token request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("gateway token error: %s", resp.Status)
	}

	var data tokenResponse
	if err := c.decode(resp.Body, &data); err != nil {
		return "", err
	}

	c.accessToken = data.AccessToken
	c.tokenExpiry = time.Unix(data.ExpiredAt, 0)
	return c.accessToken, nil
}

func (c *HTTPClient) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

// decode unwraps the gateway envelope. A non-zero code with HTTP 200 is how
// the gateway reports unknown merchant uids.
func (c *HTTPClient) decode(body io.Reader, out any) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	if env.Code != 0 {
		return fmt.Errorf("%w: %s", ErrPaymentNotFound, env.Message)
	}
	if out == nil || len(env.Response) == 0 {
		return nil
	}
	return json.Unmarshal(env.Response, out)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
