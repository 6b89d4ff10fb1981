package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

// ErrSubmissionInFlight means a submission for the same session has not yet
// resolved. The second attempt is refused client-side, before any outbound
// request, to bound duplicate risk from double-clicks.
var ErrSubmissionInFlight = errors.New("submit: submission already in flight for this session")

// Doer is the transport seam; tests swap it for a scripted fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts order and booking submissions with bearer injection, a
// retry/backoff policy, rate-limit surfacing and error classification. It
// keeps no persistent state beyond the per-session in-flight guard.
type Client struct {
	baseURL string
	http    Doer
	policy  Policy
	log     *zap.Logger
	breaker *gobreaker.CircuitBreaker[*http.Response]

	mu       sync.Mutex
	inflight map[string]struct{}
}

type Option func(*Client)

func WithHTTPClient(d Doer) Option { return func(c *Client) { c.http = d } }

func WithPolicy(p Policy) Option { return func(c *Client) { c.policy = p } }

func WithLogger(log *zap.Logger) Option { return func(c *Client) { c.log = log } }

func WithoutCircuitBreaker() Option { return func(c *Client) { c.breaker = nil } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		policy:   DefaultPolicy(),
		log:      zap.NewNop(),
		inflight: make(map[string]struct{}),
	}
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "submission",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 10
		},
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitOrder posts a composed order and returns the server receipt.
func (c *Client) SubmitOrder(ctx context.Context, sessionID string, order domain.OrderSubmission) (*domain.OrderReceipt, error) {
	body, err := c.do(ctx, sessionID, http.MethodPost, "/api/v1/orders", order)
	if err != nil {
		return nil, err
	}

	var receipt domain.OrderReceipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	return &receipt, nil
}

// SubmitBooking posts a composed booking and returns the confirmation.
func (c *Client) SubmitBooking(ctx context.Context, sessionID string, booking domain.BookingSubmission) (*domain.BookingConfirmation, error) {
	body, err := c.do(ctx, sessionID, http.MethodPost, "/api/v1/bookings", booking)
	if err != nil {
		return nil, err
	}

	var conf domain.BookingConfirmation
	if err := json.Unmarshal(body, &conf); err != nil {
		return nil, fmt.Errorf("decode booking confirmation: %w", err)
	}
	return &conf, nil
}

// UpdateOrderStatus patches the payment status of a placed order.
func (c *Client) UpdateOrderStatus(ctx context.Context, sessionID, orderRef string, status domain.PaymentStatus) error {
	path := fmt.Sprintf("/api/v1/orders/%s/status", orderRef)
	payload := map[string]domain.PaymentStatus{"payment_status": status}
	_, err := c.do(ctx, sessionID, http.MethodPatch, path, payload)
	return err
}

// do runs one user-initiated submission: serialize per session, then attempt
// the request under the retry policy. The request body and idempotency token
// are fixed once; only the bearer credential is re-read per attempt.
func (c *Client) do(ctx context.Context, sessionID, method, path string, payload any) ([]byte, error) {
	if sessionID != "" {
		if !c.acquire(sessionID) {
			return nil, ErrSubmissionInFlight
		}
		defer c.release(sessionID)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	// One token per submission, stable across its retries, so the server can
	// collapse a retry of an already-committed write.
	token := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt <= c.policy.MaxRetries; attempt++ {
		respBody, cerr := c.attempt(ctx, method, path, body, token)
		if cerr == nil {
			return respBody, nil
		}
		lastErr = cerr

		var classified *Error
		if !errors.As(cerr, &classified) || !classified.Retryable() {
			return nil, cerr
		}
		if attempt == c.policy.MaxRetries {
			break
		}

		wait := c.policy.Delay(attempt)
		if classified.Kind == KindRateLimit && classified.RetryAfter > 0 {
			wait = classified.RetryAfter
		}
		c.log.Info("submission retry scheduled",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.String("kind", string(classified.Kind)))

		if err := c.policy.wait(ctx, wait); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// attempt sends the request once and classifies the outcome.
func (c *Client) attempt(ctx context.Context, method, path string, body []byte, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", token)
	if bearer, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransient, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}
	return nil, classifyStatus(resp.StatusCode, respBody, resp.Header)
}

// errServerStatus marks a 5xx response as a breaker failure without losing
// the response: gobreaker hands the result back alongside the error, so the
// caller can still classify the status line.
var errServerStatus = errors.New("submit: upstream server error")

func (c *Client) send(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.http.Do(req)
	}
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, &Error{Kind: KindTransient, Message: "submission endpoint unavailable"}
	case errors.Is(err, errServerStatus):
		return resp, nil
	}
	return resp, err
}

func (c *Client) acquire(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[sessionID]; busy {
		return false
	}
	c.inflight[sessionID] = struct{}{}
	return true
}

func (c *Client) release(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, sessionID)
}
