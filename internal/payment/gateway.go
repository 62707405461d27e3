// Package payment wraps the external checkout gateway.  The platform
// only needs two operations from it: creating an order for a pending
// booking and verifying the signature the gateway attaches to a
// completed payment.  Everything else (checkout UI, retries, refunds)
// is the gateway's business.
package payment

import (
    "bytes"
    "context"
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "time"
)

// ErrGatewayDisabled is returned when no gateway credentials are
// configured; the storefront surfaces this as payments being
// unavailable rather than failing bookings outright.
var ErrGatewayDisabled = errors.New("payment gateway not configured")

// Order is the gateway's representation of a charge to collect.
type Order struct {
    ID          string `json:"id"`
    AmountCents uint32 `json:"amount"`
    Currency    string `json:"currency"`
    Receipt     string `json:"receipt"`
    Status      string `json:"status"`
}

// Gateway creates orders and verifies payment signatures.  It is an
// interface so booking handlers can be exercised without a live
// gateway.
type Gateway interface {
    CreateOrder(ctx context.Context, amountCents uint32, currency, receipt string) (*Order, error)
    VerifySignature(orderID, paymentID, signature string) bool
}

// Client is the HTTP implementation of Gateway.
type Client struct {
    baseURL string
    keyID   string
    secret  string
    http    *http.Client
}

// NewClient builds a gateway client.  An empty base URL or key yields
// a client whose CreateOrder always returns ErrGatewayDisabled.
func NewClient(baseURL, keyID, secret string) *Client {
    return &Client{
        baseURL: baseURL,
        keyID:   keyID,
        secret:  secret,
        http:    &http.Client{Timeout: 10 * time.Second},
    }
}

// Enabled reports whether gateway credentials are configured.
func (c *Client) Enabled() bool { return c.baseURL != "" && c.keyID != "" }

// CreateOrder posts a new order to the gateway and decodes the reply.
func (c *Client) CreateOrder(ctx context.Context, amountCents uint32, currency, receipt string) (*Order, error) {
    if !c.Enabled() {
        return nil, ErrGatewayDisabled
    }
    body, err := json.Marshal(map[string]any{
        "amount":   amountCents,
        "currency": currency,
        "receipt":  receipt,
    })
    if err != nil {
        return nil, err
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
    if err != nil {
        return nil, err
    }
    req.SetBasicAuth(c.keyID, c.secret)
    req.Header.Set("Content-Type", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        return nil, fmt.Errorf("gateway create order: %w", err)
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
        return nil, fmt.Errorf("gateway create order: unexpected status %d", resp.StatusCode)
    }
    var o Order
    if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
        return nil, fmt.Errorf("gateway create order: decode: %w", err)
    }
    return &o, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "<orderID>|<paymentID>" with the shared secret.  Comparison is
// constant-time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
    return VerifySignature(c.secret, orderID, paymentID, signature)
}

// VerifySignature is the bare signature check, exported for reuse and
// testing without a client.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
    mac := hmac.New(sha256.New, []byte(secret))
    fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
    expected := hex.EncodeToString(mac.Sum(nil))
    return hmac.Equal([]byte(expected), []byte(signature))
}
