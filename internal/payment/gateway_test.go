package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	sig := sign("s3cret", "order_1", "pay_1")

	assert.True(t, VerifySignature("s3cret", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("s3cret", "order_1", "pay_2", sig))
	assert.False(t, VerifySignature("s3cret", "order_2", "pay_1", sig))
	assert.False(t, VerifySignature("wrong", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("s3cret", "order_1", "pay_1", ""))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"order_42","amount":100000,"currency":"INR","receipt":"BKG-1","status":"created"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_test", "s3cret")
	o, err := c.CreateOrder(context.Background(), 100000, "INR", "BKG-1")
	require.NoError(t, err)
	assert.Equal(t, "order_42", o.ID)
	assert.EqualValues(t, 100000, o.AmountCents)
	assert.Equal(t, "INR", o.Currency)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_test", "s3cret")
	_, err := c.CreateOrder(context.Background(), 1, "INR", "BKG-1")
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	c := NewClient("", "", "")
	assert.False(t, c.Enabled())
	_, err := c.CreateOrder(context.Background(), 1, "INR", "BKG-1")
	assert.ErrorIs(t, err, ErrGatewayDisabled)
}
