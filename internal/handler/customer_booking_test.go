package handler

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	total, ok := orderTotal(2500, 4)
	assert.True(t, ok)
	assert.Equal(t, uint32(10000), total)

	// A big section at a high price must be refused, not wrapped.
	_, ok = orderTotal(100_000, 50_000)
	assert.False(t, ok)

	// Right at the 32-bit boundary is still chargeable.
	total, ok = orderTotal(math.MaxUint32, 1)
	assert.True(t, ok)
	assert.Equal(t, uint32(math.MaxUint32), total)

	_, ok = orderTotal(math.MaxUint32, 2)
	assert.False(t, ok)

	total, ok = orderTotal(0, 10)
	assert.True(t, ok)
	assert.Zero(t, total)
}

func TestReferenceAndTicketCodeShape(t *testing.T) {
	ref := newBookingReference()
	assert.True(t, strings.HasPrefix(ref, "BKG-"))
	assert.Len(t, ref, 14)

	code := newTicketCode()
	assert.True(t, strings.HasPrefix(code, "TKT-"))
	assert.Len(t, code, 16)

	assert.NotEqual(t, newTicketCode(), newTicketCode())
}
