package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCart(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		data := []byte(`[{"service_id":"svc-1","title":"Landing Page Kit","unit_price":49.99,"quantity":2,"developer_id":"dev-1"}]`)

		cart, err := decodeCart("user-1", data)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", cart.UserID)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, 49.99, cart.Items[0].UnitPrice)
	})

	t.Run("empty array yields empty cart", func(t *testing.T) {
		cart, err := decodeCart("user-1", []byte(`[]`))

		assert.NoError(t, err)
		assert.True(t, cart.IsEmpty())
		assert.NotNil(t, cart.Items)
	})

	t.Run("not JSON is corrupt", func(t *testing.T) {
		_, err := decodeCart("user-1", []byte(`{{{`))
		assert.Error(t, err)
	})

	t.Run("wrong shape is corrupt", func(t *testing.T) {
		_, err := decodeCart("user-1", []byte(`{"items":[]}`))
		assert.Error(t, err)
	})

	t.Run("zero quantity is corrupt", func(t *testing.T) {
		data := []byte(`[{"service_id":"svc-1","title":"x","unit_price":1,"quantity":0}]`)
		_, err := decodeCart("user-1", data)
		assert.Error(t, err)
	})

	t.Run("missing service id is corrupt", func(t *testing.T) {
		data := []byte(`[{"title":"x","unit_price":1,"quantity":1}]`)
		_, err := decodeCart("user-1", data)
		assert.Error(t, err)
	})

	t.Run("duplicate service lines are corrupt", func(t *testing.T) {
		data := []byte(`[{"service_id":"svc-1","quantity":1},{"service_id":"svc-1","quantity":3}]`)
		_, err := decodeCart("user-1", data)
		assert.Error(t, err)
	})
}
