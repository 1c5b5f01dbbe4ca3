package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
)

func boolPtr(b bool) *bool { return &b }

func TestDecodeOverrides(t *testing.T) {
	tests := map[string]struct {
		raw          string
		expOverrides map[string]bool
	}{
		"An empty blob should decode to no overrides": {
			raw:          "",
			expOverrides: map[string]bool{},
		},

		"A valid blob should round back to the map": {
			raw:          `{"shipping/shipment-sent":false,"quote/quote-sent":true}`,
			expOverrides: map[string]bool{"shipping/shipment-sent": false, "quote/quote-sent": true},
		},

		"A malformed blob should degrade to no overrides": {
			raw:          `{"shipping/ship`,
			expOverrides: map[string]bool{},
		},

		"A JSON null should degrade to no overrides": {
			raw:          `null`,
			expOverrides: map[string]bool{},
		},

		"A wrongly typed blob should degrade to no overrides": {
			raw:          `["a","b"]`,
			expOverrides: map[string]bool{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expOverrides, lifecycle.DecodeOverrides(test.raw))
		})
	}
}

func TestOverridesRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// Values survive the round trip exactly, including "overridden back to
	// the automatic value" (false stays a stored manual decision).
	overrides := map[string]bool{"a/x": true, "b/y": false}
	assert.Equal(overrides, lifecycle.DecodeOverrides(lifecycle.EncodeOverrides(overrides)))

	// Empty map encodes to the absent value, not an empty object literal.
	assert.Equal("", lifecycle.EncodeOverrides(map[string]bool{}))
	assert.Equal("", lifecycle.EncodeOverrides(nil))
}

func TestSetOverride(t *testing.T) {
	assert := assert.New(t)

	// Set then clear returns to the absent value.
	m := lifecycle.SetOverride(nil, "shipping/shipment-sent", boolPtr(false))
	assert.Equal(map[string]bool{"shipping/shipment-sent": false}, m)

	m = lifecycle.SetOverride(m, "shipping/shipment-sent", nil)
	assert.Empty(m)
	assert.Equal("", lifecycle.EncodeOverrides(m))

	// The input map is left alone.
	orig := map[string]bool{"a/x": true}
	_ = lifecycle.SetOverride(orig, "a/x", boolPtr(false))
	assert.Equal(map[string]bool{"a/x": true}, orig)

	// Clearing an absent key is a no-op.
	assert.Empty(lifecycle.SetOverride(nil, "a/x", nil))
}
