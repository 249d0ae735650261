package values

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		wantErr  bool
	}{
		{"valid THB", "THB", false},
		{"valid lowercase", "usd", false},
		{"padded code", " THB ", false},
		{"empty", "", true},
		{"too long", "BAHT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(decimal.NewFromInt(100), tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, m.Currency(), 3)
		})
	}
}

func TestMoney_AddFloat_ExactAccumulation(t *testing.T) {
	// Floats that would drift under repeated float64 addition.
	total := Zero(THB)
	for i := 0; i < 10; i++ {
		total = total.AddFloat(0.1)
	}
	assert.True(t, total.Amount().Equal(decimal.NewFromInt(1)))
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	thb := MustNewMoneyFromFloat(100, THB)
	usd := MustNewMoneyFromFloat(100, USD)

	_, err := thb.Add(usd)
	assert.Error(t, err)
}

func TestMoney_GreaterThanOrEqual(t *testing.T) {
	m := MustNewMoneyFromFloat(1_000_000, THB)

	assert.True(t, m.GreaterThanOrEqual(1_000_000))
	assert.True(t, m.GreaterThanOrEqual(999_999.99))
	assert.False(t, m.GreaterThanOrEqual(1_000_000.01))
}

func TestMoney_String(t *testing.T) {
	m := MustNewMoneyFromFloat(1234567.891, THB)
	assert.Equal(t, "1234567.89 THB", m.String())

	assert.Equal(t, "0.00 THB", Zero(THB).String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := MustNewMoneyFromFloat(42_000.50, THB)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, m.Amount().Equal(got.Amount()))
	assert.Equal(t, m.Currency(), got.Currency())
}

func TestMoney_UnmarshalInvalid(t *testing.T) {
	var m Money
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"not a number","currency":"THB"}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"10","currency":"TOOLONG"}`), &m))
}
