package kernel_test

import (
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		zero, err := kernel.NewMoney(decimal.Zero)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())

		price, err := kernel.NewMoney(decimal.RequireFromString("19.99"))
		require.NoError(t, err)
		assert.Equal(t, "19.99", price.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.RequireFromString("-0.01"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "-0.01 is negative")
	})

	t.Run("should round to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		assert.Equal(t, "10.01", m.String())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("line total is quantity times unit price", func(t *testing.T) {
		unit := kernel.MustMoney("20.00")

		assert.True(t, unit.Times(2).IsEqual(kernel.MustMoney("40.00")))
	})

	t.Run("addition is exact", func(t *testing.T) {
		total := kernel.ZeroMoney()
		for range 10 {
			total = total.Add(kernel.MustMoney("0.10"))
		}

		assert.Equal(t, "1.00", total.String())
	})
}

func TestMoney_MinorUnits(t *testing.T) {
	testCases := []struct {
		amount string
		cents  int64
	}{
		{"0.00", 0},
		{"0.01", 1},
		{"40.00", 4000},
		{"123.45", 12345},
	}

	for _, tc := range testCases {
		t.Run(tc.amount, func(t *testing.T) {
			m := kernel.MustMoney(tc.amount)

			assert.Equal(t, tc.cents, m.MinorUnits())

			back, err := kernel.MoneyFromMinorUnits(tc.cents)
			require.NoError(t, err)
			assert.True(t, back.IsEqual(m))
		})
	}
}
