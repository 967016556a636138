package mail_test

import (
	"math"
	"testing"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create ordinary mail with default priority", func(t *testing.T) {
		item, err := mail.NewItem("M1", 5, 3, 500, false)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "M1", item.ID())
		assert.Equal(t, kernel.Floor(5), item.Destination())
		assert.Equal(t, kernel.Tick(3), item.Arrival())
		assert.Equal(t, 500, item.Weight())
		assert.False(t, item.Fragile())
		assert.Equal(t, mail.DefaultPriority, item.Priority())
		assert.False(t, item.IsPriorityMail())
	})

	t.Run("should fail without an id", func(t *testing.T) {
		item, err := mail.NewItem("", 5, 3, 500, false)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, item)
	})

	t.Run("should fail with negative weight", func(t *testing.T) {
		item, err := mail.NewItem("M1", 5, 3, -1, false)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "-1 is negative")
		assert.Nil(t, item)
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := mail.NewItem("", 5, -2, -1, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "value is required: id")
		assert.Contains(t, err.Error(), "arrival")
		assert.Contains(t, err.Error(), "weight")
	})
}

func TestNewPriorityItem(t *testing.T) {
	t.Run("should keep the priority level", func(t *testing.T) {
		item, err := mail.NewPriorityItem("M2", 9, 1, 100, true, 100)

		require.NoError(t, err)
		assert.Equal(t, 100, item.Priority())
		assert.True(t, item.IsPriorityMail())
		assert.True(t, item.Fragile())
	})

	t.Run("should reject priority below the default", func(t *testing.T) {
		item, err := mail.NewPriorityItem("M2", 9, 1, 100, false, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, item)
	})
}

func TestItem_WeightClass(t *testing.T) {
	tests := []struct {
		weight int
		want   mail.WeightClass
	}{
		{weight: 0, want: mail.Light},
		{weight: mail.HeavyThreshold - 1, want: mail.Light},
		{weight: mail.HeavyThreshold, want: mail.Heavy},
		{weight: 3000, want: mail.Heavy},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			item, err := mail.NewItem("M", 1, 0, tt.weight, false)
			require.NoError(t, err)

			assert.Equal(t, tt.want, item.WeightClass())
			assert.Equal(t, tt.want == mail.Heavy, item.IsHeavy())
		})
	}
}

func TestItem_Score(t *testing.T) {
	t.Run("ordinary mail is weighted by elapsed time only", func(t *testing.T) {
		item, _ := mail.NewItem("M1", 2, 10, 100, false)

		assert.InDelta(t, math.Pow(8, 1.2), item.Score(18, 1.2), 1e-9)
	})

	t.Run("priority mail is weighted by its level", func(t *testing.T) {
		item, _ := mail.NewPriorityItem("M2", 2, 10, 100, false, 100)

		assert.InDelta(t, math.Pow(8, 1.2)*11, item.Score(18, 1.2), 1e-9)
	})
}

func TestItem_Validate(t *testing.T) {
	var zero mail.Item
	var nilItem *mail.Item

	assert.Equal(t, mail.ErrItemIsNotConstructed, zero.Validate())
	assert.Equal(t, mail.ErrItemIsNotConstructed, nilItem.Validate())
}
