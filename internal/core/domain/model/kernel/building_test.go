package kernel_test

import (
	"testing"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilding(t *testing.T) {
	tests := []struct {
		name     string
		lowest   kernel.Floor
		top      kernel.Floor
		mailroom kernel.Floor
		wantErr  error
	}{
		{name: "ground floor mailroom", lowest: 0, top: 14, mailroom: 0},
		{name: "mailroom in the middle", lowest: 1, top: 10, mailroom: 5},
		{name: "single floor building", lowest: 3, top: 3, mailroom: 3},
		{name: "top below lowest", lowest: 5, top: 2, mailroom: 5, wantErr: errs.ErrValueIsInvalid},
		{name: "mailroom above top", lowest: 0, top: 4, mailroom: 7, wantErr: errs.ErrValueIsOutOfRange},
		{name: "mailroom below lowest", lowest: 1, top: 4, mailroom: 0, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := kernel.NewBuilding(tt.lowest, tt.top, tt.mailroom)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, kernel.ErrBuildingIsNotConstructed, b.Validate())
				return
			}

			require.NoError(t, err)
			require.NoError(t, b.Validate())
			assert.Equal(t, tt.lowest, b.Lowest())
			assert.Equal(t, tt.top, b.Top())
			assert.Equal(t, tt.mailroom, b.Mailroom())
			assert.Equal(t, int(tt.top-tt.lowest)+1, b.Floors())
		})
	}
}

func TestBuilding_Floor(t *testing.T) {
	b, err := kernel.NewBuilding(0, 14, 0)
	require.NoError(t, err)

	t.Run("should accept floors inside the building", func(t *testing.T) {
		for _, n := range []int{0, 5, 14} {
			f, err := b.Floor(n)

			require.NoError(t, err)
			assert.Equal(t, kernel.Floor(n), f)
			assert.True(t, b.Contains(f))
		}
	})

	t.Run("should reject floors outside the building", func(t *testing.T) {
		for _, n := range []int{-1, 15} {
			_, err := b.Floor(n)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject use of a zero value building", func(t *testing.T) {
		var zero kernel.Building

		_, err := zero.Floor(1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestFloor_Toward(t *testing.T) {
	assert.Equal(t, kernel.Floor(3), kernel.Floor(2).Toward(5))
	assert.Equal(t, kernel.Floor(1), kernel.Floor(2).Toward(0))
	assert.Equal(t, kernel.Floor(4), kernel.Floor(4).Toward(4))
	assert.Equal(t, 3, kernel.Floor(2).Distance(5))
	assert.Equal(t, 3, kernel.Floor(5).Distance(2))
}
