package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"backend/internal/app/apperr"
	"backend/internal/app/ds"
)

func TestValidateOrderWarranty(t *testing.T) {
	e := New()

	require.NoError(t, e.ValidateOrder(&ds.Order{IsWarranty: false}))
	require.NoError(t, e.ValidateOrder(&ds.Order{IsWarranty: true, WarrantyDays: 30}))

	err := e.ValidateOrder(&ds.Order{IsWarranty: true, WarrantyDays: 0})
	require.Error(t, err)
	require.IsType(t, &apperr.ValidationError{}, err)
}

func TestValidateRatingBounds(t *testing.T) {
	e := New()

	for _, score := range []int{1, 3, 5} {
		require.NoError(t, e.ValidateRating(&ds.Rating{Score: score}))
	}
	for _, score := range []int{0, -1, 6} {
		require.Error(t, e.ValidateRating(&ds.Rating{Score: score}), score)
	}
}

func TestValidateRegionBounds(t *testing.T) {
	e := New()

	require.NoError(t, e.ValidateRegion(&ds.Region{Population: 0, AreaKm2: 0}))
	require.Error(t, e.ValidateRegion(&ds.Region{Population: -1}))
	require.Error(t, e.ValidateRegion(&ds.Region{AreaKm2: -0.5}))
}
