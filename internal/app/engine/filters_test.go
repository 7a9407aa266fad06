package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestOrderSlices(t *testing.T) {
	states := []string{
		ds.OrderDraft, ds.OrderReceived, ds.OrderDiagnosed,
		ds.OrderInProgress, ds.OrderDone, ds.OrderCancelled,
	}

	var inProgress, open, countryOpen, customerActive int
	for _, state := range states {
		o := ds.Order{State: state}
		if OrderInProgress(o) {
			inProgress++
		}
		if OrderOpen(o) {
			open++
		}
		if OrderCountryOpen(o) {
			countryOpen++
		}
		if OrderCustomerActive(o) {
			customerActive++
		}
	}

	require.Equal(t, 1, inProgress)  // только in_progress
	require.Equal(t, 4, open)        // всё, кроме done и cancelled
	require.Equal(t, 2, countryOpen) // draft и in_progress
	// Клиентский срез сверяет статус с тегом, которого нет в перечислении
	require.Equal(t, 0, customerActive)
}

func TestPaymentSlices(t *testing.T) {
	draft := ds.Payment{State: ds.PaymentDraft, Amount: 10}
	confirmed := ds.Payment{State: ds.PaymentConfirmed, Amount: 10}
	cancelled := ds.Payment{State: ds.PaymentCancelled, Amount: 10}

	require.True(t, PaymentCounted(draft))
	require.True(t, PaymentCounted(confirmed))
	require.False(t, PaymentCounted(cancelled))

	require.False(t, PaymentConfirmed(draft))
	require.True(t, PaymentConfirmed(confirmed))

	require.True(t, PaymentZero(ds.Payment{Amount: 0}))
	require.False(t, PaymentZero(draft))
}

func TestOrderPlacedOnIgnoresTimeOfDay(t *testing.T) {
	day := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 5, 15, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 5, 16, 0, 1, 0, 0, time.UTC)

	require.True(t, OrderPlacedOn(ds.Order{OrderDate: late}, day))
	require.False(t, OrderPlacedOn(ds.Order{OrderDate: nextDay}, day))
}

func TestCenterIdle(t *testing.T) {
	require.True(t, CenterIdle(ds.Center{ActiveOrderCount: 0}))
	require.False(t, CenterIdle(ds.Center{ActiveOrderCount: 2}))
}

func TestAllTriggerFieldsKnownEntities(t *testing.T) {
	for _, entity := range []string{
		"order_line", "order", "payment", "rating",
		"technician", "center", "district", "region",
	} {
		require.NotEmpty(t, AllTriggerFields(entity), entity)
	}
	require.Empty(t, AllTriggerFields("customer")) // у клиента нет триггерных полей
}

func TestTriggerFieldsResolve(t *testing.T) {
	// Каждый элемент полного триггерного набора обязан иметь цели пересчёта
	for entity, fields := range entityTriggerFields {
		for _, f := range fields {
			require.NotEmpty(t, recomputeTriggers[entity+"."+f], entity+"."+f)
		}
	}
}

func TestMaxDate(t *testing.T) {
	require.Nil(t, maxDate(nil))

	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got := maxDate([]time.Time{a, b, a})
	require.NotNil(t, got)
	require.Equal(t, b, *got)
}

func TestUniqDropsZeroAndDuplicates(t *testing.T) {
	require.Equal(t, []uint{3, 1, 7}, uniq([]uint{3, 0, 1, 3, 7, 1}))
	require.Empty(t, uniq([]uint{0, 0}))
}
