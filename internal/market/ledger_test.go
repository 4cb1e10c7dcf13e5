package market_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hydro-intrinsic/internal/market"
)

func TestCashflowIsElementwiseProduct(t *testing.T) {
	cf := market.Cashflow([]float64{10, 20}, []float64{2, -1})
	require.Equal(t, []float64{20, -20}, cf)
}

func TestDoTransactionsDAAccumulatesAndRecordsHistory(t *testing.T) {
	l := market.New()
	cf := l.DoTransactionsDA([]float64{10, 10}, []float64{1, -1}, 0)
	require.Equal(t, []float64{10, -10}, cf)
	require.InDelta(t, 0.0, l.SumDABaseline, 1e-9)
	require.Equal(t, cf, l.HistoryDA[0])
}

func TestDoTransactionsIDBooksIntoTheRightBucket(t *testing.T) {
	l := market.New()

	_, err := l.DoTransactionsID([]float64{10}, []float64{2}, 3, market.RollID1OverDA)
	require.NoError(t, err)
	require.InDelta(t, 20.0, l.SumID1OverDA, 1e-9)
	require.InDelta(t, 0.0, l.SumID2OverID1, 1e-9)

	_, err = l.DoTransactionsID([]float64{10}, []float64{3}, 3, market.RollID2OverID1)
	require.NoError(t, err)
	require.InDelta(t, 30.0, l.SumID2OverID1, 1e-9)

	require.InDelta(t, 50.0, l.TotalValue(), 1e-9)
}

func TestDoTransactionsIDRejectsUnknownKind(t *testing.T) {
	l := market.New()
	_, err := l.DoTransactionsID([]float64{1}, []float64{1}, 0, market.RollKind(99))
	require.Error(t, err)
}
