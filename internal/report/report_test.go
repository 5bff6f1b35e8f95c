package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/Midas/internal/report"
	"github.com/XavierBriggs/Midas/pkg/models"
	"github.com/XavierBriggs/Midas/pkg/testutil"
)

func priced(name, key string, low, high uint64) models.PricedItem {
	return models.PricedItem{
		Item:  testutil.NewTestItem(name, models.SlotWheels, models.PaintNone, models.EditionNone),
		Key:   key,
		Price: models.PriceRange{Low: low, High: high},
	}
}

func TestAggregate_SortsAndSums(t *testing.T) {
	in := []models.PricedItem{
		priced("C", "c", 300, 400),
		priced("A", "a", 100, 150),
		priced("B", "b", 200, 200),
	}

	v := report.Aggregate(in)

	require.Len(t, v.Lines, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{v.Lines[0].Key, v.Lines[1].Key, v.Lines[2].Key})
	assert.Equal(t, uint64(600), v.TotalLow)
	assert.Equal(t, uint64(750), v.TotalHigh)
	assert.LessOrEqual(t, v.TotalLow, v.TotalHigh)

	// input untouched
	assert.Equal(t, "c", in[0].Key)
}

func TestAggregate_TiesKeepInputOrder(t *testing.T) {
	v := report.Aggregate([]models.PricedItem{
		priced("X", "x", 50, 60),
		priced("Y", "y", 10, 20),
		priced("Z", "z", 50, 55),
	})

	assert.Equal(t, "y", v.Lines[0].Key)
	assert.Equal(t, "x", v.Lines[1].Key)
	assert.Equal(t, "z", v.Lines[2].Key)
}

func TestAggregate_Idempotent(t *testing.T) {
	first := report.Aggregate([]models.PricedItem{
		priced("A", "a", 5, 9),
		priced("B", "b", 1, 2),
		priced("C", "c", 5, 6),
	})
	second := report.Aggregate(first.Lines)

	assert.Equal(t, first, second)
}

func TestAggregate_AmountIgnored(t *testing.T) {
	line := priced("Stack", "s", 10, 20)
	line.Item.Amount = 5

	v := report.Aggregate([]models.PricedItem{line})
	assert.Equal(t, uint64(10), v.TotalLow)
	assert.Equal(t, uint64(20), v.TotalHigh)
}

func TestAggregate_Empty(t *testing.T) {
	v := report.Aggregate(nil)
	assert.Empty(t, v.Lines)
	assert.Zero(t, v.TotalLow)
	assert.Zero(t, v.TotalHigh)
}

func TestWriteValuation(t *testing.T) {
	v := report.Aggregate([]models.PricedItem{
		priced("Dieci", "https://rl.insider.gg/en/pc/wheels/dieci/white", 1200, 1500),
		priced("Krush", "https://rl.insider.gg/en/pc/cars/octane/krush", 100, 200),
	})

	var buf bytes.Buffer
	require.NoError(t, report.WriteValuation(&buf, v))

	assert.Equal(t, strings.Join([]string{
		"100,200,https://rl.insider.gg/en/pc/cars/octane/krush",
		"1200,1500,https://rl.insider.gg/en/pc/wheels/dieci/white",
		"total inventory is worth 1300 - 1700",
		"",
	}, "\n"), buf.String())
}

func TestWriteValuation_EmptyStillPrintsTotal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteValuation(&buf, models.Valuation{}))
	assert.Equal(t, "total inventory is worth 0 - 0\n", buf.String())
}

func TestWriteFailures(t *testing.T) {
	item := testutil.NewTestItem("Zomba", models.SlotWheels, models.PaintNone, models.EditionNone)
	failed := []models.FailedItem{{
		Item: item,
		Key:  "https://rl.insider.gg/en/pc/wheels/zomba",
		Err:  &models.FetchError{Kind: models.FetchErrorNotFound, URL: "https://rl.insider.gg/en/pc/wheels/zomba"},
	}}

	var buf bytes.Buffer
	require.NoError(t, report.WriteFailures(&buf, failed))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "!Zomba ["))
	assert.Contains(t, out, "not_found fetching https://rl.insider.gg/en/pc/wheels/zomba")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteValuation_PropagatesWriteErrors(t *testing.T) {
	err := report.WriteValuation(failingWriter{}, report.Aggregate([]models.PricedItem{priced("A", "a", 1, 2)}))
	assert.ErrorContains(t, err, "disk full")
}
