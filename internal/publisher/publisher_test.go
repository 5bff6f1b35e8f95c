package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/Midas/internal/publisher"
	"github.com/XavierBriggs/Midas/internal/report"
	"github.com/XavierBriggs/Midas/pkg/models"
	"github.com/XavierBriggs/Midas/pkg/testutil"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func sampleRun() (models.RunStats, models.Valuation, []models.FailedItem) {
	stats := models.RunStats{RunID: "run-1", StartedAt: time.Now(), Loaded: 4, Tradeable: 3, Eligible: 3, Priced: 2, Failed: 1}

	v := report.Aggregate([]models.PricedItem{
		{
			Item:  testutil.NewTestItem("Dieci", models.SlotWheels, models.PaintTitaniumWhite, models.EditionNone),
			Key:   "https://rl.insider.gg/en/pc/wheels/dieci/white",
			Price: models.PriceRange{Low: 1200, High: 1500},
		},
		{
			Item:  testutil.NewTestItem("Octane: Krush", models.SlotBody, models.PaintNone, models.EditionNone),
			Key:   "https://rl.insider.gg/en/pc/cars/octane/krush",
			Price: models.PriceRange{Low: 100, High: 200},
		},
	})

	failed := []models.FailedItem{{
		Item: testutil.NewTestItem("Zomba", models.SlotWheels, models.PaintNone, models.EditionNone),
		Key:  "https://rl.insider.gg/en/pc/wheels/zomba",
		Err:  &models.FetchError{Kind: models.FetchErrorHTTPStatus, URL: "https://rl.insider.gg/en/pc/wheels/zomba", Detail: "status 503"},
	}}

	return stats, v, failed
}

func TestPublish_AddsStreamEntry(t *testing.T) {
	ctx := context.Background()
	client := setupRedis(t)
	pub := publisher.NewPublisher(client, "test.valuations", 10)

	stats, v, failed := sampleRun()
	id, err := pub.Publish(ctx, stats, v, failed)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := client.XRange(ctx, "test.valuations", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "run-1", entries[0].Values["run_id"])

	var msg publisher.StreamMessage
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["data"].(string)), &msg))

	assert.Equal(t, "run-1", msg.RunID)
	assert.Equal(t, uint64(1300), msg.TotalLow)
	assert.Equal(t, uint64(1700), msg.TotalHigh)
	assert.Equal(t, 3, msg.Eligible)
	require.Len(t, msg.Priced, 2)
	assert.Equal(t, "Octane: Krush", msg.Priced[0].Name)
	require.Len(t, msg.Failed, 1)
	assert.Equal(t, "http_status", msg.Failed[0].Kind)
	assert.Contains(t, msg.Failed[0].Error, "status 503")
}

func TestPublish_Defaults(t *testing.T) {
	client := setupRedis(t)
	pub := publisher.NewPublisher(client, "", 0)
	assert.Equal(t, publisher.DefaultStream, pub.Stream())

	stats, v, failed := sampleRun()
	_, err := pub.Publish(context.Background(), stats, v, failed)
	require.NoError(t, err)

	n, err := client.XLen(context.Background(), publisher.DefaultStream).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPublish_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	stats, v, failed := sampleRun()
	_, err := publisher.NewPublisher(client, "", 0).Publish(context.Background(), stats, v, failed)
	assert.ErrorContains(t, err, "xadd to stream")
}

func TestBuildMessage_EmptyRun(t *testing.T) {
	msg := publisher.BuildMessage(models.RunStats{RunID: "empty"}, models.Valuation{}, nil)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"priced":[]`)
	assert.Contains(t, string(data), `"failed":[]`)
}
