// Package publisher announces finished valuations on a Redis Stream so that
// downstream consumers can react to them. Midas never reads the stream back.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/Midas/pkg/models"
)

const (
	DefaultStream = "midas.valuations"
	DefaultMaxLen = 1000
)

// Publisher writes valuation messages to a Redis Stream
type Publisher struct {
	redis  *redis.Client
	stream string
	maxLen int64
}

// StreamMessage is the JSON payload stored in the "data" field of a stream entry
type StreamMessage struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	TotalLow    uint64          `json:"total_low"`
	TotalHigh   uint64          `json:"total_high"`
	Eligible    int             `json:"eligible"`
	Priced      []PricedMessage `json:"priced"`
	Failed      []FailedMessage `json:"failed"`
}

// PricedMessage describes one priced item
type PricedMessage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Low  uint64 `json:"low"`
	High uint64 `json:"high"`
}

// FailedMessage describes one item that could not be priced
type FailedMessage struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// NewPublisher creates a stream publisher. An empty stream or non-positive
// maxLen falls back to the defaults.
func NewPublisher(redisClient *redis.Client, stream string, maxLen int64) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Publisher{
		redis:  redisClient,
		stream: stream,
		maxLen: maxLen,
	}
}

// Stream returns the stream key messages are added to
func (p *Publisher) Stream() string {
	return p.stream
}

// Publish adds one message for the run and returns its stream entry ID
func (p *Publisher) Publish(ctx context.Context, stats models.RunStats, v models.Valuation, failed []models.FailedItem) (string, error) {
	msg := BuildMessage(stats, v, failed)

	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal stream message: %w", err)
	}

	id, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"run_id": msg.RunID,
			"data":   msgJSON,
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	return id, nil
}

// BuildMessage converts a run's results to its stream payload
func BuildMessage(stats models.RunStats, v models.Valuation, failed []models.FailedItem) StreamMessage {
	msg := StreamMessage{
		RunID:       stats.RunID,
		GeneratedAt: time.Now().UTC(),
		TotalLow:    v.TotalLow,
		TotalHigh:   v.TotalHigh,
		Eligible:    stats.Eligible,
		Priced:      make([]PricedMessage, 0, len(v.Lines)),
		Failed:      make([]FailedMessage, 0, len(failed)),
	}

	for _, line := range v.Lines {
		msg.Priced = append(msg.Priced, PricedMessage{
			Name: line.Item.Name,
			URL:  line.Key,
			Low:  line.Price.Low,
			High: line.Price.High,
		})
	}

	for _, f := range failed {
		kind := string(models.FetchErrorTransport)
		if fe, ok := f.Err.(*models.FetchError); ok {
			kind = string(fe.Kind)
		}
		msg.Failed = append(msg.Failed, FailedMessage{
			Name:  f.Item.Name,
			URL:   f.Key,
			Kind:  kind,
			Error: f.Err.Error(),
		})
	}

	return msg
}
