package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, any) error { return errors.New("broker down") }
func (failingPublisher) Close() error                               { return nil }

func TestEncode(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))
	body, err := Encode(ResumeParsed, map[string]int{"skills": 3}, now)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "resume.parsed", decoded["type"])
	assert.Equal(t, "2025-05-01T14:00:00Z", decoded["timestamp"])
	assert.Equal(t, map[string]any{"skills": float64(3)}, decoded["payload"])
}

func TestEncode_Unencodable(t *testing.T) {
	_, err := Encode(DataCleared, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestEmitter_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := NewEmitter(failingPublisher{}, zap.New(core))

	e.Emit(context.Background(), MatchesGenerated, nil)

	entries := logs.FilterMessage("failed to publish event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, MatchesGenerated, entries[0].ContextMap()["routing_key"])
}

func TestEmitter_NilPublisherIsNop(t *testing.T) {
	e := NewEmitter(nil, nil)
	e.Emit(context.Background(), DataCleared, map[string]int{"matches": 1})
	assert.NoError(t, e.Close())
}
