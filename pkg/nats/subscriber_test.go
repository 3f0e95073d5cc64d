package nats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRestoresEnvelope(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	data, err := json.Marshal(envelope{
		Type:       "SCRAPING_COMPLETED",
		OccurredAt: at,
		Data:       map[string]interface{}{"sites": 3.0},
	})
	require.NoError(t, err)

	ev, err := Decode(Subject("SCRAPING_COMPLETED"), data)
	require.NoError(t, err)
	assert.Equal(t, "SCRAPING_COMPLETED", ev.EventType())
	assert.True(t, at.Equal(ev.Timestamp()))
	assert.Equal(t, 3.0, ev.Payload()["sites"])
}

func TestDecodeFallsBackToSubject(t *testing.T) {
	ev, err := Decode("events.LEAD_SUBMITTED", []byte(`{"data":{"email":"a@b.nl"}}`))
	require.NoError(t, err)
	assert.Equal(t, "LEAD_SUBMITTED", ev.EventType())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("events.X", []byte("not json"))
	assert.Error(t, err)
}
