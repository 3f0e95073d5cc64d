package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreExposed(t *testing.T) {
	m := New()
	m.RecordingTransitions.WithLabelValues("RECORDING").Inc()
	m.AdvisorReplies.WithLabelValues("commercial", "roi").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordingTransitions.WithLabelValues("RECORDING")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AdvisorReplies.WithLabelValues("commercial", "roi")))

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "robinrocks_recorder_transitions_total")
	assert.Contains(t, string(body), `rule="roi"`)
}
