package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/janhq/jan-assistant/internal/domain/llm"
)

func TestObserverRecordsCollectors(t *testing.T) {
	var obs Observer

	before := testutil.ToFloat64(ToolCallsTotal.WithLabelValues("search_web", "success"))
	obs.ToolCallFinished("search_web", "success", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(ToolCallsTotal.WithLabelValues("search_web", "success")))

	inputBefore := testutil.ToFloat64(ModelTokensTotal.WithLabelValues("input"))
	obs.ModelCallFinished("success", time.Second, llm.Usage{InputTokens: 12, OutputTokens: 3})
	assert.Equal(t, inputBefore+12, testutil.ToFloat64(ModelTokensTotal.WithLabelValues("input")))

	turnsBefore := testutil.ToFloat64(TurnsTotal.WithLabelValues("error"))
	obs.TurnFinished("error", 0)
	assert.Equal(t, turnsBefore+1, testutil.ToFloat64(TurnsTotal.WithLabelValues("error")))
}
