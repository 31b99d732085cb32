package observers

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/anggasct/post"
)

var (
	_ post.ExtendedObserver = (*LoggingObserver)(nil)
	_ post.ExtendedObserver = (*MetricsObserver)(nil)
	_ post.ExtendedObserver = (*ValidationObserver)(nil)
)

func runScenario(p *post.Post) {
	p.AddText("A")
	p.RequestReview()
	p.AddText("B")
	p.Reject()
	p.AddText("C")
	p.RequestReview()
	p.Approve()
	p.Approve()
}

func TestLoggingObserver(t *testing.T) {
	t.Run("Info level records transitions only", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		p := post.New(post.WithObserver(NewLoggingObserver(zap.New(core))))

		runScenario(p)

		entries := logs.FilterMessage("post transition").All()
		require.Len(t, entries, 5)
		assert.Equal(t, 5, logs.Len())

		last := entries[len(entries)-1].ContextMap()
		assert.Equal(t, post.StatePendingSecondReview, last["from"])
		assert.Equal(t, post.StatePublished, last["to"])
		assert.Equal(t, post.EventApprove, last["event"])
		assert.Equal(t, p.ID().String(), last["post_id"])
		assert.Equal(t, "post", entries[0].LoggerName)
	})

	t.Run("Debug level records ignored operations", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		p := post.New(post.WithObserver(NewLoggingObserver(zap.New(core))))

		runScenario(p)

		ignored := logs.FilterMessage("operation ignored").All()
		require.Len(t, ignored, 1)
		assert.Equal(t, post.StatePendingReview, ignored[0].ContextMap()["state"])
		assert.Equal(t, 2, logs.FilterMessage("text added").Len())
	})

	t.Run("Errors", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		p := post.New(post.WithObserver(NewLoggingObserver(zap.New(core))))

		p.HandleEvent("archive", nil)

		entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap()["error"], "archive")
	})

	t.Run("Nil logger", func(t *testing.T) {
		p := post.New(post.WithObserver(NewLoggingObserver(nil)))
		assert.NotPanics(t, func() { runScenario(p) })
	})
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	metrics.now = func() time.Time {
		clock = clock.Add(2 * time.Second)
		return clock
	}

	p := post.New(post.WithObserver(metrics), post.WithClock(metrics.now))
	runScenario(p)
	p.Approve()
	p.HandleEvent("unknown", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.transitions.WithLabelValues(post.StateDraft, post.StatePendingReview, post.EventRequestReview)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.transitions.WithLabelValues(post.StatePendingReview, post.StateDraft, post.EventReject)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.stateEntries.WithLabelValues(post.StatePublished)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.rejected.WithLabelValues(post.StatePendingReview, post.EventAddText)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.rejected.WithLabelValues(post.StatePublished, post.EventApprove)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.textBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.errors))

	count, err := testutil.GatherAndCount(reg, "post_workflow_state_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

// durationSamples returns sample count and sum of the state duration histogram for one state
func durationSamples(t *testing.T, reg *prometheus.Registry, state string) (uint64, float64) {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "post_workflow_state_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "state" && label.GetValue() == state {
					return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
				}
			}
		}
	}
	return 0, 0
}

func TestMetricsObserver_InitialDraftDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	metrics.now = func() time.Time { return created.Add(90 * time.Second) }
	p := post.New(
		post.WithObserver(metrics),
		post.WithClock(func() time.Time { return created }),
	)

	p.AddText("A")
	p.RequestReview()

	count, sum := durationSamples(t, reg, post.StateDraft)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, 90.0, sum)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.stateDuration))
}

func TestMetricsObserver_AbandonedPosts(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		p := post.New(post.WithObserver(metrics))
		p.AddText("abandoned")
		p.RequestReview()
	}

	count, _ := durationSamples(t, reg, post.StateDraft)
	assert.Equal(t, uint64(1000), count)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.stateDuration))
	assert.Equal(t, 1000.0, testutil.ToFloat64(metrics.stateEntries.WithLabelValues(post.StatePendingReview)))
}

func TestMetricsObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewMetricsObserver(reg)
	require.NoError(t, err)

	_, err = NewMetricsObserver(reg)
	var already prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(err, &already))
}

func TestMetricsObserver_Unregistered(t *testing.T) {
	metrics, err := NewMetricsObserver(nil)
	require.NoError(t, err)
	assert.Len(t, metrics.Collectors(), 6)
}

func TestValidationObserver(t *testing.T) {
	t.Run("Clean run", func(t *testing.T) {
		validation := NewValidationObserver()
		p := post.New(post.WithObserver(validation))

		runScenario(p)
		p.Reject()

		assert.False(t, validation.HasViolations(), validation.GetViolations())
		assert.Empty(t, validation.GetUnvisitedStates())
	})

	t.Run("Unvisited states", func(t *testing.T) {
		validation := NewValidationObserver()
		p := post.New(post.WithObserver(validation))

		p.RequestReview()

		assert.ElementsMatch(t,
			[]string{post.StatePendingSecondReview, post.StatePublished},
			validation.GetUnvisitedStates())
	})

	t.Run("Detects bad transitions", func(t *testing.T) {
		validation := NewValidationObserver()
		p := post.New()

		validation.OnTransition(p, post.StateDraft, post.StatePublished, post.NewEvent(post.EventApprove, nil))
		validation.OnTransition(p, post.StateDraft, post.StatePendingReview, post.NewEvent("submit", nil))

		require.Len(t, validation.GetViolations(), 2)

		validation.Reset()
		assert.False(t, validation.HasViolations())
	})

	t.Run("Errors are violations", func(t *testing.T) {
		validation := NewValidationObserver()
		p := post.New(post.WithObserver(validation))

		p.HandleEvent(post.EventAddText, 3)

		assert.True(t, validation.HasViolations())
	})
}
