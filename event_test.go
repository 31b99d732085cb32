package post

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Creation(t *testing.T) {
	before := time.Now()
	event := NewEvent(EventAddText, "data")

	assert.Equal(t, EventAddText, event.GetName())
	assert.Equal(t, "data", event.GetData())
	assert.False(t, event.GetTimestamp().Before(before))
	assert.Empty(t, event.GetMetadata())
}

func TestEvent_MetadataIsCopied(t *testing.T) {
	event := NewEventWithMetadata(EventApprove, nil, map[string]any{"reviewer": "alice"})

	metadata := event.GetMetadata()
	metadata["reviewer"] = "mallory"

	assert.Equal(t, "alice", event.GetMetadata()["reviewer"])
}

func TestEvent_NilMetadata(t *testing.T) {
	event := NewEventWithMetadata(EventReject, nil, nil)

	assert.NotNil(t, event.GetMetadata())
}

func TestEventResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		result := NewEventResult(true, true, StateDraft, StatePendingReview)
		assert.True(t, result.Success())
		assert.False(t, result.Rejected())
	})

	t.Run("rejection clears processed", func(t *testing.T) {
		result := NewEventResult(true, false, StateDraft, StateDraft).WithRejection("no-op")
		assert.False(t, result.Processed)
		assert.False(t, result.Success())
		assert.True(t, result.Rejected())
	})

	t.Run("error", func(t *testing.T) {
		result := NewEventResult(true, false, StateDraft, StateDraft).WithError(errors.New("boom"))
		assert.False(t, result.Success())
		assert.False(t, result.Rejected())
	})
}

func TestEventNames(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"add_text", "request_review", "approve", "reject"},
		EventNames())
}
