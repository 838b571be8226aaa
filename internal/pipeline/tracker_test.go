package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_LaterEventSupersedes(t *testing.T) {
	tracker := NewTracker()
	tracker.Record(Event{Stage: StageQueryPlanner, Status: StatusRunning})
	tracker.Record(Event{Stage: StageQueryPlanner, Status: StatusDone})

	latest, ok := tracker.Latest(StageQueryPlanner)
	require.True(t, ok)
	assert.Equal(t, StatusDone, latest.Status)
}

func TestTracker_LogPreservesEmissionOrder(t *testing.T) {
	tracker := NewTracker()
	tracker.Record(Event{Stage: StageQueryPlanner, Status: StatusRunning})
	tracker.Record(Event{Stage: StageQueryPlanner, Status: StatusDone})
	tracker.Record(Event{Stage: StageWebCrawler, Status: StatusRunning})

	log := tracker.Log()
	require.Len(t, log, 3)
	assert.Equal(t, StatusRunning, log[0].Status)
	assert.Equal(t, StatusDone, log[1].Status)
	assert.Equal(t, StageWebCrawler, log[2].Stage)
}

func TestTracker_UnknownStage(t *testing.T) {
	tracker := NewTracker()
	_, ok := tracker.Latest(StageRanker)
	assert.False(t, ok)
}

func TestTracker_LogReturnsCopy(t *testing.T) {
	tracker := NewTracker()
	tracker.Record(Event{Stage: StageRanker, Status: StatusRunning})

	log := tracker.Log()
	log[0].Status = StatusError

	fresh := tracker.Log()
	assert.Equal(t, StatusRunning, fresh[0].Status)
}
