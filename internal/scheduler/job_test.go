package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func result(name string, success bool) JobResult {
	now := time.Now()
	return JobResult{
		JobName:   name,
		StartTime: now,
		EndTime:   now.Add(time.Second),
		Duration:  time.Second,
		Success:   success,
	}
}

func TestJobHistory_AddResult_CapsAtHundred(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 150; i++ {
		h.AddResult(result("daily", true))
	}

	assert.Len(t, h.Results, 100)
}

func TestJobHistory_GetLatestResults(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(result("daily", true))
	h.AddResult(result("daily", false))
	h.AddResult(result("daily", true))

	latest := h.GetLatestResults(2)
	assert.Len(t, latest, 2)
	assert.False(t, latest[0].Success)
	assert.True(t, latest[1].Success)

	// Asking for more than exists returns everything
	assert.Len(t, h.GetLatestResults(10), 3)

	empty := &JobHistory{}
	assert.Empty(t, empty.GetLatestResults(5))
}

func TestJobHistory_GetFailedResults(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(result("daily", true))
	h.AddResult(result("daily", false))
	h.AddResult(result("daily", false))

	failed := h.GetFailedResults()
	assert.Len(t, failed, 2)
}

func TestJobHistory_GetSuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.GetSuccessRate())

	h.AddResult(result("daily", true))
	h.AddResult(result("daily", true))
	h.AddResult(result("daily", false))
	h.AddResult(result("daily", true))

	assert.InDelta(t, 0.75, h.GetSuccessRate(), 1e-9)
}
