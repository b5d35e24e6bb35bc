package orchestrator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefixsub/internal/organizer"
)

func sampleReport() *organizer.Report {
	return &organizer.Report{
		Groups: []organizer.GroupReport{
			{
				Key:    "cat",
				Prefix: "Cat",
				Moves: []organizer.MoveRecord{
					{SourcePath: "/d/Cat_1", Status: organizer.StatusMoved},
					{SourcePath: "/d/cat_2", Status: organizer.StatusFailed, Error: errors.New("exists")},
					{SourcePath: "/d/cat_3", Status: organizer.StatusMoved},
				},
			},
			{
				Key:    "dog",
				Prefix: "dog",
				Moves: []organizer.MoveRecord{
					{SourcePath: "/d/dog_1", Status: organizer.StatusMoved},
					{SourcePath: "/d/dog_2", Status: organizer.StatusMoved},
				},
			},
		},
	}
}

func TestGenerateSummary_NilReport(t *testing.T) {
	summary := GenerateSummary(nil, 5*time.Second, true)

	require.NotNil(t, summary)
	assert.Zero(t, summary.Groups)
	assert.Zero(t, summary.Moved)
	assert.Equal(t, 5*time.Second, summary.Duration)
	assert.Nil(t, summary.ByPrefix)
	assert.False(t, summary.HasFailures())
}

func TestGenerateSummary_Counts(t *testing.T) {
	summary := GenerateSummary(sampleReport(), time.Second, false)

	assert.Equal(t, 2, summary.Groups)
	assert.Equal(t, 4, summary.Moved)
	assert.Equal(t, 1, summary.Failed)
	assert.Zero(t, summary.Planned)
	assert.True(t, summary.HasFailures())
	assert.Nil(t, summary.ByPrefix)
}

func TestGenerateSummary_VerboseByPrefix(t *testing.T) {
	summary := GenerateSummary(sampleReport(), time.Second, true)

	assert.Equal(t, map[string]int{"Cat": 3, "dog": 2}, summary.ByPrefix)
}

func TestGenerateSummary_DryRun(t *testing.T) {
	report := &organizer.Report{
		DryRun: true,
		Groups: []organizer.GroupReport{{
			Prefix: "a",
			Moves: []organizer.MoveRecord{
				{Status: organizer.StatusPlanned},
				{Status: organizer.StatusPlanned},
			},
		}},
	}

	summary := GenerateSummary(report, 0, false)

	assert.True(t, summary.DryRun)
	assert.Equal(t, 2, summary.Planned)
	assert.Zero(t, summary.Moved)
	assert.False(t, summary.HasFailures())
}

func TestGenerateSummary_InPlace(t *testing.T) {
	report := &organizer.Report{
		Groups: []organizer.GroupReport{{
			Moves: []organizer.MoveRecord{
				{Status: organizer.StatusInPlace},
				{Status: organizer.StatusInPlace},
			},
		}},
	}

	summary := GenerateSummary(report, 0, false)

	assert.Equal(t, 2, summary.InPlace)
	assert.Zero(t, summary.Moved)
	assert.False(t, summary.HasFailures())
}

func TestRunSummary_HasFailuresNil(t *testing.T) {
	var s *RunSummary
	assert.False(t, s.HasFailures())
}
