package status

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aftersale/casepipe/constants"
	"github.com/aftersale/casepipe/internal/common"
)

func TestInitCase(t *testing.T) {
	r := NewRegistry()

	rec := r.InitCase("case-1")

	assert.Equal(t, constants.CaseCreated, rec.Status)
	require.NotNil(t, rec.ProgressPercent)
	assert.Equal(t, 0, *rec.ProgressPercent)
	assert.Contains(t, rec.Timestamps, constants.TSCreatedAt)

	_, err := time.Parse(time.RFC3339Nano, rec.Timestamps[constants.TSCreatedAt])
	assert.NoError(t, err)
}

func TestInitCase_ResetsExisting(t *testing.T) {
	r := NewRegistry()
	r.InitCase("case-1")
	r.StartAnalysis("case-1")
	r.FinishAnalysis("case-1", true)

	rec := r.InitCase("case-1")

	assert.Equal(t, constants.CaseCreated, rec.Status)
	assert.Equal(t, 0, *rec.ProgressPercent)
	assert.NotContains(t, rec.Timestamps, constants.TSAnalysisStartedAt)
}

func TestAnalysisLifecycle(t *testing.T) {
	r := NewRegistry()
	r.InitCase("case-1")

	started := r.StartAnalysis("case-1")
	assert.Equal(t, constants.AnalyzingIssue, started.Status)
	assert.Equal(t, 10, *started.ProgressPercent)
	assert.Contains(t, started.Timestamps, constants.TSAnalysisStartedAt)

	done := r.FinishAnalysis("case-1", true)
	assert.Equal(t, constants.AnalysisCompleted, done.Status)
	assert.Equal(t, 100, *done.ProgressPercent)

	startTS, err := time.Parse(time.RFC3339Nano, done.Timestamps[constants.TSAnalysisStartedAt])
	require.NoError(t, err)
	doneTS, err := time.Parse(time.RFC3339Nano, done.Timestamps[constants.TSAnalysisCompletedAt])
	require.NoError(t, err)
	assert.False(t, doneTS.Before(startTS))
	assert.Contains(t, done.Timestamps, constants.TSCreatedAt)
}

func TestFinishAnalysis_FailureKeepsProgress(t *testing.T) {
	r := NewRegistry()
	r.InitCase("case-1")
	r.StartAnalysis("case-1")

	rec := r.FinishAnalysis("case-1", false)

	assert.Equal(t, constants.AnalysisFailed, rec.Status)
	assert.Equal(t, 10, *rec.ProgressPercent)
	assert.Contains(t, rec.Timestamps, constants.TSAnalysisCompletedAt)
}

func TestStartAnalysis_CreatesMissingCase(t *testing.T) {
	r := NewRegistry()

	rec := r.StartAnalysis("fresh")

	assert.Equal(t, constants.AnalyzingIssue, rec.Status)
	assert.Contains(t, rec.Timestamps, constants.TSCreatedAt)
	assert.True(t, r.Exists("fresh"))
}

func TestStartAnalysis_DoesNotLowerProgress(t *testing.T) {
	r := NewRegistry()
	r.InitCase("case-1")
	p := 60
	_, err := r.UpdateCase("case-1", Patch{ProgressPercent: &p})
	require.NoError(t, err)

	rec := r.StartAnalysis("case-1")
	assert.Equal(t, 60, *rec.ProgressPercent)
}

func TestUpdateCase(t *testing.T) {
	r := NewRegistry()
	r.InitCase("case-1")

	s := constants.CaseClassified
	p := 50
	rec, err := r.UpdateCase("case-1", Patch{
		Status:          &s,
		ProgressPercent: &p,
		Timestamps:      map[string]string{"classified_at": "2026-08-28T00:00:00Z"},
	})

	require.NoError(t, err)
	assert.Equal(t, constants.CaseClassified, rec.Status)
	assert.Equal(t, 50, *rec.ProgressPercent)
	assert.Equal(t, "2026-08-28T00:00:00Z", rec.Timestamps["classified_at"])
	assert.Contains(t, rec.Timestamps, constants.TSCreatedAt, "patch timestamps merge, they do not replace")
}

func TestUpdateCase_UnknownID(t *testing.T) {
	r := NewRegistry()

	_, err := r.UpdateCase("ghost", Patch{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CASE_NOT_FOUND", appErr.Code)
}

func TestGetCaseStatus_UnknownID(t *testing.T) {
	r := NewRegistry()

	rec := r.GetCaseStatus("ghost")

	assert.Empty(t, rec.Status)
	assert.Nil(t, rec.ProgressPercent)
	assert.NotNil(t, rec.Timestamps)
	assert.Empty(t, rec.Timestamps)
}

func TestSnapshotIsolation(t *testing.T) {
	r := NewRegistry()
	rec := r.InitCase("case-1")

	rec.Timestamps["rogue"] = "x"

	assert.NotContains(t, r.GetCaseStatus("case-1").Timestamps, "rogue")
}

func TestConcurrentUpdates(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("case-%d", n%4)
			r.InitCase(id)
			r.StartAnalysis(id)
			r.FinishAnalysis(id, n%2 == 0)
			r.GetCaseStatus(id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		assert.True(t, r.Exists(fmt.Sprintf("case-%d", i)))
	}
}
