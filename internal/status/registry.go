package status

import (
	"maps"
	"sync"
	"time"

	"github.com/aftersale/casepipe/constants"
	"github.com/aftersale/casepipe/internal/common"
)

// Record is the per-case status snapshot surfaced to pollers. Status is empty
// and ProgressPercent nil for unknown cases.
type Record struct {
	Status          constants.CaseStatus `json:"status,omitempty"`
	Timestamps      map[string]string    `json:"timestamps"`
	ProgressPercent *int                 `json:"progress_percent"`
}

// Patch is a partial update for UpdateCase: last-write-wins per set field,
// timestamp keys merge into the existing map.
type Patch struct {
	Status          *constants.CaseStatus
	ProgressPercent *int
	Timestamps      map[string]string
}

type entry struct {
	status          constants.CaseStatus
	timestamps      map[string]string
	progressPercent int
}

// Registry is the process-wide case status store: the only shared mutable
// state in the core. A single mutex serializes per-case read-modify-write;
// entries are never deleted by the core.
type Registry struct {
	mu    sync.Mutex
	cases map[string]*entry
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		cases: make(map[string]*entry),
		now:   time.Now,
	}
}

func (r *Registry) nowISO() string {
	return r.now().UTC().Format(time.RFC3339Nano)
}

// InitCase creates (or resets) the entry for id. Calling twice overwrites:
// this is the one point where progress may go backwards.
func (r *Registry) InitCase(id string) Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initLocked(id).snapshot()
}

func (r *Registry) initLocked(id string) *entry {
	e := &entry{
		status:          constants.CaseCreated,
		timestamps:      map[string]string{constants.TSCreatedAt: r.nowISO()},
		progressPercent: 0,
	}
	r.cases[id] = e
	return e
}

// StartAnalysis marks the analysis sub-phase as running, creating the entry
// first when missing.
func (r *Registry) StartAnalysis(id string) Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.cases[id]
	if !ok {
		e = r.initLocked(id)
	}
	e.status = constants.AnalyzingIssue
	e.timestamps[constants.TSAnalysisStartedAt] = r.nowISO()
	if e.progressPercent < 10 {
		e.progressPercent = 10
	}
	return e.snapshot()
}

// FinishAnalysis marks the analysis sub-phase terminal. Progress jumps to 100
// on success and is left unchanged on failure.
func (r *Registry) FinishAnalysis(id string, success bool) Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.cases[id]
	if !ok {
		e = r.initLocked(id)
	}
	if success {
		e.status = constants.AnalysisCompleted
		e.progressPercent = 100
	} else {
		e.status = constants.AnalysisFailed
	}
	e.timestamps[constants.TSAnalysisCompletedAt] = r.nowISO()
	return e.snapshot()
}

// SetStatus lets adjacent workflow stages stamp additional named states
// (e.g. classified, analyzed) onto the same record format.
func (r *Registry) SetStatus(id string, s constants.CaseStatus) Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.cases[id]
	if !ok {
		e = r.initLocked(id)
	}
	e.status = s
	return e.snapshot()
}

// UpdateCase merges a patch into an existing entry. Unknown ids fail with a
// not-found condition: writes are strict where reads are lenient.
func (r *Registry) UpdateCase(id string, p Patch) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.cases[id]
	if !ok {
		return Record{}, common.NewAppError("CASE_NOT_FOUND", "case "+id+" not found", common.ErrNotFound)
	}
	if p.Status != nil {
		e.status = *p.Status
	}
	if p.ProgressPercent != nil {
		e.progressPercent = *p.ProgressPercent
	}
	for k, v := range p.Timestamps {
		e.timestamps[k] = v
	}
	return e.snapshot(), nil
}

// Exists reports whether a case is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.cases[id]
	return ok
}

// GetCaseStatus returns the current record, or a default empty record for an
// unknown id. Read-side leniency is deliberate.
func (r *Registry) GetCaseStatus(id string) Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.cases[id]
	if !ok {
		return Record{Timestamps: map[string]string{}}
	}
	return e.snapshot()
}

// ToResponse is the read contract surfaced outside the core.
func (r *Registry) ToResponse(id string) Record {
	return r.GetCaseStatus(id)
}

func (e *entry) snapshot() Record {
	p := e.progressPercent
	return Record{
		Status:          e.status,
		Timestamps:      maps.Clone(e.timestamps),
		ProgressPercent: &p,
	}
}
