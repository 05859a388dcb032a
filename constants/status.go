package constants

// CaseStatus is the canonical status for entries in the case registry.
type CaseStatus string

// Stable values (external pollers match on these exact strings).
const (
	CaseCreated       CaseStatus = "case_created"       // case registered, nothing running yet
	AnalyzingIssue    CaseStatus = "analyzing_issue"    // analysis sub-phase in progress
	AnalysisCompleted CaseStatus = "analysis_completed" // analysis finished successfully
	AnalysisFailed    CaseStatus = "analysis_failed"    // analysis finished degraded

	// Set by adjacent workflow stages outside the analysis sub-phase.
	CaseClassified CaseStatus = "classified"
	CaseAnalyzed   CaseStatus = "analyzed"
)

// Timestamp keys recorded in the registry. Append-only per case.
const (
	TSCreatedAt           = "created_at"
	TSAnalysisStartedAt   = "analysis_started_at"
	TSAnalysisCompletedAt = "analysis_completed_at"
)
