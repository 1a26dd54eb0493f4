package domain

// ClassificationState is the disjoint outcome of the dead classifier
// (spec.md §3/§4.7/GLOSSARY).
type ClassificationState string

const (
	StateFullyDead    ClassificationState = "fully_dead"
	StatePartiallyDead ClassificationState = "partially_dead"
	StateLive         ClassificationState = "live"
)

// ExportStatus reports whether a single export of a partially-dead file
// has any recorded consumer.
type ExportStatus struct {
	Name string `json:"name"`
	Live bool   `json:"live"`
}

// GitHistory is the per-file git-history enrichment attached to fully-dead
// records (spec.md §4.7). When git is unavailable or the file is untracked,
// Available is false and Reason explains why (spec.md §7).
type GitHistory struct {
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
	LastModified    string `json:"last_modified,omitempty"`
	CreatedCommit   string `json:"created_commit,omitempty"`
	Author          string `json:"author,omitempty"`
	DaysSinceModified int  `json:"days_since_modified,omitempty"`
}

// CostImpact is the estimated bandwidth/CO2 cost of a dead file continuing
// to ship in a bundle (spec.md §4.7), derived from EngineConfig.MonthlyTrafficGB.
type CostImpact struct {
	BandwidthCostUSD float64 `json:"bandwidth_cost_usd"`
	CO2Grams         float64 `json:"co2_grams"`
}

// Recommendation is the human-facing payload attached to a fully-dead file.
type Recommendation struct {
	VerifyFirstCommand string `json:"verify_first_command"`
	Message            string `json:"message"`
}

// DeadFileRecord is a fully-dead file, the minimal shape from spec.md §6's
// Output record.
type DeadFileRecord struct {
	Path    string   `json:"path"`
	Language Language `json:"language"`
	Size    int64    `json:"size"`
	Lines   int      `json:"lines"`
	Exports []string `json:"exports"`
	Partial bool     `json:"partial"`
}

// PartialFileRecord is a reachable file with at least one unused export
// (spec.md §6's Output record, richer `exports` shape).
type PartialFileRecord struct {
	Path        string         `json:"path"`
	Language    Language       `json:"language"`
	Size        int64          `json:"size"`
	Lines       int            `json:"lines"`
	Exports     []ExportStatus `json:"exports"`
	DeadExports []string       `json:"dead_exports"`
	Partial     bool           `json:"partial"`
}

// FullyDeadFile is the richer record spec.md §6 names separately from
// DeadFileRecord: git history, cost impact, and a removal recommendation.
type FullyDeadFile struct {
	DeadFileRecord
	Git            GitHistory      `json:"git"`
	Cost           CostImpact      `json:"cost"`
	Recommendation Recommendation  `json:"recommendation"`
}

// PartiallyDeadFile is the richer record for partial-dead files, paired
// with FullyDeadFile as spec.md §6 names them.
type PartiallyDeadFile struct {
	PartialFileRecord
}

// EntryPointRecord is the lean entry-point shape spec.md §6 names.
type EntryPointRecord struct {
	File      string `json:"file"`
	Reason    string `json:"reason"`
	IsDynamic bool   `json:"is_dynamic"`
}

// Summary is the aggregate scan summary (spec.md §6).
type Summary struct {
	TotalFiles      int              `json:"total_files"`
	EntryPoints     int              `json:"entry_points"`
	ReachableFiles  int              `json:"reachable_files"`
	DeadFiles       int              `json:"dead_files"`
	PartialFiles    int              `json:"partial_files"`
	DeadRate        string           `json:"dead_rate"` // percent string, e.g. "12.34%"
	TotalDeadBytes  int64            `json:"total_dead_bytes"`
	Languages       map[Language]int `json:"languages"`
}

// ScanResult is the top-level output record of one scan (spec.md §6),
// extended with GeneratedAt/Version the way the teacher's own response
// records always are (domain/dependency_graph.go's DependencyGraphResponse).
type ScanResult struct {
	DeadFiles   []DeadFileRecord    `json:"dead_files"`
	PartialFiles []PartialFileRecord `json:"partial_files"`
	EntryPoints []EntryPointRecord  `json:"entry_points"`
	Summary     Summary             `json:"summary"`

	SkippedDynamic    []string `json:"skipped_dynamic,omitempty"`
	ExcludedGenerated []string `json:"excluded_generated,omitempty"`

	FullyDeadFiles     []FullyDeadFile     `json:"fully_dead_files"`
	PartiallyDeadFiles []PartiallyDeadFile `json:"partially_dead_files"`

	ElapsedSeconds float64      `json:"elapsed_seconds"`
	Diagnostics    Diagnostics  `json:"diagnostics,omitempty"`

	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// ProgressEvent is emitted at each stage boundary and periodically within
// parsing (spec.md §5/§6).
type ProgressEvent struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// ProgressFunc is the callback signature the engine drives progress through.
type ProgressFunc func(ProgressEvent)
