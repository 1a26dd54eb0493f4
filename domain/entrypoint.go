package domain

// EntrySource tags where an entry point signal came from (spec.md §3).
type EntrySource string

const (
	EntryConvention    EntrySource = "convention"
	EntryPackageJSON   EntrySource = "packageJson"
	EntryHTML          EntrySource = "html"
	EntryBundlerConfig EntrySource = "bundlerConfig"
	EntryCIConfig      EntrySource = "ciConfig"
	EntryBuildSystem   EntrySource = "buildSystem"
	EntryDIAnnotation  EntrySource = "diAnnotation"
)

// EntryPoint is one seed for the reachability walk (spec.md §3/§4.4).
type EntryPoint struct {
	File       string      `json:"file"`
	Reason     string      `json:"reason"`
	Source     EntrySource `json:"source"`
	IsDynamic  bool        `json:"is_dynamic,omitempty"`
	Confidence float64     `json:"confidence"`
}

// Sentinel specifier names used in ExportUsageMap (spec.md §3/§4.6).
const (
	UsageAll         = "__ALL__"
	UsageSideEffect  = "__SIDE_EFFECT__"
	UsageStar        = "*"
	UsageDefault     = "default"
)

// ExportUsage records one consumer of a named export.
type ExportUsage struct {
	ImporterFile string `json:"importer_file"`
	ImportType   ImportType `json:"import_type"`
}

// ExportUsageMap is, per target file, a map from symbol name (or a sentinel)
// to the list of files that consumed it. Built incrementally during the
// reachability walk (spec.md §3).
type ExportUsageMap map[string]map[string][]ExportUsage

// NewExportUsageMap returns an empty usage map.
func NewExportUsageMap() ExportUsageMap { return make(ExportUsageMap) }

// Record registers that `importer` consumed `symbol` from `target`.
func (m ExportUsageMap) Record(target, symbol, importer string, typ ImportType) {
	byFile, ok := m[target]
	if !ok {
		byFile = make(map[string][]ExportUsage)
		m[target] = byFile
	}
	byFile[symbol] = append(byFile[symbol], ExportUsage{ImporterFile: importer, ImportType: typ})
}

// Has reports whether `target` has any recorded usage at all.
func (m ExportUsageMap) Has(target string) bool {
	_, ok := m[target]
	return ok
}

// HasGlobalSentinel reports whether target's usage includes __ALL__ or *.
func (m ExportUsageMap) HasGlobalSentinel(target string) bool {
	byFile, ok := m[target]
	if !ok {
		return false
	}
	_, all := byFile[UsageAll]
	_, star := byFile[UsageStar]
	return all || star
}

// Symbols returns target's recorded usage map (nil if none recorded).
func (m ExportUsageMap) Symbols(target string) map[string][]ExportUsage {
	return m[target]
}

// ReachableSet is the set of file paths visited by the reachability walk.
type ReachableSet map[string]bool

// NewReachableSet returns an empty set.
func NewReachableSet() ReachableSet { return make(ReachableSet) }

func (s ReachableSet) Add(path string) { s[path] = true }
func (s ReachableSet) Has(path string) bool { return s[path] }
