// Package schema has the models and constants shared by every insights tool.
package schema

// FileRecord identifies one discovered source file for the duration of a run.
type FileRecord struct {
	Path         string `json:"path"`          // Absolute path, symlinks resolved
	RelativePath string `json:"relative_path"` // Slash-separated path relative to the scan root
}

// SLOC holds source line counts.
type SLOC struct {
	Logical  int `json:"logical"`
	Physical int `json:"physical"`
}

// OperationCounts tallies Halstead operators or operands.
type OperationCounts struct {
	Distinct    int      `json:"distinct"`
	Total       int      `json:"total"`
	Identifiers []string `json:"identifiers"`
}

// Halstead holds the Halstead measures for one function or module aggregate.
type Halstead struct {
	Operators  OperationCounts `json:"operators"`
	Operands   OperationCounts `json:"operands"`
	Length     int             `json:"length"`
	Vocabulary int             `json:"vocabulary"`
	Difficulty float64         `json:"difficulty"`
	Volume     float64         `json:"volume"`
	Effort     float64         `json:"effort"`
	Bugs       float64         `json:"bugs"`
	Time       float64         `json:"time"`
}

// FunctionReport captures the metrics of a single function scope.
type FunctionReport struct {
	Name              string   `json:"name"`
	Line              int      `json:"line"`
	SLOC              SLOC     `json:"sloc"`
	Params            int      `json:"params"`
	Cyclomatic        int      `json:"cyclomatic"`
	CyclomaticDensity float64  `json:"cyclomatic_density"`
	Halstead          Halstead `json:"halstead"`
}

// Dependency is a module dependency discovered through a require call.
type Dependency struct {
	Line int    `json:"line"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// ComplexityReport is the per-file result of complexity aggregation.
// Cyclomatic, Effort, LOC and Params are averages over the file's functions.
type ComplexityReport struct {
	Maintainability float64          `json:"maintainability"`
	Cyclomatic      float64          `json:"cyclomatic"`
	Effort          float64          `json:"effort"`
	LOC             float64          `json:"loc"`
	Params          float64          `json:"params"`
	Aggregate       FunctionReport   `json:"aggregate"`
	Functions       []FunctionReport `json:"functions"`
	Dependencies    []Dependency     `json:"dependencies"`
}

// DependentModules returns the paths of every dependency in discovery order.
func (r *ComplexityReport) DependentModules() []string {
	paths := make([]string, 0, len(r.Dependencies))
	for _, d := range r.Dependencies {
		paths = append(paths, d.Path)
	}
	return paths
}

// FileResult pairs a file with its complexity report.
// Report is nil until the aggregation stage has completed.
type FileResult struct {
	FileRecord
	Report *ComplexityReport `json:"report,omitempty"`
}

// Maintainability returns the file's index. ok is false until the file has been measured.
func (f FileResult) Maintainability() (mi float64, ok bool) {
	if f.Report == nil {
		return 0, false
	}
	return f.Report.Maintainability, true
}

// ProjectReport holds cross-file metrics.
// The matrices are indexed by MatrixPaths and are empty when matrix calculation is skipped.
type ProjectReport struct {
	LOC               float64  `json:"loc"`
	Cyclomatic        float64  `json:"cyclomatic"`
	Effort            float64  `json:"effort"`
	Params            float64  `json:"params"`
	Maintainability   float64  `json:"maintainability"`
	MatrixPaths       []string `json:"matrix_paths,omitempty"`
	AdjacencyMatrix   [][]int  `json:"adjacency_matrix,omitempty"`
	VisibilityMatrix  [][]int  `json:"visibility_matrix,omitempty"`
	FirstOrderDensity float64  `json:"first_order_density"`
	ChangeCost        float64  `json:"change_cost"`
	CoreSize          float64  `json:"core_size"`
	MatrixSkipped     bool     `json:"matrix_skipped"`
}

// RunTotals summarizes one js-complex run over results in display order.
type RunTotals struct {
	Total                 int          `json:"total"`
	LowestMaintainability float64      `json:"lowest_maintainability"`
	LowestFile            *FileResult  `json:"lowest_file,omitempty"`
	LowMaintainability    []FileResult `json:"low_maintainability"`
}

// ComplexityResult is everything the js-complex tool reports.
type ComplexityResult struct {
	Files   []FileResult  `json:"files"`
	Project ProjectReport `json:"project"`
	Totals  RunTotals     `json:"totals"`
}
