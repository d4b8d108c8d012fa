package escomplex

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/codeinsights/schema"
)

// Module is one measured file taking part in project analysis.
type Module struct {
	Path   string
	Report *schema.ComplexityReport
}

// AnalyzeProject averages module metrics and, unless skipMatrix is set, builds the
// dependency matrices over modules sorted by path.
func AnalyzeProject(modules []Module, skipMatrix bool) schema.ProjectReport {
	var project schema.ProjectReport
	for _, m := range modules {
		project.LOC += m.Report.LOC
		project.Cyclomatic += m.Report.Cyclomatic
		project.Effort += m.Report.Effort
		project.Params += m.Report.Params
		project.Maintainability += m.Report.Maintainability
	}
	divisor := float64(max(len(modules), 1))
	project.LOC /= divisor
	project.Cyclomatic /= divisor
	project.Effort /= divisor
	project.Params /= divisor
	project.Maintainability /= divisor

	if skipMatrix {
		project.MatrixSkipped = true
		return project
	}

	sorted := slices.Clone(modules)
	slices.SortStableFunc(sorted, func(a, b Module) int { return strings.Compare(a.Path, b.Path) })

	n := len(sorted)
	project.MatrixPaths = make([]string, n)
	index := make(map[string]int, n)
	var exts []string
	for i, m := range sorted {
		project.MatrixPaths[i] = m.Path
		index[filepath.Clean(m.Path)] = i
		if ext := filepath.Ext(m.Path); ext != "" && !slices.Contains(exts, ext) {
			exts = append(exts, ext)
		}
	}
	slices.Sort(exts)

	project.AdjacencyMatrix = squareMatrix(n)
	edges := make([][]int, n)
	density := 0
	for i, from := range sorted {
		for _, j := range dependencyTargets(from, index, exts) {
			if j == i || project.AdjacencyMatrix[i][j] == 1 {
				continue
			}
			project.AdjacencyMatrix[i][j] = 1
			edges[i] = append(edges[i], j)
			density++
		}
	}
	project.FirstOrderDensity = percentify(float64(density), float64(n*n))

	project.VisibilityMatrix = visibility(edges)
	changeCost := 0
	for _, row := range project.VisibilityMatrix {
		for _, v := range row {
			changeCost += v
		}
	}
	project.ChangeCost = percentify(float64(changeCost), float64(n*n))
	project.CoreSize = coreSize(project.VisibilityMatrix, project.FirstOrderDensity)
	return project
}

func squareMatrix(n int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// visibility is the reflexive transitive closure of the dependency edges,
// found with one depth-first walk per module.
func visibility(edges [][]int) [][]int {
	n := len(edges)
	reach := squareMatrix(n)
	stack := make([]int, 0, n)
	for i := range n {
		reach[i][i] = 1
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			k := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, j := range edges[k] {
				if reach[i][j] == 0 {
					reach[i][j] = 1
					stack = append(stack, j)
				}
			}
		}
	}
	return reach
}

// coreSize is the share of modules whose fan-in and fan-out both reach the median.
func coreSize(visibility [][]int, firstOrderDensity float64) float64 {
	if firstOrderDensity == 0 {
		return 0
	}
	n := len(visibility)
	fanOut := make([]int, n)
	fanIn := make([]int, n)
	for i, row := range visibility {
		for j, v := range row {
			fanOut[i] += v
			fanIn[j] += v
		}
	}
	inBoundary, outBoundary := median(fanIn), median(fanOut)
	core := 0
	for i := range n {
		if float64(fanIn[i]) >= inBoundary && float64(fanOut[i]) >= outBoundary {
			core++
		}
	}
	return percentify(float64(core), float64(n))
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// dependencyTargets returns the indexes of the modules that from depends on.
// CommonJS dependencies only count when they are relative.
func dependencyTargets(from Module, index map[string]int, exts []string) []int {
	var targets []int
	for _, dep := range from.Report.Dependencies {
		if dep.Path == schema.DynamicDependency || (dep.Type == CommonJS && !isRelative(dep.Path)) {
			continue
		}
		for _, candidate := range candidates(from.Path, dep.Path, exts) {
			if j, ok := index[candidate]; ok {
				targets = append(targets, j)
			}
		}
	}
	return targets
}

func isRelative(path string) bool {
	return strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../")
}

// candidates joins a dependency onto the importing file's directory. A dependency
// without an extension may name a file or a directory index with any of exts.
func candidates(from, dependency string, exts []string) []string {
	resolved := filepath.Clean(dependency)
	if !filepath.IsAbs(dependency) {
		resolved = filepath.Join(filepath.Dir(from), dependency)
	}
	paths := []string{resolved}
	if filepath.Ext(dependency) != "" {
		return paths
	}
	for _, ext := range exts {
		paths = append(paths, resolved+ext, filepath.Join(resolved, "index"+ext))
	}
	return paths
}
