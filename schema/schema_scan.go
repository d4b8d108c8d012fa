package schema

// LOCStats is the line count of one scanned file.
type LOCStats struct {
	FileRecord
	Lines int `json:"lines"`
}

// LOCTotals summarizes a lines-of-code scan.
type LOCTotals struct {
	Files     int            `json:"files"`
	Lines     int            `json:"lines"`
	Average   float64        `json:"average"`
	Max       int            `json:"max"`
	MaxPath   string         `json:"max_path"`
	Histogram map[string]int `json:"histogram"`
	Top       []LOCStats     `json:"top"`
	Bottom    []LOCStats     `json:"bottom"`
}

// LOCResult is everything the loc tool reports.
type LOCResult struct {
	Files  []LOCStats `json:"files"`
	Totals LOCTotals  `json:"totals"`
}

// DuplicateGroup is a set of files sharing one base name.
type DuplicateGroup struct {
	Name      string       `json:"name"`
	Files     []FileRecord `json:"files"`
	Identical bool         `json:"identical"` // every copy has the same content
}

// DuplicateTotals summarizes a duplicate-name scan.
type DuplicateTotals struct {
	Files         int `json:"files"`
	DuplicateName int `json:"duplicate_names"`
	MaxCopies     int `json:"max_copies"`
}

// DuplicateResult is everything the dup-names tool reports.
type DuplicateResult struct {
	Groups []DuplicateGroup `json:"groups"`
	Totals DuplicateTotals  `json:"totals"`
}
