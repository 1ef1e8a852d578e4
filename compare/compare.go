// Package compare performs order-insensitive line comparison of two files.
//
// Lines are treated as sets with occurrence counts, so the comparison reports
// which lines exist only in one file and where shared lines appear a different
// number of times, regardless of ordering.
package compare

import (
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/altgrove/searchgate/errors"
)

// Options controls line normalization before comparison.
type Options struct {
	// IgnoreWhitespace strips leading and trailing whitespace from each line.
	IgnoreWhitespace bool
	// IgnoreCase lowercases lines before comparing.
	IgnoreCase bool
	// IncludeEmpty keeps empty lines in the comparison. Default drops them.
	IncludeEmpty bool
}

// Comparator compares two files line by line, ignoring order.
type Comparator struct {
	opts Options
}

// NewComparator creates a comparator with the given options.
func NewComparator(opts Options) *Comparator {
	return &Comparator{opts: opts}
}

// FrequencyPair holds occurrence counts for a line present in both files.
type FrequencyPair struct {
	File1 int `json:"file1"`
	File2 int `json:"file2"`
}

// Frequencies maps lines to their occurrence counts.
type Frequencies struct {
	Common      map[string]FrequencyPair `json:"common"`
	OnlyInFile1 map[string]int           `json:"only_in_file1"`
	OnlyInFile2 map[string]int           `json:"only_in_file2"`
}

// Stats is the numeric overview of a comparison.
type Stats struct {
	File1TotalLines     int `json:"file1_total_lines"`
	File2TotalLines     int `json:"file2_total_lines"`
	File1UniqueLines    int `json:"file1_unique_lines"`
	File2UniqueLines    int `json:"file2_unique_lines"`
	CommonLines         int `json:"common_lines"`
	OnlyInFile1         int `json:"only_in_file1"`
	OnlyInFile2         int `json:"only_in_file2"`
	FrequencyMismatches int `json:"frequency_mismatches"`
}

// Report is the structured result of comparing two files.
type Report struct {
	File1       string      `json:"file1"`
	File2       string      `json:"file2"`
	Stats       Stats       `json:"stats"`
	OnlyInFile1 []string    `json:"only_in_file1"`
	OnlyInFile2 []string    `json:"only_in_file2"`
	Common      []string    `json:"common"`
	Frequencies Frequencies `json:"frequencies"`
}

// HasDifferences reports whether either file has lines the other lacks.
func (r *Report) HasDifferences() bool {
	return r.Stats.OnlyInFile1 > 0 || r.Stats.OnlyInFile2 > 0
}

// normalizeLine applies the configured normalization to a line.
func (c *Comparator) normalizeLine(line string) string {
	if c.opts.IgnoreWhitespace {
		line = strings.TrimSpace(line)
	}
	if c.opts.IgnoreCase {
		line = strings.ToLower(line)
	}
	return line
}

// filterLines drops empty lines unless they are included by configuration.
func (c *Comparator) filterLines(lines []string) []string {
	if c.opts.IncludeEmpty {
		return lines
	}
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if c.opts.IgnoreWhitespace {
			if strings.TrimSpace(line) == "" {
				continue
			}
		} else if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// readLines reads a file and splits it into lines without line terminators.
// Non-UTF-8 content is decoded as Latin-1 so binary-ish text files still
// compare byte for byte.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CodeNotFound, "file not found: %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var content string
	if utf8.Valid(data) {
		content = string(data)
	} else {
		content = decodeLatin1(data)
	}

	// A trailing newline does not produce a final empty line.
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil, nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines, nil
}

// decodeLatin1 maps each byte to the Unicode code point of the same value.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// fileLines holds the line collections derived from one input file.
type fileLines struct {
	total  int
	counts map[string]int
}

func (c *Comparator) loadFile(path string) (*fileLines, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	filtered := c.filterLines(lines)
	counts := make(map[string]int, len(filtered))
	for _, line := range filtered {
		counts[c.normalizeLine(line)]++
	}

	return &fileLines{total: len(lines), counts: counts}, nil
}

// Compare reads both files and returns their line-set differences.
func (c *Comparator) Compare(file1, file2 string) (*Report, error) {
	f1, err := c.loadFile(file1)
	if err != nil {
		return nil, err
	}
	f2, err := c.loadFile(file2)
	if err != nil {
		return nil, err
	}

	var onlyIn1, onlyIn2, common []string
	for line := range f1.counts {
		if _, ok := f2.counts[line]; ok {
			common = append(common, line)
		} else {
			onlyIn1 = append(onlyIn1, line)
		}
	}
	for line := range f2.counts {
		if _, ok := f1.counts[line]; !ok {
			onlyIn2 = append(onlyIn2, line)
		}
	}
	sort.Strings(onlyIn1)
	sort.Strings(onlyIn2)
	sort.Strings(common)

	commonFreq := make(map[string]FrequencyPair, len(common))
	mismatches := 0
	for _, line := range common {
		pair := FrequencyPair{File1: f1.counts[line], File2: f2.counts[line]}
		commonFreq[line] = pair
		if pair.File1 != pair.File2 {
			mismatches++
		}
	}
	only1Freq := make(map[string]int, len(onlyIn1))
	for _, line := range onlyIn1 {
		only1Freq[line] = f1.counts[line]
	}
	only2Freq := make(map[string]int, len(onlyIn2))
	for _, line := range onlyIn2 {
		only2Freq[line] = f2.counts[line]
	}

	return &Report{
		File1: file1,
		File2: file2,
		Stats: Stats{
			File1TotalLines:     f1.total,
			File2TotalLines:     f2.total,
			File1UniqueLines:    len(f1.counts),
			File2UniqueLines:    len(f2.counts),
			CommonLines:         len(common),
			OnlyInFile1:         len(onlyIn1),
			OnlyInFile2:         len(onlyIn2),
			FrequencyMismatches: mismatches,
		},
		OnlyInFile1: onlyIn1,
		OnlyInFile2: onlyIn2,
		Common:      common,
		Frequencies: Frequencies{
			Common:      commonFreq,
			OnlyInFile1: only1Freq,
			OnlyInFile2: only2Freq,
		},
	}, nil
}
