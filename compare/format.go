package compare

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ANSI escape sequences used by FormatText.
const (
	ansiRed    = "\033[91m"
	ansiGreen  = "\033[92m"
	ansiYellow = "\033[93m"
	ansiBlue   = "\033[94m"
	ansiWhite  = "\033[97m"
	ansiBold   = "\033[1m"
	ansiReset  = "\033[0m"
)

// TextOptions controls FormatText rendering.
type TextOptions struct {
	// ShowCommon also lists lines present in both files.
	ShowCommon bool
	// Color emits ANSI escape codes.
	Color bool
}

// countSuffix marks lines that occur more than once.
func countSuffix(count int) string {
	if count > 1 {
		return fmt.Sprintf(" (%dx)", count)
	}
	return ""
}

// commonSuffix marks common lines whose occurrence counts differ.
func commonSuffix(freq FrequencyPair) string {
	if freq.File1 == freq.File2 {
		return ""
	}
	return fmt.Sprintf(" (File1: %dx, File2: %dx)", freq.File1, freq.File2)
}

type textPalette struct {
	red, green, blue, yellow, suffix, bold, reset string
}

func newPalette(color bool) textPalette {
	if !color {
		return textPalette{}
	}
	return textPalette{
		red:    ansiRed,
		green:  ansiGreen,
		blue:   ansiBlue,
		yellow: ansiYellow,
		suffix: ansiWhite,
		bold:   ansiBold,
		reset:  ansiReset,
	}
}

func appendDifferenceBlock(out *[]string, p textPalette, lines []string, header, symbol, color, emptyMessage string, freqs map[string]int) {
	if len(lines) == 0 {
		*out = append(*out, p.green+emptyMessage+p.reset, "")
		return
	}
	*out = append(*out, p.bold+color+header+":"+p.reset)
	for _, line := range lines {
		count := freqs[line]
		if count == 0 {
			count = 1
		}
		entry := fmt.Sprintf("  %s%s %s%s", color, symbol, line, p.reset)
		if suffix := countSuffix(count); suffix != "" {
			entry += p.suffix + suffix + p.reset
		}
		*out = append(*out, entry)
	}
	*out = append(*out, "")
}

// FormatText renders the report as human-readable text.
func FormatText(r *Report, opts TextOptions) string {
	p := newPalette(opts.Color)
	var out []string

	out = append(out,
		p.bold+"=== File Comparison ==="+p.reset,
		"File 1: "+r.File1,
		"File 2: "+r.File2,
		"",
	)

	mismatchColor := ""
	mismatchReset := ""
	if opts.Color && r.Stats.FrequencyMismatches > 0 {
		mismatchColor = p.yellow
		mismatchReset = p.reset
	}

	out = append(out,
		p.bold+"Statistics:"+p.reset,
		fmt.Sprintf("  File 1: %d total lines, %d unique lines", r.Stats.File1TotalLines, r.Stats.File1UniqueLines),
		fmt.Sprintf("  File 2: %d total lines, %d unique lines", r.Stats.File2TotalLines, r.Stats.File2UniqueLines),
		fmt.Sprintf("  %sCommon lines: %d%s", p.green, r.Stats.CommonLines, p.reset),
		fmt.Sprintf("  %sOnly in File 1: %d%s", p.red, r.Stats.OnlyInFile1, p.reset),
		fmt.Sprintf("  %sOnly in File 2: %d%s", p.blue, r.Stats.OnlyInFile2, p.reset),
		fmt.Sprintf("  %sFrequency mismatches: %d%s", mismatchColor, r.Stats.FrequencyMismatches, mismatchReset),
		"",
	)

	appendDifferenceBlock(&out, p, r.OnlyInFile1, "Lines only in File 1", "-", p.red,
		"No lines unique to File 1", r.Frequencies.OnlyInFile1)
	appendDifferenceBlock(&out, p, r.OnlyInFile2, "Lines only in File 2", "+", p.blue,
		"No lines unique to File 2", r.Frequencies.OnlyInFile2)

	if opts.ShowCommon && len(r.Common) > 0 {
		out = append(out, p.bold+p.green+"Common lines:"+p.reset)
		for _, line := range r.Common {
			entry := fmt.Sprintf("  %s= %s%s", p.green, line, p.reset)
			if suffix := commonSuffix(r.Frequencies.Common[line]); suffix != "" {
				entry += p.suffix + suffix + p.reset
			}
			out = append(out, entry)
		}
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}

// FormatJSON renders the report as JSON.
func FormatJSON(r *Report, pretty bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatSimple renders a terse diff-style listing of unique lines.
func FormatSimple(r *Report) string {
	var out []string

	appendSection := func(symbol, header string, lines []string, counts map[string]int) {
		if len(lines) == 0 {
			return
		}
		out = append(out, header)
		for _, line := range lines {
			count := counts[line]
			if count == 0 {
				count = 1
			}
			out = append(out, fmt.Sprintf("%s %s%s", symbol, line, countSuffix(count)))
		}
		out = append(out, "")
	}

	appendSection("<", fmt.Sprintf("< Lines only in %s:", r.File1), r.OnlyInFile1, r.Frequencies.OnlyInFile1)
	appendSection(">", fmt.Sprintf("> Lines only in %s:", r.File2), r.OnlyInFile2, r.Frequencies.OnlyInFile2)

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
