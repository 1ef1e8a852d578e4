package tools

import (
	"context"
	"fmt"

	"github.com/altgrove/searchgate/compare"
)

// compareFilesTool compares two files line by line, ignoring order.
type compareFilesTool struct{}

// NewCompareFilesTool creates the compare_files tool.
func NewCompareFilesTool() Tool {
	return &compareFilesTool{}
}

func (t *compareFilesTool) Name() string { return "compare_files" }

func (t *compareFilesTool) Description() string {
	return "Compare two files line by line, ignoring line order. Reports lines unique to each file and frequency mismatches."
}

func (t *compareFilesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"file1": map[string]interface{}{
				"type":        "string",
				"description": "Path to the first file",
			},
			"file2": map[string]interface{}{
				"type":        "string",
				"description": "Path to the second file",
			},
			"ignore_whitespace": map[string]interface{}{
				"type":        "boolean",
				"description": "Ignore leading and trailing whitespace",
			},
			"ignore_case": map[string]interface{}{
				"type":        "boolean",
				"description": "Case-insensitive comparison",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Output format: report (structured, default), text, or simple",
			},
		},
		"required": []string{"file1", "file2"},
	}
}

func (t *compareFilesTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	a := Args(args)
	file1, err := a.String("file1")
	if err != nil {
		return nil, err
	}
	file2, err := a.String("file2")
	if err != nil {
		return nil, err
	}

	comparator := compare.NewComparator(compare.Options{
		IgnoreWhitespace: a.BoolOr("ignore_whitespace", false),
		IgnoreCase:       a.BoolOr("ignore_case", false),
	})
	report, err := comparator.Compare(file1, file2)
	if err != nil {
		return nil, err
	}

	switch format := a.StringOr("format", "report"); format {
	case "report":
		return report, nil
	case "text":
		return compare.FormatText(report, compare.TextOptions{}), nil
	case "simple":
		return compare.FormatSimple(report), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
