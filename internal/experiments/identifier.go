// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiments

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	identifierUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	underscoreRuns   = regexp.MustCompile(`_+`)
)

// sanitizeIdentifier makes a value safe for use inside a run identifier.
func sanitizeIdentifier(value string) string {
	s := identifierUnsafe.ReplaceAllString(value, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// filenameReplacer maps characters that are unsafe in filenames.
var filenameReplacer = strings.NewReplacer(
	".", "_", "/", "_", `\`, "_", " ", "_", ":", "_",
	"*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
)

// sanitizeFilename makes a value safe for use in a generated file name.
func sanitizeFilename(value string) string {
	return underscoreRuns.ReplaceAllString(filenameReplacer.Replace(value), "_")
}

// expandDateFields substitutes the $DATE*, $DATETIME*, and $FILE fields an
// identifier prefix may carry. Longer field names are replaced first so
// $DATETIME0 is not eaten by $DATETIME.
func expandDateFields(prefix, filename string, now time.Time) string {
	prefix = strings.ReplaceAll(prefix, "$DATETIME0", now.Format("2006-01-02_15:04:05"))
	prefix = strings.ReplaceAll(prefix, "$DATETIME1", now.Format("20060102-15:04:05"))
	prefix = strings.ReplaceAll(prefix, "$DATETIME", now.Format("20060102150405"))
	prefix = strings.ReplaceAll(prefix, "$DATE0", now.Format("2006-01-02"))
	prefix = strings.ReplaceAll(prefix, "$DATE1", now.Format("20060102"))
	prefix = strings.ReplaceAll(prefix, "$DATE", now.Format("20060102"))
	prefix = strings.ReplaceAll(prefix, "$FILE", filename)
	return prefix
}

// identifier builds the $IDENTIFIER value for one parameter set:
// prefix_PARAM1_VALUE1_PARAM2_VALUE2_... with keys in sorted order.
func identifier(params map[string]any, prefix, filename string, now time.Time) string {
	var parts []string
	if prefix != "" {
		parts = append(parts, expandDateFields(prefix, filename, now))
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if k != "name" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		parts = append(parts,
			fmt.Sprintf("%s_%s", sanitizeIdentifier(k), sanitizeIdentifier(formatValue(params[k]))))
	}

	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, "_")
}

// formatValue renders a parameter value the way it should appear in
// generated files and identifiers.
func formatValue(v any) string {
	return fmt.Sprintf("%v", v)
}
