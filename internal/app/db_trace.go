package app

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Two or more placeholder tuples in a row, e.g. "($1, $2), ($3, $4)".
	tupleRun = regexp.MustCompile(`\(\$\d+(?:, \$\d+)*\)(?:, \(\$\d+(?:, \$\d+)*\))+`)
	tuple    = regexp.MustCompile(`\(\$\d+(?:, \$\d+)*\)`)
)

// formatDBQueryForTrace collapses whitespace and folds batch insert tuples
// into "($1, $2) x N rows" so 500-row score upserts stay readable in traces.
func formatDBQueryForTrace(query string) string {
	query = whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " ")
	query = tupleRun.ReplaceAllStringFunc(query, func(run string) string {
		rows := tuple.FindAllString(run, -1)
		return rows[0] + " x " + strconv.Itoa(len(rows)) + " rows"
	})
	if len(query) <= maxTracedQueryLength {
		return query
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
