package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultIDPrefix is the document-ID prefix used when none is configured.
const DefaultIDPrefix = "DIVAMI"

// NextDocumentID derives the next sequential document ID from the set of
// existing IDs. IDs follow the pattern PREFIX_NNN with a zero-padded numeric
// suffix of at least three digits (DIVAMI_001, DIVAMI_002, …). IDs that do
// not match the pattern are ignored, not errors.
//
// Not safe under concurrent callers: two discovery processes scanning the
// same set can allocate the same ID. The design assumes a single discovery
// run at a time.
func NextDocumentID(prefix string, existing map[string]struct{}) string {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}

	max := 0
	for id := range existing {
		suffix, ok := strings.CutPrefix(id, prefix+"_")
		if !ok || !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s_%03d", prefix, max+1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
