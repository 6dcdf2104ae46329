package index

import (
	"errors"
	"strings"
)

// RulesetPrefix selects four-player phoenix-table south games with open
// tanyao and red fives. Fixed by design of the dataset; not configurable.
const RulesetPrefix = "四鳳南喰赤"

const (
	fieldSep  = "|"
	minFields = 4
	ruleField = 2
	linkField = 3
)

// ErrMalformedID is returned when the link field has no quoted key=value.
var ErrMalformedID = errors.New("malformed id field")

// Record is the part of one index line that matters here.
type Record struct {
	Rule    string // Trimmed rule descriptor.
	IDField string // Raw field holding the quoted link.
}

// ParseRecord splits line into a Record. It reports false for lines with
// fewer than four fields.
func ParseRecord(line string) (Record, bool) {
	segs := strings.Split(line, fieldSep)
	if len(segs) < minFields {
		return Record{}, false
	}
	return Record{
		Rule:    strings.TrimSpace(segs[ruleField]),
		IDField: segs[linkField],
	}, true
}

// Eligible reports whether the record belongs to the selected ruleset.
func (r Record) Eligible() bool {
	return strings.HasPrefix(r.Rule, RulesetPrefix)
}

// ExtractID returns the value of the first quoted key=value attribute in
// field: segment 1 after splitting on '"', then segment 1 after splitting
// that on '='.
func ExtractID(field string) (string, error) {
	quoted := strings.Split(field, `"`)
	if len(quoted) < 2 {
		return "", ErrMalformedID
	}
	kv := strings.Split(quoted[1], "=")
	if len(kv) < 2 {
		return "", ErrMalformedID
	}
	return kv[1], nil
}
