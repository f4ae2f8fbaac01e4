package report

import (
	"fmt"
	"strconv"
	"strings"
)

// BandSize is the number of pages shown per band of a large report
const BandSize = 80

// Band is an inclusive range of page numbers
type Band struct {
	Start int
	End   int
}

// String returns the "start-end" form accepted by ParseSelection
func (b Band) String() string { return fmt.Sprintf("%d-%d", b.Start, b.End) }

// Label is the human-readable band name
func (b Band) Label() string { return fmt.Sprintf("Pages %d - %d", b.Start, b.End) }

// Bands splits total pages into consecutive bands of BandSize
func Bands(total int) []Band {
	var out []Band
	for start := 1; start <= total; start += BandSize {
		out = append(out, Band{Start: start, End: min(start+BandSize-1, total)})
	}
	return out
}

// Selection filters which pages are displayed. It never changes the page
// sequence itself.
type Selection struct {
	All  bool
	Band Band
}

// SelectAll shows every page
var SelectAll = Selection{All: true}

// ParseSelection reads "all" or a "start-end" page range
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return SelectAll, nil
	}
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return Selection{}, fmt.Errorf("page range %q: want start-end or all", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return Selection{}, fmt.Errorf("page range %q: %w", s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return Selection{}, fmt.Errorf("page range %q: %w", s, err)
	}
	if start < 1 || end < start {
		return Selection{}, fmt.Errorf("page range %q is empty", s)
	}
	return Selection{Band: Band{Start: start, End: end}}, nil
}

// DefaultSelection shows the first band of reports longer than one band
// and everything otherwise
func DefaultSelection(total int) Selection {
	if total > BandSize {
		return Selection{Band: Bands(total)[0]}
	}
	return SelectAll
}

// Visible reports whether the 1-based page number is displayed
func (s Selection) Visible(page int) bool {
	if s.All {
		return true
	}
	return page >= s.Band.Start && page <= s.Band.End
}

// String returns "all" or the band range
func (s Selection) String() string {
	if s.All {
		return "all"
	}
	return s.Band.String()
}
