package report

import (
	"regexp"
	"strings"

	"github.com/alexiusacademia/gorcdraft/internal/bs8110"
)

var (
	calcPrefix  = regexp.MustCompile(`Calc(ulation)?:`)
	resultSplit = regexp.MustCompile(`Result:|Conclusion:`)
	passOrOK    = regexp.MustCompile(`(?i)pass|ok`)
)

// ParseLog converts one free-text calculation log line into a block. Empty
// lines and table dividers yield no block.
func ParseLog(line string) (Block, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, false
	}
	if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
		return parseTableRow(trimmed)
	}

	ref := bs8110.ReferenceFor(line)
	switch {
	case strings.Contains(line, "Formula:"):
		_, content, _ := strings.Cut(line, "Formula:")
		if i := strings.Index(content, "Formula:"); i >= 0 {
			content = content[:i]
		}
		return Row{Ref: bs8110.Code, Calc: strings.TrimSpace(content)}, true
	case strings.Contains(line, "Calc:") || strings.Contains(line, "Calculation:"):
		content := line
		if loc := calcPrefix.FindStringIndex(line); loc != nil {
			content = line[:loc[0]] + line[loc[1]:]
		}
		return Row{Ref: ref, Calc: strings.TrimSpace(content)}, true
	case resultSplit.MatchString(line):
		parts := resultSplit.Split(line, 3)
		return Row{Ref: ref, Calc: strings.TrimSpace(parts[0]), Out: strings.TrimSpace(parts[1])}, true
	case strings.Contains(line, "Value:"):
		parts := strings.Split(line, "Value:")
		return Row{Ref: ref, Calc: strings.TrimSpace(parts[0]), Out: strings.TrimSpace(parts[1])}, true
	case strings.HasPrefix(line, "["):
		return SubHeader{Text: line}, true
	}

	if passOrOK.MatchString(line) {
		return Row{Ref: ref, Calc: strings.TrimSpace(passOrOK.ReplaceAllString(line, "")), Out: "PASS"}, true
	}
	return Row{Ref: ref, Calc: line}, true
}

func parseTableRow(line string) (Block, bool) {
	if strings.Contains(line, "---") {
		return nil, false
	}
	cells := strings.Split(line, "|")
	cells = cells[1 : len(cells)-1]
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	header := strings.HasPrefix(line, "| Iter |") || strings.Contains(strings.ToLower(line), "joint")
	return Table{Cells: cells, Header: header}, true
}

// ParseLogs converts a list of log lines, skipping lines that yield nothing
func ParseLogs(lines []string) []Block {
	var out []Block
	for _, l := range lines {
		if b, ok := ParseLog(l); ok {
			out = append(out, b)
		}
	}
	return out
}
