package extract

import (
	"bufio"
	"regexp"
	"strings"

	"artcat/internal/catalog"
)

// descLookahead bounds how far below a tool declaration the
// pattern-based strategy searches for its description.
const descLookahead = 10

var (
	toolDeclRe = regexp.MustCompile(`(?:name=|@server\.call_tool\(["'])([a-zA-Z_][a-zA-Z0-9_]*)(?:["']|,)`)
	toolDescRe = regexp.MustCompile(`description\s*=\s*["'](.*?)["']`)
	kwargRe    = regexp.MustCompile(`(name|description)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// ToolExtractor pulls tool registrations out of a server source file.
// It first matches the structured Tool(...) call shape, taking only
// literal keyword arguments; files where that shape never appears fall
// back to line-pattern matching with a bounded description lookahead.
type ToolExtractor struct {
	cats *Categorizer
}

func (e *ToolExtractor) Kind() catalog.Kind { return catalog.KindTool }

func (e *ToolExtractor) Extract(content, path, origin string) ([]catalog.Record, error) {
	records := e.extractCalls(content, path, origin)
	if len(records) == 0 {
		records = e.extractPatterns(content, path, origin)
	}
	return records, nil
}

// extractCalls walks Tool( ... ) call sites and reads name= and
// description= keyword arguments, literal string values only.
func (e *ToolExtractor) extractCalls(content, path, origin string) []catalog.Record {
	var records []catalog.Record

	for idx := 0; ; {
		call := strings.Index(content[idx:], "Tool(")
		if call < 0 {
			break
		}
		call += idx

		// Reject matches inside a longer identifier, e.g. MyTool(.
		if call > 0 && isIdentChar(content[call-1]) {
			idx = call + len("Tool(")
			continue
		}

		body, end := balancedParens(content, call+len("Tool"))
		if end < 0 {
			break
		}
		idx = end

		var name, desc string
		for _, m := range kwargRe.FindAllStringSubmatch(body, -1) {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			switch m[1] {
			case "name":
				if name == "" {
					name = value
				}
			case "description":
				if desc == "" {
					desc = value
				}
			}
		}

		if name == "" {
			continue
		}

		records = append(records, catalog.Record{
			Kind:        catalog.KindTool,
			Origin:      origin,
			Category:    e.cats.Categorize(name, desc, origin),
			Name:        name,
			Description: desc,
			Status:      catalog.StatusActive,
			SourcePath:  path,
		})
	}

	return records
}

// extractPatterns is the text-matching fallback: a declaration line
// names the tool, and the description counts only when it appears
// within the lookahead window below it.
func (e *ToolExtractor) extractPatterns(content, path, origin string) []catalog.Record {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	var records []catalog.Record
	seen := map[string]bool{}

	for i, line := range lines {
		m := toolDeclRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true

		desc := ""
		for j := i; j < len(lines) && j < i+descLookahead; j++ {
			if dm := toolDescRe.FindStringSubmatch(lines[j]); dm != nil {
				desc = dm[1]
				break
			}
		}

		records = append(records, catalog.Record{
			Kind:        catalog.KindTool,
			Origin:      origin,
			Category:    e.cats.Categorize(name, desc, origin),
			Name:        name,
			Description: desc,
			Status:      catalog.StatusActive,
			SourcePath:  path,
		})
	}

	return records
}

// balancedParens returns the text between the paren at start and its
// matching close, skipping parens inside string literals. end is the
// offset just past the close paren, or -1 when unbalanced.
func balancedParens(s string, start int) (body string, end int) {
	if start >= len(s) || s[start] != '(' {
		return "", -1
	}

	depth := 0
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[start+1 : i], i + 1
			}
		}
	}

	return "", -1
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
