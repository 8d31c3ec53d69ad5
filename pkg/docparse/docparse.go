// Package docparse extracts structured documentation from a command's
// docstring: a summary line, a long description, and per-parameter
// descriptions. The rest of the module depends only on the [Docstring]
// shape, so a different parser can stand in for this one.
package docparse

import "strings"

// Docstring is the structured form of a command's documentation.
type Docstring struct {
	// Summary is the first paragraph, joined to a single line.
	Summary string

	// Detail is everything between the summary and the parameter block.
	Detail string

	// Params maps parameter names to their one-line descriptions.
	Params map[string]string
}

// Parse splits a docstring into summary, detail, and parameter
// descriptions. The accepted shape is paragraphs separated by blank lines:
// the first paragraph is the summary, and any paragraph whose every line
// looks like "name: description" is a parameter block. Indented
// continuation lines extend the previous parameter's description. Empty
// input yields an empty Docstring.
func Parse(doc string) Docstring {
	d := Docstring{Params: map[string]string{}}
	paras := paragraphs(doc)
	if len(paras) == 0 {
		return d
	}

	d.Summary = strings.Join(fields(paras[0]), " ")

	var detail []string
	for _, para := range paras[1:] {
		if params, ok := parseParams(para); ok {
			for name, desc := range params {
				d.Params[name] = desc
			}
			continue
		}
		detail = append(detail, strings.Join(para, "\n"))
	}
	d.Detail = strings.Join(detail, "\n\n")
	return d
}

// paragraphs splits doc into runs of non-blank lines.
func paragraphs(doc string) [][]string {
	var paras [][]string
	var current []string
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				paras = append(paras, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paras = append(paras, current)
	}
	return paras
}

func fields(lines []string) []string {
	var out []string
	for _, line := range lines {
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

// parseParams interprets a paragraph as a parameter block. Every line must
// either introduce a parameter ("name: description", name identifier-like)
// or be an indented continuation of the previous one.
func parseParams(lines []string) (map[string]string, bool) {
	params := map[string]string{}
	last := ""
	for _, line := range lines {
		name, desc, ok := splitParamLine(line)
		if ok {
			params[name] = desc
			last = name
			continue
		}
		if last != "" && startsIndented(line) {
			params[last] += " " + strings.TrimSpace(line)
			continue
		}
		return nil, false
	}
	return params, len(params) > 0
}

func splitParamLine(line string) (name, desc string, ok bool) {
	if startsIndented(line) {
		return "", "", false
	}
	name, desc, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if !isIdentifier(name) {
		return "", "", false
	}
	return name, strings.TrimSpace(desc), true
}

func startsIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
