package domain

import (
	"fmt"
	"strings"

	m "github.com/glossdev/gloss/internal/model"
)

// Merger reconciles model output against the original file so that only
// comment lines are ever added, never code altered. All output-parsing
// heuristics live here so they can be unit-tested without network I/O.
type Merger struct{}

// NewMerger creates a Merger.
func NewMerger() *Merger {
	return &Merger{}
}

// lineKind classifies one line of source text.
type lineKind int

const (
	kindBlank lineKind = iota
	kindComment
	kindCode // includes mixed code-plus-trailing-comment lines
)

// classifiedLine is one line together with its comment-stripped content.
type classifiedLine struct {
	text string // verbatim line, no line ending
	kind lineKind
	code string // whitespace-normalized code tokens, empty unless kindCode
}

// Merge extracts the code from the raw model output and reconciles it with
// the original source. It never fails: malformed output degrades to the
// original text plus a warning so a single bad file cannot abort a batch.
func (g *Merger) Merge(src m.Source, resp m.CommentResponse) m.MergeResult {
	original := string(src.Raw)
	eol := detectEOL(original)
	trailingNL := strings.HasSuffix(original, "\n")

	extracted, ok := extractCode(resp.Raw)
	if !ok {
		return m.MergeResult{
			FinalText: original,
			Warnings:  []string{"model output contained no code block; original left unchanged"},
		}
	}

	profile := src.Language
	origLines := classifyLines(original, profile)
	outLines := classifyLines(extracted, profile)

	if sameCodeStream(origLines, outLines) {
		added := commentCount(outLines) - commentCount(origLines)
		if added < 0 {
			added = 0
		}

		return m.MergeResult{
			FinalText:     render(texts(outLines), eol, trailingNL),
			AddedComments: added,
		}
	}

	return fallbackMerge(origLines, outLines, eol, trailingNL)
}

// fallbackMerge keeps the original code lines untouched and re-anchors only
// those model comments that immediately precede a code line matching the
// next unmatched original code line, in order. Comments that would have to
// drift past another code line are dropped.
func fallbackMerge(origLines, outLines []classifiedLine, eol string, trailingNL bool) m.MergeResult {
	warnings := []string{"model output altered code; keeping original code lines"}

	outCodes := codeIndexes(outLines)
	origComments := commentSet(origLines)
	anchored := make(map[int]bool)

	k := 0
	added := 0

	final := make([]string, 0, len(origLines))

	for i, line := range origLines {
		if line.kind == kindCode {
			match := -1

			for kk := k; kk < len(outCodes); kk++ {
				if outLines[outCodes[kk]].code == line.code {
					match = kk
					break
				}
			}

			if match >= 0 {
				for _, ci := range precedingComments(outLines, outCodes[match]) {
					anchored[ci] = true

					if hasPrecedingComment(origLines, i, outLines[ci].text) {
						continue // already present, do not duplicate
					}

					final = append(final, outLines[ci].text)
					added++
				}

				k = match + 1
			}
		}

		final = append(final, line.text)
	}

	dropped := 0

	for idx, line := range outLines {
		if line.kind != kindComment || anchored[idx] {
			continue
		}

		if origComments[strings.TrimSpace(line.text)] {
			continue // survives as part of the original text anyway
		}

		dropped++
	}

	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d comment line(s) could not be anchored and were dropped", dropped))
	}

	return m.MergeResult{
		FinalText:     render(final, eol, trailingNL),
		AddedComments: added,
		Warnings:      warnings,
	}
}

// extractCode strips markdown fencing and surrounding prose from the raw
// model output. It returns false when no usable code remains.
func extractCode(raw string) (string, bool) {
	trimmed := strings.Trim(raw, "\r\n")
	if strings.TrimSpace(trimmed) == "" {
		return "", false
	}

	idx := strings.Index(trimmed, "```")
	if idx < 0 {
		return trimmed, true
	}

	rest := trimmed[idx+3:]

	// Drop the remainder of the fence line (usually a language tag).
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return "", false
	}

	rest = rest[nl+1:]

	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}

	rest = strings.Trim(rest, "\r\n")
	if strings.TrimSpace(rest) == "" {
		return "", false
	}

	return rest, true
}

// classifyLines splits text into lines and tags each as code, comment, or
// blank, tracking multi-line block comments across lines.
func classifyLines(text string, p m.LanguageProfile) []classifiedLine {
	rawLines := strings.Split(text, "\n")
	out := make([]classifiedLine, 0, len(rawLines))

	inBlock := false

	for _, raw := range rawLines {
		line := strings.TrimSuffix(raw, "\r")
		wasInBlock := inBlock

		var code string

		code, inBlock = stripComments(line, p, inBlock)
		norm := normalizeCode(code)

		kind := kindBlank

		switch {
		case norm != "":
			kind = kindCode
		case strings.TrimSpace(line) != "":
			kind = kindComment
		case wasInBlock:
			kind = kindComment // blank line inside a block comment
		}

		out = append(out, classifiedLine{text: line, kind: kind, code: norm})
	}

	return out
}

// stripComments removes comment content from one line given the block-
// comment state carried over from the previous line. Comment tokens inside
// string literals are a known limitation of this text-level pass; a false
// positive only makes the merge more conservative.
func stripComments(line string, p m.LanguageProfile, inBlock bool) (string, bool) {
	var b strings.Builder

	i := 0

	for i < len(line) {
		if inBlock {
			if p.BlockEnd == "" {
				return b.String(), true
			}

			end := strings.Index(line[i:], p.BlockEnd)
			if end < 0 {
				return b.String(), true
			}

			i += end + len(p.BlockEnd)
			inBlock = false

			continue
		}

		li, bi := -1, -1

		if p.LineComment != "" {
			li = strings.Index(line[i:], p.LineComment)
		}

		if p.BlockStart != "" {
			bi = strings.Index(line[i:], p.BlockStart)
		}

		if li < 0 && bi < 0 {
			b.WriteString(line[i:])
			break
		}

		if bi < 0 || (li >= 0 && li <= bi) {
			b.WriteString(line[i : i+li])
			break // rest of the line is a line comment
		}

		b.WriteString(line[i : i+bi])
		i += bi + len(p.BlockStart)
		inBlock = true
	}

	return b.String(), inBlock
}

// normalizeCode collapses insignificant whitespace in a code fragment.
func normalizeCode(code string) string {
	return strings.Join(strings.Fields(code), " ")
}

// sameCodeStream reports whether the comment-stripped token sequences of
// the two line sets are identical.
func sameCodeStream(a, b []classifiedLine) bool {
	ai := codeIndexes(a)
	bi := codeIndexes(b)

	if len(ai) != len(bi) {
		return false
	}

	for i := range ai {
		if a[ai[i]].code != b[bi[i]].code {
			return false
		}
	}

	return true
}

// codeIndexes returns the indices of kindCode lines in order.
func codeIndexes(lines []classifiedLine) []int {
	var out []int

	for i, line := range lines {
		if line.kind == kindCode {
			out = append(out, i)
		}
	}

	return out
}

// precedingComments returns the indices of the contiguous comment lines
// immediately above idx, in top-down order. A blank line breaks adjacency.
func precedingComments(lines []classifiedLine, idx int) []int {
	start := idx

	for start > 0 && lines[start-1].kind == kindComment {
		start--
	}

	out := make([]int, 0, idx-start)
	for i := start; i < idx; i++ {
		out = append(out, i)
	}

	return out
}

// hasPrecedingComment reports whether the comment block directly above
// original line i already contains text.
func hasPrecedingComment(lines []classifiedLine, i int, text string) bool {
	want := strings.TrimSpace(text)

	for j := i - 1; j >= 0 && lines[j].kind == kindComment; j-- {
		if strings.TrimSpace(lines[j].text) == want {
			return true
		}
	}

	return false
}

func commentCount(lines []classifiedLine) int {
	n := 0

	for _, line := range lines {
		if line.kind == kindComment {
			n++
		}
	}

	return n
}

func commentSet(lines []classifiedLine) map[string]bool {
	set := make(map[string]bool)

	for _, line := range lines {
		if line.kind == kindComment {
			set[strings.TrimSpace(line.text)] = true
		}
	}

	return set
}

func texts(lines []classifiedLine) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.text
	}

	return out
}

// render joins lines with the source file's line-ending convention and
// restores its trailing-newline state.
func render(lines []string, eol string, trailingNL bool) string {
	final := strings.Join(lines, eol)

	if trailingNL {
		if !strings.HasSuffix(final, "\n") {
			final += eol
		}
	} else {
		final = strings.TrimRight(final, "\r\n")
	}

	return final
}

func detectEOL(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}

	return "\n"
}
