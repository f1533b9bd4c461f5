package views

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/glamour"
	log "github.com/sirupsen/logrus"
)

// leafJSON sorts object keys so the same record always prints the same way
var leafJSON = sonic.Config{SortMapKeys: true}.Froze()

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// LeafOptions controls how a leaf payload is printed
type LeafOptions struct {
	Indent      int
	LineNumbers bool
	Highlight   bool
}

// LeafRenderer pretty-prints leaf payloads
type LeafRenderer struct {
	styles *Styles
	opts   LeafOptions
	term   *glamour.TermRenderer
}

// NewLeafRenderer creates a leaf renderer. Highlighting falls back to plain
// text if the glamour renderer cannot be built.
func NewLeafRenderer(styles *Styles, opts LeafOptions) *LeafRenderer {
	r := &LeafRenderer{styles: styles, opts: opts}
	if opts.Highlight {
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(0),
		)
		if err != nil {
			log.WithError(err).Warn("syntax highlighting disabled")
		} else {
			r.term = term
		}
	}
	return r
}

// FormatJSON prints v as JSON indented by indent spaces
func FormatJSON(v any, indent int) (string, error) {
	out, err := leafJSON.MarshalIndent(v, "", strings.Repeat(" ", indent))
	if err != nil {
		return "", fmt.Errorf("failed to format payload: %w", err)
	}
	return string(out), nil
}

// Plain returns the formatted JSON without line numbers or colors, as
// handed to the pager
func (r *LeafRenderer) Plain(v any) string {
	text, err := FormatJSON(v, r.opts.Indent)
	if err != nil {
		log.WithError(err).Warn("leaf payload could not be formatted")
		return fmt.Sprintf("%v", v)
	}
	return text
}

// Render returns the leaf as shown in the main view
func (r *LeafRenderer) Render(v any) string {
	text := r.Plain(v)
	if r.term != nil {
		if highlighted, err := r.term.Render("```json\n" + text + "\n```"); err == nil {
			text = trimBlankLines(highlighted)
		} else {
			log.WithError(err).Debug("highlighting failed")
		}
	}
	if r.opts.LineNumbers {
		text = r.numberLines(text)
	}
	return text
}

func (r *LeafRenderer) numberLines(text string) string {
	lines := strings.Split(text, "\n")
	width := len(strconv.Itoa(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.styles.LineNumber.Render(fmt.Sprintf("%*d", width, i+1)))
		b.WriteString("  ")
		b.WriteString(line)
	}
	return b.String()
}

// trimBlankLines drops the margin lines glamour puts around a block
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(stripANSI(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(stripANSI(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
