package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet. Only .class and #id selectors are kept (a comma list is
// split into one rule per selector); other selectors and @rules are skipped. Later rules
// override earlier for the same selector. Malformed declarations are dropped and the
// first syntax error is returned alongside everything that did parse.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)

	var firstErr error
	var current []int // indexes of the rules opened by the current ruleset
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !p.HasParseError() {
				if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
					return sheet, fmt.Errorf("css: %w", err)
				}
				return sheet, firstErr
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("css: %w", p.Err())
			}
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			current = current[:0]
			if atDepth > 0 {
				continue
			}
			for _, sel := range strings.Split(tokens(p.Values()), ",") {
				sel = strings.TrimSpace(sel)
				if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') || strings.ContainsAny(sel[1:], " .#:>[") {
					continue
				}
				current = append(current, len(sheet.Rules))
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: make(map[string]string)})
			}
		case css.EndRulesetGrammar:
			current = current[:0]
		case css.DeclarationGrammar:
			if atDepth > 0 {
				continue
			}
			k := string(data)
			v := strings.TrimSpace(tokens(p.Values()))
			for _, i := range current {
				sheet.Rules[i].Props[k] = v
			}
		}
	}
}

func tokens(ts []css.Token) string {
	var b strings.Builder
	for _, t := range ts {
		b.Write(t.Data)
	}
	return b.String()
}
