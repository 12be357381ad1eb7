package grid

import (
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

// callArgs tokenizes formula and, when it is a single call of the named
// function with literal arguments, returns those arguments. Nested calls,
// references and expressions are not evaluated.
func callArgs(formula, name string) ([]string, bool) {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if formula == "" {
		return nil, false
	}

	ps := efp.ExcelParser()
	var tokens []efp.Token
	for _, t := range ps.Parse(formula) {
		if t.TType != efp.TokenTypeWhitespace {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) < 2 {
		return nil, false
	}
	first, last := tokens[0], tokens[len(tokens)-1]
	if first.TType != efp.TokenTypeFunction || first.TSubType != efp.TokenSubTypeStart || !strings.EqualFold(first.TValue, name) {
		return nil, false
	}
	if last.TType != efp.TokenTypeFunction || last.TSubType != efp.TokenSubTypeStop {
		return nil, false
	}

	var (
		args []string
		cur  strings.Builder
	)
	for _, t := range tokens[1 : len(tokens)-1] {
		switch t.TType {
		case efp.TokenTypeArgument:
			args = append(args, cur.String())
			cur.Reset()
		case efp.TokenTypeOperand:
			if t.TSubType != efp.TokenSubTypeText && t.TSubType != efp.TokenSubTypeNumber {
				return nil, false
			}
			cur.WriteString(t.TValue)
		case efp.TokenTypeOperatorPrefix:
			cur.WriteString(t.TValue)
		default:
			return nil, false
		}
	}
	return append(args, cur.String()), true
}

// ParseImageFormula recognizes IMAGE(url, [mode], [height], [width]).
// Missing or zero mode means ImageModeFit, explicit size is only kept for
// ImageModeCustom.
func ParseImageFormula(formula string) (*ImageRef, bool) {
	args, ok := callArgs(formula, "IMAGE")
	if !ok || len(args) == 0 || len(args) > 4 || strings.TrimSpace(args[0]) == "" {
		return nil, false
	}

	ref := &ImageRef{Source: strings.TrimSpace(args[0]), Mode: ImageModeFit}
	if len(args) > 1 && args[1] != "" {
		mode, err := strconv.Atoi(args[1])
		if err != nil || mode < ImageModeFit || mode > ImageModeCustom {
			return nil, false
		}
		ref.Mode = mode
	}
	if ref.Mode != ImageModeCustom {
		return ref, true
	}
	if len(args) != 4 {
		return nil, false
	}
	h, errH := strconv.ParseFloat(args[2], 64)
	w, errW := strconv.ParseFloat(args[3], 64)
	if errH != nil || errW != nil || h <= 0 || w <= 0 {
		return nil, false
	}
	ref.Width, ref.Height = w, h
	return ref, true
}

// ParseHyperlinkFormula recognizes HYPERLINK(url, [label]). When label is
// absent url is used for display.
func ParseHyperlinkFormula(formula string) (target, display string, ok bool) {
	args, ok := callArgs(formula, "HYPERLINK")
	if !ok || len(args) == 0 || len(args) > 2 {
		return "", "", false
	}
	target = strings.TrimSpace(args[0])
	if target == "" {
		return "", "", false
	}
	display = target
	if len(args) == 2 && strings.TrimSpace(args[1]) != "" {
		display = strings.TrimSpace(args[1])
	}
	return target, display, true
}
