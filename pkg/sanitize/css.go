package sanitize

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// layoutProperties may be set inline on an iframe-wrapper.
var layoutProperties = map[string]struct{}{
	"height":         {},
	"margin":         {},
	"margin-bottom":  {},
	"margin-left":    {},
	"margin-right":   {},
	"margin-top":     {},
	"max-height":     {},
	"max-width":      {},
	"min-height":     {},
	"min-width":      {},
	"padding":        {},
	"padding-bottom": {},
	"padding-left":   {},
	"padding-right":  {},
	"padding-top":    {},
	"width":          {},
}

var lengthUnits = map[string]struct{}{
	"ch":   {},
	"cm":   {},
	"em":   {},
	"ex":   {},
	"in":   {},
	"mm":   {},
	"pc":   {},
	"pt":   {},
	"px":   {},
	"rem":  {},
	"vh":   {},
	"vmax": {},
	"vmin": {},
	"vw":   {},
}

// maxWrapperStyleLen bounds the style values handed to the scanner, which is quadratic on some
// unterminated tokens. Real wrapper styles are a few dozen bytes.
const maxWrapperStyleLen = 512

// styleDecoder accumulates the declarations that survive validation.
type styleDecoder struct {
	decls    []string
	property string
	values   []string
}

// Handle token, return next state.
type styleState func(d *styleDecoder, t *scanner.Token) styleState

// sanitizeWrapperStyle keeps the declarations of style that only size or space the element,
// with values made of numbers, percentages and lengths. Anything else, functions and url()
// included, drops the whole declaration. The result is a fixed point of this function.
func sanitizeWrapperStyle(style string) string {
	if len(style) > maxWrapperStyleLen {
		return ""
	}
	d := &styleDecoder{}
	scan := scanner.New(style)
	state := stateProperty
	for {
		t := scan.Next()
		switch t.Type {
		case scanner.TokenEOF:
			d.commit()
			return strings.Join(d.decls, "; ")
		case scanner.TokenError:
			return ""
		}
		state = state(d, t)
	}
}

func (d *styleDecoder) commit() {
	if d.property != "" && len(d.values) > 0 {
		d.decls = append(d.decls, d.property+": "+strings.Join(d.values, " "))
	}
	d.discard()
}

func (d *styleDecoder) discard() {
	d.property = ""
	d.values = d.values[:0]
}

func stateProperty(d *styleDecoder, t *scanner.Token) styleState {
	switch t.Type {
	case scanner.TokenS:
		return stateProperty
	case scanner.TokenIdent:
		name := strings.ToLower(t.Value)
		if _, ok := layoutProperties[name]; !ok {
			return stateSkip
		}
		d.property = name
		return stateColon
	case scanner.TokenChar:
		if t.Value == ";" {
			return stateProperty
		}
	}
	return stateSkip
}

func stateColon(d *styleDecoder, t *scanner.Token) styleState {
	switch {
	case t.Type == scanner.TokenS:
		return stateColon
	case t.Type == scanner.TokenChar && t.Value == ":":
		return stateValue
	}
	d.discard()
	return stateSkip
}

func stateValue(d *styleDecoder, t *scanner.Token) styleState {
	switch t.Type {
	case scanner.TokenS:
		return stateValue
	case scanner.TokenNumber, scanner.TokenPercentage:
		d.values = append(d.values, t.Value)
		return stateValue
	case scanner.TokenDimension:
		if isLength(t.Value) {
			d.values = append(d.values, t.Value)
			return stateValue
		}
	case scanner.TokenChar:
		if t.Value == ";" {
			d.commit()
			return stateProperty
		}
	}
	d.discard()
	return stateSkip
}

// stateSkip throws tokens away until the end of the current declaration.
func stateSkip(d *styleDecoder, t *scanner.Token) styleState {
	if t.Type == scanner.TokenChar && t.Value == ";" {
		return stateProperty
	}
	return stateSkip
}

// isLength reports whether a dimension token uses a length unit.
func isLength(dimension string) bool {
	unit := strings.TrimLeft(dimension, "0123456789.")
	_, ok := lengthUnits[strings.ToLower(unit)]
	return ok
}
