package interpret

import "strings"

// state tags the interpreter's §4.11 state machine: emissions may only
// occur while InsideText.
type state int

const (
	outside state = iota
	insideText
)

// TextDecoder turns a raw string operand for a given resource-local font
// name into Unicode text, using the font's declared encoding when the
// backend knows one and falling back per §4.1 otherwise.
type TextDecoder func(fontResourceName string, data []byte) string

// spaceThreshold is the §4.2 TJ adjustment magnitude (in 1/1000 em units)
// above which a word-space is inferred.
const spaceThreshold = 200.0

// Interpret walks a decompressed content stream's decoded operations and
// emits one TextSpan per Tj/TJ/'/" that produces non-whitespace text.
//
// fontBaseNames maps a resource-local font name (as used by Tf) to its
// base font name; an unresolved name falls back to the raw resource name,
// per §4.2's "font name recorded is the base font if known" rule.
func Interpret(ops []Operation, fontBaseNames map[string]string, decode TextDecoder) []TextSpan {
	var spans []TextSpan

	st := outside
	matrix := identityMatrix()
	fontResourceName := ""
	fontName := ""
	fontSize := 12.0

	emit := func(text string) {
		if st != insideText || strings.TrimSpace(text) == "" {
			return
		}
		x, y := matrix.position()
		spans = append(spans, NewTextSpan(text, x, y, fontSize*matrix.scale(), fontName))
	}

	for _, op := range ops {
		switch op.Operator {
		case "BT":
			st = insideText
			matrix = identityMatrix()
		case "ET":
			st = outside
		case "Tf":
			if len(op.Operands) >= 2 {
				if op.Operands[0].Kind == Name {
					fontResourceName = op.Operands[0].Text
					if base, ok := fontBaseNames[fontResourceName]; ok && base != "" {
						fontName = base
					} else {
						fontName = fontResourceName
					}
				}
				if v, ok := op.Operands[1].Number(); ok {
					fontSize = v
				} else {
					fontSize = 12.0
				}
			}
		case "Td", "TD":
			if len(op.Operands) >= 2 {
				tx, _ := op.Operands[0].Number()
				ty, _ := op.Operands[1].Number()
				matrix.translate(tx, ty)
			}
		case "Tm":
			if len(op.Operands) >= 6 {
				a, _ := op.Operands[0].Number()
				b, _ := op.Operands[1].Number()
				c, _ := op.Operands[2].Number()
				d, _ := op.Operands[3].Number()
				e, _ := op.Operands[4].Number()
				f, _ := op.Operands[5].Number()
				matrix.set(a, b, c, d, e, f)
			}
		case "T*":
			matrix.nextLine()
		case "Tj":
			if len(op.Operands) >= 1 && op.Operands[0].Kind == String {
				emit(decode(fontResourceName, op.Operands[0].Bytes))
			}
		case "TJ":
			if len(op.Operands) >= 1 && op.Operands[0].Kind == Array {
				emit(joinTJArray(op.Operands[0].Items, fontResourceName, decode))
			}
		case "'":
			matrix.nextLine()
			if len(op.Operands) >= 1 && op.Operands[0].Kind == String {
				emit(decode(fontResourceName, op.Operands[0].Bytes))
			}
		case "\"":
			matrix.nextLine()
			if len(op.Operands) >= 3 && op.Operands[2].Kind == String {
				emit(decode(fontResourceName, op.Operands[2].Bytes))
			}
		default:
			// Unmaterial operator: advance without effect.
		}
	}

	return spans
}

// joinTJArray implements the TJ space-inference rule: numeric operands
// encode kerning/spacing; an adjustment whose magnitude exceeds
// spaceThreshold inserts a single space, unless the running text is empty,
// already ends in a space/NBSP, or the last character is from a spaceless
// script.
func joinTJArray(items []Operand, fontResourceName string, decode TextDecoder) string {
	var b strings.Builder
	for _, item := range items {
		switch item.Kind {
		case String:
			b.WriteString(decode(fontResourceName, item.Bytes))
		case Integer, Real:
			v, _ := item.Number()
			adjustment := -v
			if adjustment > spaceThreshold || adjustment < -spaceThreshold {
				maybeInsertSpace(&b)
			}
		}
	}
	return b.String()
}

func maybeInsertSpace(b *strings.Builder) {
	s := b.String()
	if s == "" {
		return
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, " ") {
		return
	}
	last := lastRune(s)
	if IsSpacelessScriptChar(last) {
		return
	}
	b.WriteByte(' ')
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}
