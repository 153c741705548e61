package interpret

import "strconv"

// Decode tokenizes a content stream into an ordered list of Operations.
// It never fails: a malformed operand is recorded as Other and the scan
// continues, matching the "never abort the page" failure policy of §4.2.
func Decode(data []byte) []Operation {
	lx := newLexer(data)
	var ops []Operation
	var pending []Operand

	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		switch tok.kind {
		case tokNumber:
			pending = append(pending, numberOperand(tok.text))
		case tokName:
			pending = append(pending, NameOperand(tok.text))
		case tokString:
			pending = append(pending, StringOperand(tok.raw, tok.text))
		case tokArrayStart:
			pending = append(pending, ArrayOperand(lx.readArrayItems()))
		case tokDictStart:
			lx.skipDict()
			pending = append(pending, OtherOperand("<<dict>>"))
		case tokOperator:
			ops = append(ops, Operation{Operator: tok.text, Operands: pending})
			pending = nil
		default:
			// stray closing delimiter with no opener: drop it
		}
	}
	return ops
}

func numberOperand(text string) Operand {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return OtherOperand(text)
	}
	for _, c := range text {
		if c == '.' || c == 'e' || c == 'E' {
			return RealOperand(f)
		}
	}
	return IntOperand(int64(f))
}

// readArrayItems consumes tokens up to and including the matching array
// close, returning the decoded items. Nested arrays recurse.
func (lx *lexer) readArrayItems() []Operand {
	var items []Operand
	for {
		tok, ok := lx.next()
		if !ok || tok.kind == tokArrayEnd {
			return items
		}
		switch tok.kind {
		case tokNumber:
			items = append(items, numberOperand(tok.text))
		case tokName:
			items = append(items, NameOperand(tok.text))
		case tokString:
			items = append(items, StringOperand(tok.raw, tok.text))
		case tokArrayStart:
			items = append(items, ArrayOperand(lx.readArrayItems()))
		case tokDictStart:
			lx.skipDict()
			items = append(items, OtherOperand("<<dict>>"))
		default:
			// operator-looking token inside an array is malformed content;
			// keep it as Other and continue rather than aborting the page.
			items = append(items, OtherOperand(tok.text))
		}
	}
}
