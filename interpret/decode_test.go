package interpret

import "testing"

func TestDecodeSimpleOperator(t *testing.T) {
	ops := Decode([]byte("BT /F1 12 Tf 100 700 Td (Hello) Tj ET"))
	want := []string{"BT", "Tf", "Td", "Tj", "ET"}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops, want %d: %+v", len(ops), len(want), ops)
	}
	for i, op := range ops {
		if op.Operator != want[i] {
			t.Errorf("op[%d] = %q, want %q", i, op.Operator, want[i])
		}
	}
}

func TestDecodeTfOperands(t *testing.T) {
	ops := Decode([]byte("/F1 12 Tf"))
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	op := ops[0]
	if len(op.Operands) != 2 {
		t.Fatalf("got %d operands, want 2", len(op.Operands))
	}
	if op.Operands[0].Kind != Name || op.Operands[0].Text != "F1" {
		t.Errorf("operand[0] = %+v, want Name F1", op.Operands[0])
	}
	if op.Operands[1].Kind != Integer || op.Operands[1].Int != 12 {
		t.Errorf("operand[1] = %+v, want Integer 12", op.Operands[1])
	}
}

func TestDecodeLiteralStringEscapes(t *testing.T) {
	ops := Decode([]byte(`(Line1\nLine2\) esc) Tj`))
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	str := ops[0].Operands[0]
	if str.Kind != String {
		t.Fatalf("operand kind = %v, want String", str.Kind)
	}
	want := "Line1\nLine2) esc"
	if str.Text != want {
		t.Errorf("decoded = %q, want %q", str.Text, want)
	}
}

func TestDecodeHexString(t *testing.T) {
	ops := Decode([]byte("<48656C6C6F> Tj"))
	if ops[0].Operands[0].Text != "Hello" {
		t.Errorf("decoded = %q, want Hello", ops[0].Operands[0].Text)
	}
}

func TestDecodeTJArray(t *testing.T) {
	ops := Decode([]byte(`[(Hello) -250 (World)] TJ`))
	op := ops[0]
	if len(op.Operands) != 1 || op.Operands[0].Kind != Array {
		t.Fatalf("expected single Array operand, got %+v", op.Operands)
	}
	items := op.Operands[0].Items
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Text != "Hello" || items[2].Text != "World" {
		t.Errorf("items = %+v", items)
	}
	if items[1].Kind != Integer || items[1].Int != -250 {
		t.Errorf("items[1] = %+v, want Integer -250", items[1])
	}
}

func TestDecodeUnknownOperatorIsNotFatal(t *testing.T) {
	ops := Decode([]byte("1 0 0 RG q 100 700 Td (x) Tj Q"))
	foundTj := false
	for _, op := range ops {
		if op.Operator == "Tj" {
			foundTj = true
		}
	}
	if !foundTj {
		t.Fatalf("expected Tj to survive unknown operators: %+v", ops)
	}
}

func TestDecodeSkipsInlineDict(t *testing.T) {
	ops := Decode([]byte("<< /MC1 << /Nested 1 >> >> BDC (x) Tj EMC"))
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3: %+v", len(ops), ops)
	}
	if ops[0].Operator != "BDC" || ops[1].Operator != "Tj" || ops[2].Operator != "EMC" {
		t.Errorf("ops = %+v", ops)
	}
}
