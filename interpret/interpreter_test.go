package interpret

import "testing"

func identityDecode(_ string, data []byte) string { return string(data) }

func TestInterpretBasicSpan(t *testing.T) {
	ops := Decode([]byte("BT /F1 12 Tf 100 700 Td (Hello) Tj ET"))
	spans := Interpret(ops, map[string]string{"F1": "Helvetica"}, identityDecode)
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1: %+v", len(spans), spans)
	}
	s := spans[0]
	if s.Text != "Hello" || s.X != 100 || s.Y != 700 || s.FontName != "Helvetica" {
		t.Errorf("span = %+v", s)
	}
	if s.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", s.FontSize)
	}
}

func TestInterpretOutsideTextBlockEmitsNothing(t *testing.T) {
	ops := Decode([]byte("/F1 12 Tf (Hello) Tj"))
	spans := Interpret(ops, nil, identityDecode)
	if len(spans) != 0 {
		t.Fatalf("expected no spans outside BT/ET, got %+v", spans)
	}
}

func TestInterpretUnresolvedFontFallsBackToResourceName(t *testing.T) {
	ops := Decode([]byte("BT /F9 10 Tf 0 0 Td (x) Tj ET"))
	spans := Interpret(ops, map[string]string{}, identityDecode)
	if spans[0].FontName != "F9" {
		t.Errorf("FontName = %q, want F9", spans[0].FontName)
	}
}

func TestInterpretTmSetsMatrixAndScale(t *testing.T) {
	ops := Decode([]byte("BT /F1 10 Tf 2 0 0 2 50 60 Tm (Big) Tj ET"))
	spans := Interpret(ops, map[string]string{"F1": "F"}, identityDecode)
	s := spans[0]
	if s.X != 50 || s.Y != 60 {
		t.Errorf("position = (%v,%v), want (50,60)", s.X, s.Y)
	}
	if s.FontSize != 20 { // 10 * scale(2,0) = 10*2
		t.Errorf("FontSize = %v, want 20", s.FontSize)
	}
}

func TestInterpretTStarAdvancesLine(t *testing.T) {
	ops := Decode([]byte("BT /F1 12 Tf 0 0 Td (a) Tj T* (b) Tj ET"))
	spans := Interpret(ops, map[string]string{"F1": "F"}, identityDecode)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[1].Y != -12 {
		t.Errorf("second line Y = %v, want -12", spans[1].Y)
	}
}

func TestInterpretTJInsertsSpaceOnLargeAdjustment(t *testing.T) {
	ops := Decode([]byte(`BT /F1 12 Tf 0 0 Td [(Hello) -250 (World)] TJ ET`))
	spans := Interpret(ops, map[string]string{"F1": "F"}, identityDecode)
	if len(spans) != 1 || spans[0].Text != "Hello World" {
		t.Fatalf("spans = %+v, want single \"Hello World\"", spans)
	}
}

func TestInterpretTJSmallAdjustmentNoSpace(t *testing.T) {
	ops := Decode([]byte(`BT /F1 12 Tf 0 0 Td [(Hel) -50 (lo)] TJ ET`))
	spans := Interpret(ops, map[string]string{"F1": "F"}, identityDecode)
	if len(spans) != 1 || spans[0].Text != "Hello" {
		t.Fatalf("spans = %+v, want single \"Hello\"", spans)
	}
}

func TestInterpretApostropheOperator(t *testing.T) {
	ops := Decode([]byte("BT /F1 12 Tf (first) Tj (second) ' ET"))
	spans := Interpret(ops, map[string]string{"F1": "F"}, identityDecode)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2: %+v", len(spans), spans)
	}
	if spans[1].Y != -12 {
		t.Errorf("Y after ' = %v, want -12", spans[1].Y)
	}
}

func TestInterpretDoubleQuoteOperatorIgnoresSpacingOperands(t *testing.T) {
	ops := Decode([]byte(`BT /F1 12 Tf 1 2 (txt) " ET`))
	spans := Interpret(ops, map[string]string{"F1": "F"}, identityDecode)
	if len(spans) != 1 || spans[0].Text != "txt" {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestIsSpacelessScriptChar(t *testing.T) {
	if !IsSpacelessScriptChar('中') { // 中
		t.Error("expected CJK ideograph to be spaceless")
	}
	if IsSpacelessScriptChar('가') { // 가 (Hangul)
		t.Error("expected Hangul to use word spaces")
	}
	if IsSpacelessScriptChar('A') {
		t.Error("expected Latin letters to use word spaces")
	}
}
