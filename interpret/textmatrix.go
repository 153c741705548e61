package interpret

import "math"

// textMatrix tracks the PDF text-space-to-device-space transform across a
// text object, per the six-element `[a b c d e f]` form of §4.2.
type textMatrix struct {
	a, b, c, d, e, f float64
	lineY            float64
}

func identityMatrix() textMatrix {
	return textMatrix{a: 1, d: 1}
}

func (m *textMatrix) set(a, b, c, d, e, f float64) {
	m.a, m.b, m.c, m.d, m.e, m.f = a, b, c, d, e, f
	m.lineY = f
}

// translate implements Td/TD: e += tx*a + ty*c, f += tx*b + ty*d.
func (m *textMatrix) translate(tx, ty float64) {
	m.e += tx*m.a + ty*m.c
	m.f += tx*m.b + ty*m.d
	if ty != 0 {
		m.lineY = m.f
	}
}

// nextLine implements T*/'/": advance to the next line using the default
// 12-unit leading, f -= 12*d.
func (m *textMatrix) nextLine() {
	m.f -= 12 * m.d
	m.lineY = m.f
}

func (m *textMatrix) position() (float64, float64) {
	return m.e, m.f
}

// scale is the vertical scale factor applied to the current font size,
// scale = sqrt(a^2 + c^2).
func (m *textMatrix) scale() float64 {
	return math.Sqrt(m.a*m.a + m.c*m.c)
}
