package position

import "testing"

func pos(line, col, off int) Position {
	return Position{Filename: "test.veld", Line: line, Column: col, Offset: off}
}

func TestSpanContains(t *testing.T) {
	span := Span{Start: pos(1, 1, 0), End: pos(1, 6, 5)}

	tests := []struct {
		name string
		p    Position
		want bool
	}{
		{"start is inside", pos(1, 1, 0), true},
		{"middle is inside", pos(1, 3, 2), true},
		{"end is outside", pos(1, 6, 5), false},
		{"past end is outside", pos(2, 1, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := span.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSpanContainsSpan(t *testing.T) {
	outer := Span{Start: pos(1, 1, 0), End: pos(1, 11, 10)}
	inner := Span{Start: pos(1, 3, 2), End: pos(1, 8, 7)}

	if !outer.ContainsSpan(inner) {
		t.Errorf("outer should contain inner")
	}
	if inner.ContainsSpan(outer) {
		t.Errorf("inner should not contain outer")
	}
	if !outer.ContainsSpan(outer) {
		t.Errorf("a span should contain itself")
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{Start: pos(1, 1, 0), End: pos(1, 4, 3)}
	b := Span{Start: pos(1, 6, 5), End: pos(1, 9, 8)}
	u := a.Union(b)
	if u.Start.Offset != 0 || u.End.Offset != 8 {
		t.Errorf("Union = %v, want offsets [0,8)", u)
	}
	// Union with an invalid span returns the valid one.
	if got := a.Union(Span{}); got != a {
		t.Errorf("Union with zero span = %v, want %v", got, a)
	}
}

func TestSourceFileLines(t *testing.T) {
	sf := NewSourceFile("test.veld", "let x = 1\nlet y = 2\n\nfn main() {}\n")

	if got := sf.NumLines(); got != 5 {
		t.Errorf("NumLines() = %d, want 5", got)
	}

	tests := []struct {
		line int
		want string
	}{
		{1, "let x = 1"},
		{2, "let y = 2"},
		{3, ""},
		{4, "fn main() {}"},
	}
	for _, tt := range tests {
		if got := sf.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}

	if got := sf.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
	if got := sf.GetLine(99); got != "" {
		t.Errorf("GetLine(99) = %q, want empty", got)
	}
}

func TestPositionFromOffset(t *testing.T) {
	sf := NewSourceFile("test.veld", "ab\ncd\nef")

	tests := []struct {
		offset   int
		line     int
		column   int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 3, 2},
	}
	for _, tt := range tests {
		got := sf.PositionFromOffset(tt.offset)
		if got.Line != tt.line || got.Column != tt.column {
			t.Errorf("PositionFromOffset(%d) = %d:%d, want %d:%d",
				tt.offset, got.Line, got.Column, tt.line, tt.column)
		}
	}
}

func TestGetSpanText(t *testing.T) {
	content := "let name = value"
	sf := NewSourceFile("test.veld", content)
	span := Span{Start: pos(1, 5, 4), End: pos(1, 9, 8)}
	if got := sf.GetSpanText(span); got != "name" {
		t.Errorf("GetSpanText = %q, want %q", got, "name")
	}
}

func TestPositionString(t *testing.T) {
	p := pos(3, 7, 42)
	if got := p.String(); got != "test.veld:3:7" {
		t.Errorf("String() = %q, want %q", got, "test.veld:3:7")
	}
}
