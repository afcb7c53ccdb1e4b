package pty

import "testing"

func TestSizeOf(t *testing.T) {
	tests := []struct {
		w, h int
		want Size
	}{
		{80, 24, Size{Rows: 24, Cols: 80}},
		{0, 0, Size{Rows: 1, Cols: 1}},
		{-3, 5, Size{Rows: 5, Cols: 1}},
		{70000, 2, Size{Rows: 2, Cols: 0xffff}},
	}
	for _, tt := range tests {
		if got := SizeOf(tt.w, tt.h); got != tt.want {
			t.Errorf("SizeOf(%d, %d) = %+v, want %+v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestCreackPTY_ResizeIgnoresForeignHandles(t *testing.T) {
	var c CreackPTY
	if err := c.Resize(nil, SizeOf(10, 10)); err != nil {
		t.Errorf("Resize(nil) = %v, want nil", err)
	}
}
