package main

import "testing"

func TestIsPDF(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"scan.pdf", true},
		{"scan.PDF", true},
		{"scan.Pdf", true},
		{"/tmp/out.dir/scan.pdf", true},
		{"scan.png", false},
		{"scan.jpg", false},
		{"scan", false},
		{"pdf", false},
	}
	for _, tt := range tests {
		if got := isPDF(tt.path); got != tt.want {
			t.Errorf("isPDF(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
