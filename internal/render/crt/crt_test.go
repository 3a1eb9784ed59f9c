package crt

import (
	"math"
	"testing"
)

func TestScanlineRows(t *testing.T) {
	rows := ScanlineRows(5)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows for height 5, got %d", len(rows))
	}
	for i, y := range rows {
		if y != i*2 {
			t.Errorf("Row %d: expected y %d, got %d", i, i*2, y)
		}
	}
	if ScanlineRows(0) != nil {
		t.Errorf("Expected no rows for an empty image")
	}
}

func TestFlicker(t *testing.T) {
	// sin(12t) peaks at t = pi/24
	if !Flicker(math.Pi / 24) {
		t.Errorf("Expected flicker at the sine peak")
	}
	if Flicker(0) {
		t.Errorf("Did not expect flicker at t=0")
	}
}

func TestShaderSourceEmbedded(t *testing.T) {
	if len(shaderSrc) == 0 {
		t.Fatalf("Expected the shader source to be embedded")
	}
}
