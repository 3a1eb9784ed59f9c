package clock

import (
	"math"
	"testing"
	"time"
)

func TestFrame(t *testing.T) {
	c := Frame{Max: 0.033}
	start := time.Unix(100, 0)

	if dt := c.Tick(start); dt != 0 {
		t.Fatalf("Expected first tick to be 0, got %f", dt)
	}
	if dt := c.Tick(start.Add(10 * time.Millisecond)); math.Abs(dt-0.01) > 1e-9 {
		t.Errorf("Expected 0.01, got %f", dt)
	}
	if dt := c.Tick(start.Add(2 * time.Second)); dt != 0.033 {
		t.Errorf("Expected long frame to be capped at 0.033, got %f", dt)
	}
	if dt := c.Tick(start); dt != 0 {
		t.Errorf("Expected backwards clock to give 0, got %f", dt)
	}

	c.Reset()
	if dt := c.Tick(start.Add(time.Hour)); dt != 0 {
		t.Errorf("Expected first tick after Reset to be 0, got %f", dt)
	}
}

func TestFrameWithoutCap(t *testing.T) {
	var c Frame
	start := time.Unix(0, 0)
	c.Tick(start)
	if dt := c.Tick(start.Add(time.Second)); dt != 1 {
		t.Errorf("Expected uncapped clock to return 1, got %f", dt)
	}
}
