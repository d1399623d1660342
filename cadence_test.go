package cadence

import (
	"image/color"
	"testing"
)

func TestColorToRGBAPremultipliesAndClamps(t *testing.T) {
	cases := []struct {
		in   Color
		want color.RGBA
	}{
		{ColorWhite, color.RGBA{255, 255, 255, 255}},
		{Color{R: 1, G: 0, B: 0, A: 0.5}, color.RGBA{128, 0, 0, 128}},
		{Color{R: 2, G: -1, B: 0.5, A: 1}, color.RGBA{255, 0, 128, 255}},
		{Color{R: 1, G: 1, B: 1, A: 0}, color.RGBA{}},
	}
	for _, c := range cases {
		if got := c.in.toRGBA(); got != c.want {
			t.Errorf("%+v.toRGBA() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTaskStateTerminal(t *testing.T) {
	for _, s := range []TaskState{TaskScheduled, TaskRunning, TaskSuspended} {
		if s.Terminal() {
			t.Errorf("%v should not be terminal", s)
		}
	}
	for _, s := range []TaskState{TaskDone, TaskCancelled, TaskFailed} {
		if !s.Terminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
}
