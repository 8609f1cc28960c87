package raster

import "testing"

func TestCoordinatesRowMajor(t *testing.T) {
	im := New[float32](3, 2, 1)

	want := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	var got [][2]int
	for x, y := range im.Coordinates() {
		got = append(got, [2]int{x, y})
	}

	if len(got) != len(want) {
		t.Fatalf("Coordinates yielded %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coordinate %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCoordinatesRestartable(t *testing.T) {
	im := New[float32](2, 2, 1)
	seq := im.Coordinates()

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	if first, second := count(), count(); first != 4 || second != 4 {
		t.Errorf("two passes yielded %d and %d coordinates, want 4 and 4", first, second)
	}
}

func TestCoordinatesEarlyBreak(t *testing.T) {
	im := New[float32](4, 4, 1)

	n := 0
	for range im.Coordinates() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("stopped after %d coordinates, want 3", n)
	}
}

func TestPixelsYieldsLiveViews(t *testing.T) {
	im := New[uint8](2, 2, 4)

	n := 0
	for p := range im.Pixels() {
		p.Pix[0] = uint8(10 * (n + 1))
		n++
	}
	if n != 4 {
		t.Fatalf("Pixels yielded %d pixels, want 4", n)
	}
	if im.ValueAt(1, 1, 0, false) != 40 {
		t.Errorf("last pixel channel 0 = %d, want 40", im.ValueAt(1, 1, 0, false))
	}
}

func TestMaxMinSinglePixel(t *testing.T) {
	im := New[float32](1, 1, 1)
	im.Pix[0] = 0.5

	maxPix, ok := im.Max()
	if !ok || maxPix.X != 0 || maxPix.Y != 0 || maxPix.Pix[0] != 0.5 {
		t.Errorf("Max = %v, %v; want the only pixel", maxPix, ok)
	}
	minPix, ok := im.Min()
	if !ok || minPix.X != 0 || minPix.Y != 0 || minPix.Pix[0] != 0.5 {
		t.Errorf("Min = %v, %v; want the only pixel", minPix, ok)
	}
}

func TestMaxMinUnique(t *testing.T) {
	im := New[float32](3, 3, 1)
	im.SetValueAt(2, 1, 0, false, 7)
	im.SetValueAt(0, 2, 0, false, -3)

	maxPix, ok := im.Max()
	if !ok || maxPix.X != 2 || maxPix.Y != 1 {
		t.Errorf("Max at (%d, %d), want (2, 1)", maxPix.X, maxPix.Y)
	}
	minPix, ok := im.Min()
	if !ok || minPix.X != 0 || minPix.Y != 2 {
		t.Errorf("Min at (%d, %d), want (0, 2)", minPix.X, minPix.Y)
	}
}

func TestMaxFirstOccurrenceWinsTies(t *testing.T) {
	im := New[float32](3, 2, 1)
	im.SetValueAt(1, 0, 0, false, 5)
	im.SetValueAt(2, 1, 0, false, 5)

	maxPix, ok := im.Max()
	if !ok || maxPix.X != 1 || maxPix.Y != 0 {
		t.Errorf("Max at (%d, %d), want first occurrence (1, 0)", maxPix.X, maxPix.Y)
	}
}

func TestMaxMinEmpty(t *testing.T) {
	// A zero-value Image has no pixels; New rejects such geometry, so
	// build it directly.
	im := &Image[float32]{Channels: 1}

	if _, ok := im.Max(); ok {
		t.Errorf("Max on an empty image reported a pixel")
	}
	if _, ok := im.Min(); ok {
		t.Errorf("Min on an empty image reported a pixel")
	}
}
