package vision

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// planImage draws dark "strokes" on a light background.
func planImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(230)
			if x%20 == 0 || y%20 == 0 {
				v = 30
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestBinarizeSeparatesStrokes(t *testing.T) {
	bw := binarize(planImage(100, 100))
	black, white := 0, 0
	for _, p := range bw.Pix {
		switch p {
		case 0:
			black++
		case 255:
			white++
		default:
			t.Fatalf("non-binary pixel value %d", p)
		}
	}
	if black == 0 || white == 0 {
		t.Fatalf("binarize collapsed to one class: black=%d white=%d", black, white)
	}
	// Strokes are sparse; background must remain the majority class.
	if white <= black {
		t.Errorf("expected white background majority, got black=%d white=%d", black, white)
	}
}

func TestBinarizeInvertsDarkBackground(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			v := uint8(20) // dark background
			if x%10 == 0 {
				v = 240 // light strokes
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	bw := binarize(img)
	white := 0
	for _, p := range bw.Pix {
		if p == 255 {
			white++
		}
	}
	if white*2 <= len(bw.Pix) {
		t.Errorf("dark-background image was not inverted: %d/%d white", white, len(bw.Pix))
	}
}

func TestPreprocessRoundtrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plan.png")
	out := filepath.Join(dir, "preproc.png")

	fp, err := os.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(fp, planImage(64, 48)); err != nil {
		t.Fatal(err)
	}
	fp.Close()

	if err := Preprocess(in, out); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not written: %v", err)
	}

	if err := Preprocess(filepath.Join(dir, "missing.png"), out); err == nil {
		t.Error("expected error for missing input")
	}
}
