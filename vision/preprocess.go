// Package vision turns a floor-plan image into geometry the takeoff
// packages can price: it preprocesses the raster for OCR, extracts
// dimension annotations, and maps them to room and wall metrics.
package vision

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// maxSide is the longest image side kept for processing. Anything larger is
// downscaled first so OCR stays snappy on phone-camera scans.
const maxSide = 3000

// Preprocess loads the plan image at inPath, normalizes it for OCR
// (downscale, grayscale, mild blur, Otsu binarization) and writes the
// binarized image to outPath. PNG output is recommended.
func Preprocess(inPath, outPath string) error {
	img, err := imaging.Open(inPath)
	if err != nil {
		return fmt.Errorf("vision: cannot read input image %s: %w", inPath, err)
	}
	bw := prepare(img)
	if err := imaging.Save(bw, outPath); err != nil {
		return fmt.Errorf("vision: cannot write %s: %w", outPath, err)
	}
	return nil
}

func prepare(img image.Image) *image.Gray {
	b := img.Bounds()
	if w, h := b.Dx(), b.Dy(); w > maxSide || h > maxSide {
		if w >= h {
			img = imaging.Resize(img, maxSide, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxSide, imaging.Lanczos)
		}
	}
	gray := imaging.Grayscale(img)
	// A light blur knocks out scanner speckle without eating thin
	// dimension strokes.
	gray = imaging.Blur(gray, 0.6)
	return binarize(gray)
}

// binarize applies Otsu's threshold and returns black text on white, the
// polarity tesseract expects. Plans exported with dark backgrounds come out
// mostly black after thresholding, so the result is inverted in that case.
func binarize(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	var hist [256]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// Luma on 8-bit channels; imaging.Grayscale already equalized
			// the channels but decode paths differ, so recompute.
			v := uint8((299*(r>>8) + 587*(g>>8) + 114*(bl>>8)) / 1000)
			gray.SetGray(x, y, color.Gray{Y: v})
			hist[v]++
		}
	}
	th := otsu(hist[:], b.Dx()*b.Dy())

	dark := 0
	total := b.Dx() * b.Dy()
	for i := range gray.Pix {
		if gray.Pix[i] <= th {
			gray.Pix[i] = 0
			dark++
		} else {
			gray.Pix[i] = 255
		}
	}
	if dark*2 > total {
		for i := range gray.Pix {
			gray.Pix[i] = 255 - gray.Pix[i]
		}
	}
	return gray
}

// otsu picks the threshold maximizing between-class variance of hist.
func otsu(hist []int, total int) uint8 {
	var sum float64
	for v, n := range hist {
		sum += float64(v) * float64(n)
	}
	var sumB, wB float64
	var best float64
	var threshold uint8
	for v, n := range hist {
		wB += float64(n)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(v) * float64(n)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(v)
		}
	}
	return threshold
}
