package vision

import (
	"fmt"
	"strings"

	pipe "gopkg.in/m-lab/pipe.v3"

	"github.com/vamshi737/smartestimator/logging"
	"github.com/vamshi737/smartestimator/units"
)

// tesseractArgs restricts recognition to the characters dimension
// annotations are made of. PSM 6 treats the plan as a uniform block of
// text, which works better than full page segmentation on drawings.
var tesseractArgs = []string{
	"stdout", "--psm", "6",
	"-c", `tessedit_char_whitelist=0123456789xX'"’-`,
}

// DimSet is the OCR stage output: every annotation that parsed as a
// dimension, in reading order.
type DimSet struct {
	Dims []units.Dimension `json:"dims"`
}

// ExtractDims runs the external tesseract binary on the preprocessed image
// at imgPath and parses dimension annotations out of its output. The
// tesseract command may be overridden (e.g. a full path) via cmd; an empty
// cmd means "tesseract" from PATH.
func ExtractDims(cmd, imgPath string) (*DimSet, error) {
	if cmd == "" {
		cmd = "tesseract"
	}
	args := append([]string{imgPath}, tesseractArgs...)
	stdout, stderr, err := pipe.DividedOutput(
		pipe.Script("Recognize dimension annotations",
			pipe.Exec(cmd, args...)))
	if err != nil {
		return nil, fmt.Errorf("vision: %s failed: %v (stderr: %s)",
			cmd, err, strings.TrimSpace(string(stderr)))
	}
	set := ParseDims(string(stdout))
	logging.Logger.WithField("dims", len(set.Dims)).Debug("OCR complete")
	return set, nil
}

// ParseDims extracts dimensions from raw OCR text, one candidate per line.
// Lines that do not parse are dropped; OCR output is mostly noise and the
// grammar in the units package is the filter.
func ParseDims(raw string) *DimSet {
	set := &DimSet{Dims: []units.Dimension{}}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d, err := units.ParseDimension(line)
		if err != nil {
			continue
		}
		set.Dims = append(set.Dims, d)
	}
	return set
}
