package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/vision"
)

var ocrFlags struct {
	input     string
	tesseract string
	out       string
}

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Extract dimension annotations from a preprocessed plan image",
	RunE: func(cmd *cobra.Command, args []string) error {
		dims, err := vision.ExtractDims(ocrFlags.tesseract, ocrFlags.input)
		if err != nil {
			return err
		}
		if err := writeJSONFile(ocrFlags.out, dims); err != nil {
			return err
		}
		fmt.Printf("found %d dimensions, wrote %s\n", len(dims.Dims), ocrFlags.out)
		return nil
	},
}

func init() {
	ocrCmd.Flags().StringVar(&ocrFlags.input, "input", "", "preprocessed plan image")
	ocrCmd.Flags().StringVar(&ocrFlags.tesseract, "tesseract", "tesseract", "tesseract command")
	ocrCmd.Flags().StringVar(&ocrFlags.out, "out", "dims.json", "output JSON path")
	ocrCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(ocrCmd)
}
