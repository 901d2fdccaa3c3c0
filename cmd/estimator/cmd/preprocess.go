package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/vision"
)

var preprocessFlags struct {
	input string
	out   string
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Clean a plan image for OCR",
	Long: `Clean a plan image for OCR: grayscale, contrast stretch and a
binarization pass, written as a PNG.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := vision.Preprocess(preprocessFlags.input, preprocessFlags.out); err != nil {
			return err
		}
		fmt.Println("wrote " + preprocessFlags.out)
		return nil
	},
}

func init() {
	preprocessCmd.Flags().StringVar(&preprocessFlags.input, "input", "", "plan image (png or jpeg)")
	preprocessCmd.Flags().StringVar(&preprocessFlags.out, "out", "pre.png", "output image path")
	preprocessCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(preprocessCmd)
}
