package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/report"
	"github.com/vamshi737/smartestimator/vision"
)

var wallsFlags struct {
	lines    string
	imageW   float64
	imageH   float64
	marginPx float64
	out      string
	outLines string
	outCSV   string
}

var wallsCmd = &cobra.Command{
	Use:   "walls",
	Short: "Classify extracted line segments into exterior and interior walls",
	Long: `Classify extracted line segments into exterior and interior walls
and total their lengths. The input is a scaled-lines JSON file: pixel
segments plus the manual per-pixel scale. Segments ending within
--margin_px of the image border count as exterior.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sl, err := vision.LoadScaledLines(wallsFlags.lines)
		if err != nil {
			return err
		}
		m := vision.ClassifyLines(sl, wallsFlags.imageW, wallsFlags.imageH, wallsFlags.marginPx)
		walls, err := m.WallTotals()
		if err != nil {
			return err
		}
		if wallsFlags.outLines != "" {
			if err := writeJSONFile(wallsFlags.outLines, m); err != nil {
				return err
			}
		}
		if wallsFlags.outCSV != "" {
			if err := report.WriteLinesCSV(wallsFlags.outCSV, m); err != nil {
				return err
			}
		}
		if err := writeJSONFile(wallsFlags.out, walls); err != nil {
			return err
		}
		fmt.Printf("exterior %.1f ft, interior %.1f ft, wrote %s\n",
			walls.SumExteriorFt, walls.SumInteriorFt, wallsFlags.out)
		return nil
	},
}

func init() {
	wallsCmd.Flags().StringVar(&wallsFlags.lines, "lines", "", "scaled-lines JSON file")
	wallsCmd.Flags().Float64Var(&wallsFlags.imageW, "image_w", 0, "source image width in pixels")
	wallsCmd.Flags().Float64Var(&wallsFlags.imageH, "image_h", 0, "source image height in pixels")
	wallsCmd.Flags().Float64Var(&wallsFlags.marginPx, "margin_px", 25, "border margin for the exterior class")
	wallsCmd.Flags().StringVar(&wallsFlags.out, "out", "metrics_walls.json", "output wall metrics path")
	wallsCmd.Flags().StringVar(&wallsFlags.outLines, "out_lines", "", "optional classified-lines JSON path")
	wallsCmd.Flags().StringVar(&wallsFlags.outCSV, "out_csv", "", "optional classified-lines CSV path")
	wallsCmd.MarkFlagRequired("lines")
	wallsCmd.MarkFlagRequired("image_w")
	wallsCmd.MarkFlagRequired("image_h")
	rootCmd.AddCommand(wallsCmd)
}
