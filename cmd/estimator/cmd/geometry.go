package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/vision"
)

var geometryFlags struct {
	dims     string
	outArea  string
	outWalls string
}

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Derive room and wall metrics from extracted dimensions",
	Long: `Derive room and wall metrics from extracted dimensions. A missing
or empty dimension file falls back to the built-in sample room.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dims := &vision.DimSet{}
		if geometryFlags.dims != "" {
			if err := readJSONFile(geometryFlags.dims, dims); err != nil {
				return err
			}
		}
		rects := vision.Rectangles(dims.Dims)
		area := vision.BuildAreaMetrics(rects)
		walls := vision.BuildWallMetrics(rects)
		if err := writeJSONFile(geometryFlags.outArea, area); err != nil {
			return err
		}
		if err := writeJSONFile(geometryFlags.outWalls, walls); err != nil {
			return err
		}
		fmt.Printf("%d rooms, %.1f sqft, perimeter %.1f ft\n",
			len(area.Rooms), area.TotalAreaSqft, walls.TotalPerimeterFt)
		return nil
	},
}

func init() {
	geometryCmd.Flags().StringVar(&geometryFlags.dims, "dims", "", "dimension JSON from the ocr step")
	geometryCmd.Flags().StringVar(&geometryFlags.outArea, "out_area", "metrics_area.json", "output area metrics path")
	geometryCmd.Flags().StringVar(&geometryFlags.outWalls, "out_walls", "metrics_walls.json", "output wall metrics path")
	rootCmd.AddCommand(geometryCmd)
}
