package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vamshi737/smartestimator/metrics"
	"github.com/vamshi737/smartestimator/pipeline"
	"github.com/vamshi737/smartestimator/pricing"
)

var runFlags struct {
	mode      string
	prices    string
	input     string
	outdir    string
	tesseract string

	inHeightFt      float64
	inIntOpeningsM2 float64
	inExtOpeningsM2 float64

	usHeightFt        float64
	usOpeningsExtSqft float64
	usOpeningsIntSqft float64
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an estimate end to end",
	Long: `Run an estimate end to end: geometry, regional takeoffs, pricing
and, in "all" mode, the report artifacts. Without --input the run uses
the built-in sample dimensions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := pricing.Load(runFlags.prices)
		if err != nil {
			return err
		}
		store, err := pipeline.NewStore(runFlags.outdir)
		if err != nil {
			return err
		}
		runner := pipeline.New(pipeline.Config{
			Store:        store,
			Book:         book,
			TesseractCmd: runFlags.tesseract,
		})

		runID := uuid.NewString()[:8]
		if _, err := store.CreateRun(runID); err != nil {
			return err
		}
		opts := pipeline.Options{
			Mode:              runFlags.mode,
			INHeightFt:        runFlags.inHeightFt,
			INIntOpeningsM2:   runFlags.inIntOpeningsM2,
			INExtOpeningsM2:   runFlags.inExtOpeningsM2,
			USHeightFt:        runFlags.usHeightFt,
			USOpeningsExtSqft: runFlags.usOpeningsExtSqft,
			USOpeningsIntSqft: runFlags.usOpeningsIntSqft,
		}
		if runFlags.input != "" {
			f, err := os.Open(runFlags.input)
			if err != nil {
				return err
			}
			planPath, serr := store.SaveUpload(runID, filepath.Base(runFlags.input), f)
			f.Close()
			if serr != nil {
				return serr
			}
			opts.PlanPath = planPath
		}

		metrics.ActiveRuns.WithLabelValues("cli").Inc()
		defer metrics.ActiveRuns.WithLabelValues("cli").Dec()
		result, err := runner.Run(cmd.Context(), runID, opts, func(ev pipeline.Event) {
			line := fmt.Sprintf("-> %s %s", ev.Stage, ev.Status)
			if ev.Error != "" {
				line += ": " + ev.Error
			}
			fmt.Println(line)
		})
		if err != nil {
			return err
		}

		fmt.Printf("run %s finished in %s\n", runID,
			result.EndTime.Sub(result.StartTime).Round(time.Millisecond))
		for _, name := range result.Artifacts {
			path, perr := store.ArtifactPath(runID, name)
			if perr != nil {
				continue
			}
			fmt.Println("   " + path)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runFlags.mode, "mode", "all",
		`"india", "usa", "both" or "all" (adds reports and validation)`)
	runCmd.Flags().StringVar(&runFlags.prices, "prices", "prices.json", "price book JSON file")
	runCmd.Flags().StringVar(&runFlags.input, "input", "", "plan image to run OCR on")
	runCmd.Flags().StringVar(&runFlags.outdir, "outdir", "data", "directory for run artifacts")
	runCmd.Flags().StringVar(&runFlags.tesseract, "tesseract", "", "tesseract command; empty disables OCR")
	runCmd.Flags().Float64Var(&runFlags.inHeightFt, "in_height_ft", 10, "India wall height in feet")
	runCmd.Flags().Float64Var(&runFlags.inIntOpeningsM2, "in_int_openings_m2", 0, "India interior openings area (m2)")
	runCmd.Flags().Float64Var(&runFlags.inExtOpeningsM2, "in_ext_openings_m2", 0, "India exterior openings area (m2)")
	runCmd.Flags().Float64Var(&runFlags.usHeightFt, "us_height_ft", 8, "USA wall height in feet")
	runCmd.Flags().Float64Var(&runFlags.usOpeningsExtSqft, "us_openings_ext_sqft", 0, "USA exterior openings area (sqft)")
	runCmd.Flags().Float64Var(&runFlags.usOpeningsIntSqft, "us_openings_int_sqft", 0, "USA interior openings area (sqft)")
	rootCmd.AddCommand(runCmd)
}
