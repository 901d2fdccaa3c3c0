// Package pipeline runs an estimate end to end: save the plan, derive
// geometry, compute the regional takeoffs, price them and render the
// report artifacts, archiving a schema-versioned record of the run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-lab/go/prometheusx"

	"github.com/vamshi737/smartestimator/data"
	"github.com/vamshi737/smartestimator/logging"
	"github.com/vamshi737/smartestimator/metadata"
	"github.com/vamshi737/smartestimator/metrics"
	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
	"github.com/vamshi737/smartestimator/report"
	"github.com/vamshi737/smartestimator/units"
	"github.com/vamshi737/smartestimator/version"
	"github.com/vamshi737/smartestimator/vision"
)

// CancelChecker reports whether a run was asked to stop. The redis
// package provides the production implementation; a nil checker
// disables cancellation.
type CancelChecker interface {
	GetCancelFlag(ctx context.Context, runID string) (int, error)
}

// Config wires the runner's collaborators.
type Config struct {
	Store        *Store
	Book         *pricing.Book
	TesseractCmd string
	Cancel       CancelChecker

	// ServerMetadata are deployment labels copied onto every run record.
	ServerMetadata []metadata.NameValue
}

// Options are the per-run knobs, mirroring the upload form and the CLI
// flags. Zero heights fall back to 10 ft (India) and 8 ft (USA).
type Options struct {
	Mode           string
	PlanPath       string
	PricesOverride []byte

	INHeightFt      float64
	INIntOpeningsM2 float64
	INExtOpeningsM2 float64

	USHeightFt        float64
	USOpeningsExtSqft float64
	USOpeningsIntSqft float64

	Openings *qty.OpeningsSchedule
	Flooring *qty.FlooringOptions
}

// Event is one progress notification, also the WebSocket wire format.
type Event struct {
	Stage      string  `json:"stage"`
	Status     string  `json:"status"`
	ElapsedSec float64 `json:"elapsed_sec,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// ProgressFunc receives stage events as the run advances. May be nil.
type ProgressFunc func(Event)

// Runner executes estimate runs.
type Runner struct {
	cfg Config
}

// New returns a Runner over the given config.
func New(cfg Config) *Runner {
	return &Runner{cfg: cfg}
}

// Modes in run order. "both" computes the two takeoffs, "all" adds the
// report artifacts and the workbook validation on top.
const (
	ModeIndia = "india"
	ModeUSA   = "usa"
	ModeBoth  = "both"
	ModeAll   = "all"
)

// ValidMode reports whether mode names a supported pipeline mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeIndia, ModeUSA, ModeBoth, ModeAll:
		return true
	}
	return false
}

func wantIndia(mode string) bool { return mode != ModeUSA }
func wantUSA(mode string) bool   { return mode != ModeIndia }
func wantReports(mode string) bool {
	return mode == ModeAll
}

// Run executes one estimate run. The returned record is archived even
// when a stage fails; the error then names the failing stage.
func (r *Runner) Run(ctx context.Context, runID string, opts Options, progress ProgressFunc) (*data.EstimateResult, error) {
	start := time.Now()
	if !ValidMode(opts.Mode) {
		return nil, fmt.Errorf("pipeline: unknown mode %q", opts.Mode)
	}
	if opts.INHeightFt <= 0 {
		opts.INHeightFt = 10
	}
	if opts.USHeightFt <= 0 {
		opts.USHeightFt = 8
	}

	book := r.cfg.Book
	if book == nil {
		book = pricing.NewBook()
	}
	merged := book.Clone()
	if err := merged.MergeJSON(opts.PricesOverride); err != nil {
		return nil, err
	}

	result := &data.EstimateResult{
		GitShortCommit: prometheusx.GitShortCommit,
		Version:        version.Version,
		SchemaVersion:  data.CurrentSchemaVersion,
		RunID:          runID,
		Mode:           opts.Mode,
		PlanFile:       planFile(opts.PlanPath),
		StartTime:      start,
		ServerMetadata: r.cfg.ServerMetadata,
	}

	err := r.runStages(ctx, runID, opts, merged, result, progress)

	result.EndTime = time.Now()
	if names, lerr := r.cfg.Store.ListArtifacts(runID); lerr == nil {
		result.Artifacts = names
	}
	if aerr := r.cfg.Store.ArchiveResult(result); aerr != nil {
		logging.Logger.WithError(aerr).WithField("run", runID).Error("cannot archive run record")
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RunCount.WithLabelValues(opts.Mode, status).Inc()
	metrics.RunDuration.WithLabelValues(opts.Mode).Observe(time.Since(start).Seconds())
	return result, err
}

func (r *Runner) runStages(ctx context.Context, runID string, opts Options, book *pricing.Book, result *data.EstimateResult, progress ProgressFunc) error {
	stage := func(name string, fn func() error) error {
		if err := r.checkCancel(ctx, runID); err != nil {
			return err
		}
		emit(progress, Event{Stage: name, Status: "start"})
		t0 := time.Now()
		err := fn()
		rec := data.StageRecord{Name: name, StartTime: t0, EndTime: time.Now()}
		ev := Event{Stage: name, Status: "done", ElapsedSec: rec.EndTime.Sub(t0).Seconds()}
		if err != nil {
			rec.Error = err.Error()
			ev.Status = "error"
			ev.Error = err.Error()
			metrics.StageErrors.WithLabelValues(name).Inc()
		}
		result.Stages = append(result.Stages, rec)
		emit(progress, ev)
		if err != nil {
			return fmt.Errorf("pipeline: stage %s: %w", name, err)
		}
		return nil
	}

	var (
		prePath string
		dims    = &vision.DimSet{}
	)
	if isImage(opts.PlanPath) {
		if err := stage("preprocess", func() error {
			p, err := r.cfg.Store.ArtifactPath(runID, "pre.png")
			if err != nil {
				return err
			}
			prePath = p
			return vision.Preprocess(opts.PlanPath, prePath)
		}); err != nil {
			return err
		}
	}

	if prePath != "" && r.cfg.TesseractCmd != "" {
		if err := stage("ocr", func() error {
			set, err := vision.ExtractDims(r.cfg.TesseractCmd, prePath)
			if err != nil {
				return err
			}
			dims = set
			return r.cfg.Store.WriteJSON(runID, "dims.json", dims)
		}); err != nil {
			return err
		}
	}
	result.Dims = dims

	var (
		area  *vision.AreaMetrics
		walls *vision.WallMetrics
	)
	if err := stage("geometry", func() error {
		rects := vision.Rectangles(dims.Dims)
		area = vision.BuildAreaMetrics(rects)
		walls = vision.BuildWallMetrics(rects)
		if err := r.cfg.Store.WriteJSON(runID, "metrics_area.json", area); err != nil {
			return err
		}
		return r.cfg.Store.WriteJSON(runID, "metrics_walls.json", walls)
	}); err != nil {
		return err
	}
	result.Area = area
	result.Walls = walls

	var (
		india *qty.IndiaTotal
		usa   *qty.USAQuantities
	)
	if err := stage("quantities", func() error {
		lengths := qty.WallLengths{
			ExteriorFt: walls.SumExteriorFt,
			InteriorFt: walls.SumInteriorFt,
		}
		if wantIndia(opts.Mode) {
			base, err := qty.ComputeIndia(lengths, qty.IndiaOptions{HeightFt: opts.INHeightFt}, book.IN)
			if err != nil {
				return err
			}
			india = qty.ComputeIndiaExtras(base, qty.ExtrasOptions{
				IntOpeningsM2: opts.INIntOpeningsM2,
				ExtOpeningsM2: opts.INExtOpeningsM2,
			}, book.IN)
			if err := r.cfg.Store.WriteJSON(runID, "qty_india_total.json", india); err != nil {
				return err
			}
		}
		if wantUSA(opts.Mode) {
			var err error
			usa, err = qty.ComputeUSA(lengths, qty.USAOptions{
				HeightFt:        opts.USHeightFt,
				OpeningsExtSqft: opts.USOpeningsExtSqft,
				OpeningsIntSqft: opts.USOpeningsIntSqft,
			}, book.US)
			if err != nil {
				return err
			}
			if err := r.cfg.Store.WriteJSON(runID, "qty_usa.json", usa); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	result.India = india
	result.USA = usa

	if err := stage("enhancements", func() error {
		sched := qty.DefaultOpeningsSchedule()
		if opts.Openings != nil {
			sched = *opts.Openings
		}
		openings := qty.ComputeOpenings(sched, book)
		if err := r.cfg.Store.WriteJSON(runID, "doors_windows.json", openings); err != nil {
			return err
		}

		fopts := qty.DefaultFlooringOptions()
		if opts.Flooring != nil {
			fopts = *opts.Flooring
		}
		floorAreaM2 := area.TotalAreaSqft / units.SqftPerM2
		flooring := qty.ComputeFlooring(floorAreaM2, fopts, book)
		if err := r.cfg.Store.WriteJSON(runID, "flooring.json", flooring); err != nil {
			return err
		}

		wallAreaM2 := units.FeetToMeters(walls.TotalPerimeterFt) * units.FeetToMeters(opts.INHeightFt)
		summary := qty.SummarizeAreas(wallAreaM2, openings, flooring)
		if err := r.cfg.Store.WriteJSON(runID, "area_summary.json", summary); err != nil {
			return err
		}
		result.Openings = openings
		result.Flooring = flooring
		result.Areas = summary
		return nil
	}); err != nil {
		return err
	}

	var bd *pricing.Breakdown
	if err := stage("pricing", func() error {
		regions := map[string]pricing.RegionSubtotal{}
		if india != nil {
			regions["india"] = pricing.RegionSubtotal{
				Materials: india.Totals.Materials,
				Labor:     india.Totals.LaborCost,
			}
		}
		if usa != nil {
			regions["usa"] = pricing.RegionSubtotal{
				Materials: usa.Totals.Materials,
				Labor:     usa.Totals.LaborCost,
			}
		}
		bd = pricing.BuildBreakdown(book.Global, regions)
		metrics.EstimatedTotal.WithLabelValues(orUnknown(bd.Summary.Currency)).
			Observe(bd.Summary.GrandTotal)
		return r.cfg.Store.WriteJSON(runID, "final_breakdown.json", bd)
	}); err != nil {
		return err
	}
	result.Breakdown = bd

	if !wantReports(opts.Mode) {
		return nil
	}

	var xlsxPath string
	if err := stage("reports", func() error {
		var err error
		if xlsxPath, err = r.writeArtifact(runID, "final_estimate.xlsx", "xlsx", func(p string) error {
			return report.WriteWorkbook(p, bd, book, india, usa)
		}); err != nil {
			return err
		}
		if _, err = r.writeArtifact(runID, "final_estimate.pdf", "pdf", func(p string) error {
			return report.WriteSummaryPDF(p, bd)
		}); err != nil {
			return err
		}
		if _, err = r.writeArtifact(runID, "final_estimate_detailed.pdf", "pdf", func(p string) error {
			return report.WriteDetailedPDF(p, bd, time.Now())
		}); err != nil {
			return err
		}
		if india != nil {
			if _, err = r.writeArtifact(runID, "qty_india.csv", "csv", func(p string) error {
				return report.WriteBOQCSV(p, report.IndiaBaseBOQ(india.Base, book.IN))
			}); err != nil {
				return err
			}
			if _, err = r.writeArtifact(runID, "qty_india_total.csv", "csv", func(p string) error {
				return report.WriteBOQCSV(p, report.IndiaBOQ(india, book.IN))
			}); err != nil {
				return err
			}
		}
		if usa != nil {
			if _, err = r.writeArtifact(runID, "qty_usa.csv", "csv", func(p string) error {
				return report.WriteBOQCSV(p, report.USABOQ(usa, book.US))
			}); err != nil {
				return err
			}
		}
		rows := append(report.IndiaBOQ(india, book.IN), report.USABOQ(usa, book.US)...)
		_, err = r.writeArtifact(runID, "boq.csv", "csv", func(p string) error {
			return report.WriteBOQCSV(p, rows)
		})
		return err
	}); err != nil {
		return err
	}

	return stage("validate", func() error {
		return report.ValidateWorkbook(xlsxPath, bd)
	})
}

// writeArtifact renders one artifact and feeds its size into metrics.
func (r *Runner) writeArtifact(runID, filename, kind string, write func(path string) error) (string, error) {
	p, err := r.cfg.Store.ArtifactPath(runID, filename)
	if err != nil {
		return "", err
	}
	if err := write(p); err != nil {
		return "", err
	}
	if fi, err := os.Stat(p); err == nil {
		metrics.ArtifactBytes.WithLabelValues(kind).Observe(float64(fi.Size()))
	}
	return p, nil
}

func (r *Runner) checkCancel(ctx context.Context, runID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.cfg.Cancel == nil {
		return nil
	}
	flag, err := r.cfg.Cancel.GetCancelFlag(ctx, runID)
	if err != nil {
		// Redis being down must not take runs with it.
		logging.Logger.WithError(err).Warn("cancel flag check failed")
		return nil
	}
	if flag != 0 {
		return fmt.Errorf("pipeline: run %s canceled", runID)
	}
	return nil
}

func emit(progress ProgressFunc, ev Event) {
	if progress != nil {
		progress(ev)
	}
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func planFile(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
