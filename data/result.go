package data

import (
	"time"

	"github.com/vamshi737/smartestimator/metadata"
	"github.com/vamshi737/smartestimator/pricing"
	"github.com/vamshi737/smartestimator/qty"
	"github.com/vamshi737/smartestimator/vision"
)

// CurrentSchemaVersion is the current version of the EstimateResult struct
// below. This schema version should be included in serialized JSON result
// files. The version should be incremented for every structure change to
// EstimateResult so that historical run records stay parsable.
const CurrentSchemaVersion = 1

// StageRecord captures one pipeline stage for the archival record.
type StageRecord struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Error     string `json:",omitempty"`
}

// EstimateResult is the struct that is serialized as JSON to disk as the
// archival record of one estimate run.
//
// It contains enough data for interested parties to re-derive the final
// figures without re-running the pipeline: the inputs, the per-stage
// timings, every takeoff and the final breakdown.
type EstimateResult struct {
	// GitShortCommit is the Git commit (short form) of the running server code.
	GitShortCommit string
	// Version is the symbolic version (if any) of the running server code.
	Version string
	// SchemaVersion represents the version of the EstimateResult structure.
	SchemaVersion int

	RunID     string
	Mode      string
	PlanFile  string
	StartTime time.Time
	EndTime   time.Time

	Stages    []StageRecord
	Artifacts []string

	// ServerMetadata are deployment labels from the server command line.
	ServerMetadata []metadata.NameValue `json:",omitempty"`

	Dims      *vision.DimSet      `json:",omitempty"`
	Area      *vision.AreaMetrics `json:",omitempty"`
	Walls     *vision.WallMetrics `json:",omitempty"`
	India     *qty.IndiaTotal     `json:",omitempty"`
	USA       *qty.USAQuantities  `json:",omitempty"`
	Openings  *qty.Openings       `json:",omitempty"`
	Flooring  *qty.Flooring       `json:",omitempty"`
	Areas     *qty.AreaSummary    `json:",omitempty"`
	Breakdown *pricing.Breakdown  `json:",omitempty"`
}
