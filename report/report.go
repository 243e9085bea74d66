package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/knntune/evaluate"
	"github.com/hupe1980/knntune/tune"
)

// Config records the parameters a run was executed with.
type Config struct {
	Seed        int64     `json:"seed"`
	Metric      string    `json:"metric"`
	Proportions []float64 `json:"proportions,omitempty"`
	K           int       `json:"k,omitempty"`
	Folds       int       `json:"folds,omitempty"`
	Candidates  []int     `json:"candidates,omitempty"`
}

// Holdout is the serializable form of a holdout evaluation.
type Holdout struct {
	Accuracy  float64               `json:"accuracy"`
	Classes   []string              `json:"classes"`
	Confusion [][]int               `json:"confusion"`
	PerClass  []evaluate.ClassScore `json:"per_class"`
}

// Failure is a candidate k that could not be evaluated.
type Failure struct {
	K     int    `json:"k"`
	Error string `json:"error"`
}

// Report is the archived record of one experiment run.
type Report struct {
	Experiment string       `json:"experiment"`
	RunID      string       `json:"run_id"`
	CreatedAt  time.Time    `json:"created_at"`
	Config     Config       `json:"config"`
	Holdout    *Holdout     `json:"holdout,omitempty"`
	Curve      []tune.Point `json:"curve,omitempty"`
	Failures   []Failure    `json:"failures,omitempty"`
	Selected   int          `json:"selected,omitempty"`
	Tolerance  float64      `json:"tolerance,omitempty"`
}

// New creates an empty report with a fresh time-ordered run id.
func New(experiment string, cfg Config) (*Report, error) {
	if experiment == "" {
		return nil, errors.New("report: experiment name is required")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("report: run id: %w", err)
	}
	return &Report{
		Experiment: experiment,
		RunID:      id.String(),
		CreatedAt:  time.Now().UTC(),
		Config:     cfg,
	}, nil
}

// SetHoldout records a holdout accuracy and its confusion matrix.
func (r *Report) SetHoldout(accuracy float64, cm *evaluate.ConfusionMatrix) {
	r.Holdout = &Holdout{
		Accuracy:  accuracy,
		Classes:   cm.Classes(),
		Confusion: cm.Cells(),
		PerClass:  evaluate.ClassMetrics(cm),
	}
}

// SetCurve records a tuning result. Failed candidates keep only their
// error text.
func (r *Report) SetCurve(res *tune.Result) {
	r.Curve = append([]tune.Point(nil), res.Points...)
	r.Failures = r.Failures[:0]
	for _, f := range res.Failures {
		r.Failures = append(r.Failures, Failure{K: f.K, Error: f.Err.Error()})
	}
}

// SetSelection records the chosen k and the tolerance it was picked with.
func (r *Report) SetSelection(k int, tolerance float64) {
	r.Selected = k
	r.Tolerance = tolerance
}

// Key returns the blob name of the report: "<experiment>/<run-id>.report".
func (r *Report) Key() string {
	return r.Experiment + "/" + r.RunID + ".report"
}

// Validate checks that the report can be archived.
func (r *Report) Validate() error {
	if r.Experiment == "" {
		return errors.New("report: experiment name is required")
	}
	if r.RunID == "" {
		return errors.New("report: run id is required")
	}
	if h := r.Holdout; h != nil {
		if len(h.Confusion) != len(h.Classes) {
			return fmt.Errorf("report: confusion matrix has %d rows for %d classes", len(h.Confusion), len(h.Classes))
		}
		for i, row := range h.Confusion {
			if len(row) != len(h.Classes) {
				return fmt.Errorf("report: confusion row %d has %d columns for %d classes", i, len(row), len(h.Classes))
			}
		}
	}
	return nil
}
