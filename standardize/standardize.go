package standardize

import (
	"fmt"

	"github.com/hupe1980/knntune/core"
	"github.com/hupe1980/knntune/dataset"
	"gonum.org/v1/gonum/stat"
)

// State is the fitted result of a Standardizer.
type State interface {
	// Dim returns the feature dimensionality the state was fit on.
	Dim() int
}

// Standardizer is a fit-once, transform-many preprocessing step.
type Standardizer interface {
	// Fit learns a State from the training group.
	Fit(train dataset.Group) (State, error)
	// Transform applies a fitted State to g.
	Transform(state State, g dataset.Group) (dataset.Frame, error)
}

// Prepare fits s on train and transforms train and eval with the same state.
func Prepare(s Standardizer, train, eval dataset.Group) (trainFrame, evalFrame dataset.Frame, err error) {
	state, err := s.Fit(train)
	if err != nil {
		return dataset.Frame{}, dataset.Frame{}, fmt.Errorf("standardize: fit: %w", err)
	}
	if trainFrame, err = s.Transform(state, train); err != nil {
		return dataset.Frame{}, dataset.Frame{}, fmt.Errorf("standardize: transform train: %w", err)
	}
	if evalFrame, err = s.Transform(state, eval); err != nil {
		return dataset.Frame{}, dataset.Frame{}, fmt.Errorf("standardize: transform eval: %w", err)
	}
	return trainFrame, evalFrame, nil
}

// ZScore centers every feature on its training mean and scales it by its
// training (population) standard deviation. Constant features are centered
// only.
type ZScore struct{}

// ZScoreState holds per-feature means and standard deviations.
type ZScoreState struct {
	Mean []float64
	Std  []float64
}

// Dim implements State.
func (s *ZScoreState) Dim() int { return len(s.Mean) }

// Fit implements Standardizer.
func (ZScore) Fit(train dataset.Group) (State, error) {
	if train.Len() == 0 {
		return nil, fmt.Errorf("zscore: empty training group: %w", core.ErrEmptyInput)
	}
	dim := train.Dim()
	state := &ZScoreState{
		Mean: make([]float64, dim),
		Std:  make([]float64, dim),
	}
	col := make([]float64, train.Len())
	for j := range dim {
		for pos := range col {
			col[pos] = train.Features(pos)[j]
		}
		state.Mean[j], state.Std[j] = stat.PopMeanStdDev(col, nil)
		if state.Std[j] == 0 {
			state.Std[j] = 1
		}
	}
	return state, nil
}

// Transform implements Standardizer.
func (ZScore) Transform(state State, g dataset.Group) (dataset.Frame, error) {
	zs, ok := state.(*ZScoreState)
	if !ok {
		return dataset.Frame{}, fmt.Errorf("zscore: unexpected state %T: %w", state, core.ErrInvalidConfiguration)
	}
	if g.Len() > 0 && g.Dim() != zs.Dim() {
		return dataset.Frame{}, &core.ErrDimensionMismatch{Expected: zs.Dim(), Actual: g.Dim()}
	}

	dim := zs.Dim()
	data := make([]float64, g.Len()*dim)
	rows := make([][]float64, g.Len())
	for pos := range rows {
		row := data[pos*dim : (pos+1)*dim : (pos+1)*dim]
		for j, v := range g.Features(pos) {
			row[j] = (v - zs.Mean[j]) / zs.Std[j]
		}
		rows[pos] = row
	}
	return dataset.NewFrame(g, rows)
}

// Identity passes raw features through unchanged.
type Identity struct{}

type identityState struct{ dim int }

func (s identityState) Dim() int { return s.dim }

// Fit implements Standardizer.
func (Identity) Fit(train dataset.Group) (State, error) {
	if train.Len() == 0 {
		return nil, fmt.Errorf("identity: empty training group: %w", core.ErrEmptyInput)
	}
	return identityState{dim: train.Dim()}, nil
}

// Transform implements Standardizer.
func (Identity) Transform(state State, g dataset.Group) (dataset.Frame, error) {
	if g.Len() > 0 && g.Dim() != state.Dim() {
		return dataset.Frame{}, &core.ErrDimensionMismatch{Expected: state.Dim(), Actual: g.Dim()}
	}
	return g.Frame(), nil
}
