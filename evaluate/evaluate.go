package evaluate

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/hupe1980/knntune/core"
)

// Prediction pairs a predicted label with the true label of one example.
type Prediction struct {
	// Index is the dataset index of the evaluated example.
	Index     int    `json:"index"`
	Predicted string `json:"predicted"`
	Actual    string `json:"actual"`
}

// Correct reports whether the prediction matches the true label.
func (p Prediction) Correct() bool { return p.Predicted == p.Actual }

// Accuracy returns the fraction of correct predictions.
func Accuracy(preds []Prediction) (float64, error) {
	if len(preds) == 0 {
		return 0, fmt.Errorf("accuracy: no predictions: %w", core.ErrEmptyInput)
	}
	correct := 0
	for _, p := range preds {
		if p.Correct() {
			correct++
		}
	}
	return float64(correct) / float64(len(preds)), nil
}

// ConfusionMatrix counts (actual, predicted) label pairs over a fixed class
// set. Rows are actual labels, columns predicted labels, both in class order.
type ConfusionMatrix struct {
	classes []string
	index   map[string]int
	counts  [][]int
	total   int
}

// NewConfusionMatrix tallies preds over classes. Every label must belong to
// classes.
func NewConfusionMatrix(classes []string, preds []Prediction) (*ConfusionMatrix, error) {
	if len(preds) == 0 {
		return nil, fmt.Errorf("confusion matrix: no predictions: %w", core.ErrEmptyInput)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("confusion matrix: empty class set: %w", core.ErrInvalidConfiguration)
	}

	cm := &ConfusionMatrix{
		classes: slices.Clone(classes),
		index:   make(map[string]int, len(classes)),
		counts:  make([][]int, len(classes)),
	}
	for i, c := range classes {
		if _, dup := cm.index[c]; dup {
			return nil, fmt.Errorf("confusion matrix: duplicate class %q: %w", c, core.ErrInvalidConfiguration)
		}
		cm.index[c] = i
		cm.counts[i] = make([]int, len(classes))
	}

	for _, p := range preds {
		a, ok := cm.index[p.Actual]
		if !ok {
			return nil, &core.ErrUnknownLabel{Label: p.Actual}
		}
		q, ok := cm.index[p.Predicted]
		if !ok {
			return nil, &core.ErrUnknownLabel{Label: p.Predicted}
		}
		cm.counts[a][q]++
		cm.total++
	}
	return cm, nil
}

// Classes returns the class order of rows and columns.
func (cm *ConfusionMatrix) Classes() []string { return slices.Clone(cm.classes) }

// Total returns the number of tallied predictions.
func (cm *ConfusionMatrix) Total() int { return cm.total }

// Count returns the number of examples of class actual predicted as predicted.
// Unknown labels count zero.
func (cm *ConfusionMatrix) Count(actual, predicted string) int {
	a, ok := cm.index[actual]
	if !ok {
		return 0
	}
	q, ok := cm.index[predicted]
	if !ok {
		return 0
	}
	return cm.counts[a][q]
}

// Row returns the prediction counts for examples of class actual.
func (cm *ConfusionMatrix) Row(actual string) []int {
	a, ok := cm.index[actual]
	if !ok {
		return nil
	}
	return slices.Clone(cm.counts[a])
}

// Accuracy returns the diagonal share of the matrix.
func (cm *ConfusionMatrix) Accuracy() float64 {
	diag := 0
	for i := range cm.counts {
		diag += cm.counts[i][i]
	}
	return float64(diag) / float64(cm.total)
}

// Cells returns a copy of the count grid (rows actual, columns predicted).
func (cm *ConfusionMatrix) Cells() [][]int {
	out := make([][]int, len(cm.counts))
	for i, r := range cm.counts {
		out[i] = slices.Clone(r)
	}
	return out
}

// String renders the matrix as an aligned table.
func (cm *ConfusionMatrix) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "actual\\predicted\t")
	for _, c := range cm.classes {
		fmt.Fprintf(w, "%s\t", c)
	}
	fmt.Fprintln(w)
	for i, c := range cm.classes {
		fmt.Fprintf(w, "%s\t", c)
		for _, n := range cm.counts[i] {
			fmt.Fprintf(w, "%d\t", n)
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
	return sb.String()
}

// ClassScore holds one-vs-rest metrics for a class.
type ClassScore struct {
	Class     string  `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// ClassMetrics derives per-class precision, recall and F1. Undefined ratios
// (zero denominators) are reported as 0.
func ClassMetrics(cm *ConfusionMatrix) []ClassScore {
	out := make([]ClassScore, len(cm.classes))
	for i, c := range cm.classes {
		tp := cm.counts[i][i]
		support, predicted := 0, 0
		for j := range cm.classes {
			support += cm.counts[i][j]
			predicted += cm.counts[j][i]
		}

		s := ClassScore{Class: c, Support: support}
		if predicted > 0 {
			s.Precision = float64(tp) / float64(predicted)
		}
		if support > 0 {
			s.Recall = float64(tp) / float64(support)
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		out[i] = s
	}
	return out
}
