// Package standardize defines the two-phase feature preprocessing contract.
//
// A Standardizer is fit on a training group only and yields an opaque State;
// the same State then transforms any group. Fitting never sees evaluation
// data because the only input to Fit is the training dataset.Group.
//
//	state, err := s.Fit(train)
//	trainFrame, err := s.Transform(state, train)
//	testFrame, err := s.Transform(state, test)
//
// Prepare performs exactly these three calls.
package standardize
