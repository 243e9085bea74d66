// Package report defines the archived record of an experiment run and its
// on-disk encoding.
//
// A Report captures the configuration, the holdout result and the tuning
// curve of one run. Encode writes it as JSON behind a one-byte compression
// tag; Decode reverses that.
//
//	var buf bytes.Buffer
//	if err := report.Encode(&buf, rep, report.CompressionZstd); err != nil {
//	    return err
//	}
package report
