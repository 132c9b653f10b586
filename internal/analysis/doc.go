// Package analysis reads metric series recorded by a run.
//
//   - [PowerSpectrum]: windowed magnitude spectrum of a series
//   - [Dominant]: strongest oscillation frequency, e.g. of sag as the
//     cloth swings
//   - [SettlingTick]: when a series stops moving
//
// # Example
//
//	_, series, _ := st.LoadSeries(runID)
//	if f, ok := analysis.Dominant(series["sag"], meta.Dt); ok {
//	    fmt.Printf("period: %.2f\n", 1/f)
//	}
package analysis
