// Package analysis summarises metrics across many grown trees.
//
//   - [Summarize]: min, max, mean and spread of one metric
//   - [Histogram]: bucket counts for a terminal bar chart
//
// Typical use is on the results of a survey:
//
//	values := analysis.Values(results, "leaves")
//	s := analysis.Summarize(values)
//	fmt.Printf("%.1f ± %.1f\n", s.Mean, s.StdDev)
package analysis
