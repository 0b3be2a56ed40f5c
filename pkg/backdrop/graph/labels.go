package graph

// DefaultLabels is the metric vocabulary drawn on the page background.
var DefaultLabels = []string{
	"Striking Accuracy",
	"Striking Defense",
	"Takedown Accuracy",
	"Takedown Defense",
	"Significant Strikes",
	"Submission Rate",
	"Knockdown Ratio",
	"Control Time",
}
