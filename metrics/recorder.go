// SPDX-License-Identifier: MIT

package metrics

// Recorder receives measurements from the pipeline.
//
// Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveStage records how long a pipeline stage took, in seconds.
	ObserveStage(stage string, seconds float64)

	// RecordRun counts a finished run; result is "success" or "failure".
	RecordRun(result string)

	// SetParticipants sets the participant count of the last run.
	SetParticipants(n int)

	// SetGroupSize sets the member count of one group in the last run.
	SetGroupSize(label string, n int)

	// SetExplainedVariance sets the explained-variance ratio of one component.
	SetExplainedVariance(component int, ratio float64)

	// SetOffset sets the winning rotation offset of the last run, in degrees.
	SetOffset(degrees float64)
}

// Nop implements Recorder by discarding every measurement.
type Nop struct{}

var _ Recorder = Nop{}

// NewNop returns a no-op recorder.
func NewNop() Nop { return Nop{} }

// ObserveStage discards the stage duration.
func (Nop) ObserveStage(_ /* stage */ string, _ /* seconds */ float64) {
	// No-op
}

// RecordRun discards the run outcome.
func (Nop) RecordRun(_ /* result */ string) {
	// No-op
}

// SetParticipants discards the participant count.
func (Nop) SetParticipants(_ /* n */ int) {
	// No-op
}

// SetGroupSize discards the group size.
func (Nop) SetGroupSize(_ /* label */ string, _ /* n */ int) {
	// No-op
}

// SetExplainedVariance discards the explained-variance ratio.
func (Nop) SetExplainedVariance(_ /* component */ int, _ /* ratio */ float64) {
	// No-op
}

// SetOffset discards the offset.
func (Nop) SetOffset(_ /* degrees */ float64) {
	// No-op
}
