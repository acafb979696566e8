// Package detection turns classifier output into a points award or a
// rejection.
//
// The same evaluation is read with opposite meaning by the two transitions
// that use it. A report needs waste in the photo, a cleanup needs none. Both
// call sites have their own entry point so the polarity is never a flag.
package detection

import (
	"github.com/wastebounty/backend/config"
	"github.com/wastebounty/backend/internal/entity"
)

type Detection = entity.Detection

type Policy struct {
	LabelScores       map[string]int
	DefaultLabelScore int
	CleanerMultiplier int
}

func NewPolicy(cfg config.BountyConfigs) Policy {
	p := Policy{
		LabelScores:       cfg.LabelScores,
		DefaultLabelScore: cfg.DefaultLabelScore,
		CleanerMultiplier: cfg.CleanerMultiplier,
	}

	if p.LabelScores == nil {
		p.LabelScores = config.DefaultLabelScores()
	}

	if p.DefaultLabelScore <= 0 {
		p.DefaultLabelScore = config.DefaultLabelScore
	}

	if p.CleanerMultiplier <= 0 {
		p.CleanerMultiplier = config.CleanerMultiplier
	}

	return p
}

func DefaultPolicy() Policy {
	return NewPolicy(config.Default().Bounty)
}

func (p Policy) Score(label string) int {
	if score, ok := p.LabelScores[label]; ok {
		return score
	}

	return p.DefaultLabelScore
}

// GateResult is either Rejected or Accepted with a positive Points value.
type GateResult struct {
	accepted bool
	points   int
}

var Rejected = GateResult{}

func Accepted(points int) GateResult {
	return GateResult{accepted: true, points: points}
}

func (r GateResult) IsAccepted() bool {
	return r.accepted
}

func (r GateResult) Points() int {
	return r.points
}

func (p Policy) Evaluate(detections []Detection) GateResult {
	if len(detections) == 0 {
		return Rejected
	}

	points := 0
	for _, d := range detections {
		points += p.Score(d.Label)
	}

	return Accepted(points)
}

// Award is the outcome of a report that passed the gate.
type Award struct {
	NumObjects     int
	PointsReporter int
	PointsCleaner  int
}

// GateForCreation accepts a report only when something was detected.
func (p Policy) GateForCreation(detections []Detection) (Award, bool) {
	result := p.Evaluate(detections)
	if !result.IsAccepted() {
		return Award{}, false
	}

	return Award{
		NumObjects:     len(detections),
		PointsReporter: result.Points(),
		PointsCleaner:  p.CleanerMultiplier * result.Points(),
	}, true
}

// GateForCompletion accepts a cleanup only when nothing is detected anymore.
// The remaining count is returned for the error message.
func (p Policy) GateForCompletion(detections []Detection) (remaining int, clean bool) {
	result := p.Evaluate(detections)
	if result.IsAccepted() {
		return len(detections), false
	}

	return 0, true
}
