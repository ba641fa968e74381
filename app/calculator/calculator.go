// Package calculator turns grade records into weighted averages and class
// pass-rate summaries. It performs no I/O.
package calculator

import (
	"errors"
	"fmt"
	"sort"

	models "grade-stats/app/models/mongodb"
)

// Weights for the weighted average. They must sum to 1.0.
const (
	WeightExam     = 0.5
	WeightQuiz     = 0.3
	WeightHomework = 0.2
)

// PassThreshold is the weighted average a learner must exceed to count
// towards above70.
const PassThreshold = 70.0

// ErrEmptyResultSet is returned when a summary is requested over zero learners.
var ErrEmptyResultSet = errors.New("no learners with recorded scores")

// Policy decides how an undefined component (a score type with no entries)
// takes part in the weighted sum.
type Policy string

const (
	// PolicyZero counts an undefined component as 0.
	PolicyZero Policy = "zero"
	// PolicyRenormalize drops undefined components and rescales the
	// remaining weights so they sum to 1.
	PolicyRenormalize Policy = "renormalize"
)

// ParsePolicy maps a config value to a Policy. Empty means PolicyZero.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyZero:
		return PolicyZero, nil
	case PolicyRenormalize:
		return PolicyRenormalize, nil
	}
	return "", fmt.Errorf("unknown missing component policy %q: want zero|renormalize", s)
}

// Mean is the average of one score type. Defined is false when no entry of
// that type was seen, in which case Value is meaningless.
type Mean struct {
	Value   float64
	Defined bool
}

// TypeAverages holds the per-type means of one group of scores.
type TypeAverages struct {
	Exam     Mean
	Quiz     Mean
	Homework Mean
}

type accumulator struct {
	sum   [3]float64
	count [3]int
}

func typeIndex(t string) int {
	switch t {
	case models.ScoreExam:
		return 0
	case models.ScoreQuiz:
		return 1
	case models.ScoreHomework:
		return 2
	}
	return -1
}

func (a *accumulator) add(scores []models.ScoreEntry) {
	for _, s := range scores {
		if i := typeIndex(s.Type); i >= 0 {
			a.sum[i] += s.Score
			a.count[i]++
		}
	}
}

func (a *accumulator) averages() TypeAverages {
	mean := func(i int) Mean {
		if a.count[i] == 0 {
			return Mean{}
		}
		return Mean{Value: a.sum[i] / float64(a.count[i]), Defined: true}
	}
	return TypeAverages{Exam: mean(0), Quiz: mean(1), Homework: mean(2)}
}

// Averages computes the per-type means of scores. Unknown types are dropped.
func Averages(scores []models.ScoreEntry) TypeAverages {
	var acc accumulator
	acc.add(scores)
	return acc.averages()
}

// Weighted combines the per-type means into one scalar:
//
//	0.5*exam + 0.3*quiz + 0.2*homework
//
// Undefined components are handled according to policy. A group with no
// defined component yields 0.
func Weighted(avgs TypeAverages, policy Policy) float64 {
	parts := []struct {
		m Mean
		w float64
	}{
		{avgs.Exam, WeightExam},
		{avgs.Quiz, WeightQuiz},
		{avgs.Homework, WeightHomework},
	}

	var sum, weight float64
	for _, p := range parts {
		if !p.m.Defined {
			continue
		}
		sum += p.m.Value * p.w
		weight += p.w
	}

	if policy == PolicyRenormalize && weight > 0 {
		return sum / weight
	}
	return sum
}

// LearnerAverages groups records by learner and returns each learner's
// weighted average, sorted by learner id. Learners whose records carry no
// score entries at all are left out.
func LearnerAverages(records []models.GradeRecord, policy Policy) []models.LearnerAverage {
	groups := make(map[int]*accumulator)
	for _, r := range records {
		if len(r.Scores) == 0 {
			continue
		}
		acc, ok := groups[r.LearnerID]
		if !ok {
			acc = &accumulator{}
			groups[r.LearnerID] = acc
		}
		acc.add(r.Scores)
	}

	out := make([]models.LearnerAverage, 0, len(groups))
	for id, acc := range groups {
		out = append(out, models.LearnerAverage{
			LearnerID: id,
			Avg:       Weighted(acc.averages(), policy),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LearnerID < out[j].LearnerID })
	return out
}

// Summarize reduces per-learner averages to a ClassSummary.
// It returns ErrEmptyResultSet when learners is empty.
func Summarize(learners []models.LearnerAverage) (models.ClassSummary, error) {
	if len(learners) == 0 {
		return models.ClassSummary{}, ErrEmptyResultSet
	}

	summary := models.ClassSummary{TotalLearners: len(learners)}
	for _, l := range learners {
		if Passed(l.Avg) {
			summary.Above70++
		}
	}
	summary.PercentageAbove70 = float64(summary.Above70) / float64(summary.TotalLearners) * 100
	return summary, nil
}

// Passed reports whether avg is strictly above PassThreshold.
func Passed(avg float64) bool {
	return avg > PassThreshold
}

// ClassAverages groups records by class and returns the weighted average per
// class, sorted by class id. Classes whose records carry no score entries
// are left out.
func ClassAverages(records []models.GradeRecord, policy Policy) []models.LearnerClassAverage {
	groups := make(map[int]*accumulator)
	for _, r := range records {
		if len(r.Scores) == 0 {
			continue
		}
		acc, ok := groups[r.ClassID]
		if !ok {
			acc = &accumulator{}
			groups[r.ClassID] = acc
		}
		acc.add(r.Scores)
	}

	out := make([]models.LearnerClassAverage, 0, len(groups))
	for id, acc := range groups {
		out = append(out, models.LearnerClassAverage{
			ClassID: id,
			Avg:     Weighted(acc.averages(), policy),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassID < out[j].ClassID })
	return out
}
