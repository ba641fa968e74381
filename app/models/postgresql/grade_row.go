package models

import (
	"encoding/json"
	"fmt"

	modelMongo "grade-stats/app/models/mongodb"
)

// GradeRow mirrors the grades table: scores is stored as a JSONB array of
// {"type", "score"} objects, the same shape as the document store.
type GradeRow struct {
	LearnerID int
	ClassID   int
	Scores    []byte
}

func (r GradeRow) ToRecord() (modelMongo.GradeRecord, error) {
	rec := modelMongo.GradeRecord{LearnerID: r.LearnerID, ClassID: r.ClassID}
	if len(r.Scores) == 0 {
		return rec, nil
	}
	if err := json.Unmarshal(r.Scores, &rec.Scores); err != nil {
		return rec, fmt.Errorf("decode scores for learner %d class %d: %w", r.LearnerID, r.ClassID, err)
	}
	return rec, nil
}
