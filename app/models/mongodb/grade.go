package models

// Score types recognised by the weighting formula. Entries with any other
// type are ignored.
const (
	ScoreExam     = "exam"
	ScoreQuiz     = "quiz"
	ScoreHomework = "homework"
)

type ScoreEntry struct {
	Type  string  `bson:"type" json:"type"`
	Score float64 `bson:"score" json:"score"`
}

// GradeRecord is one learner's scored assessments within one class.
// The grades collection holds exactly one document per (learner, class).
type GradeRecord struct {
	LearnerID int          `bson:"learner_id" json:"learner_id"`
	ClassID   int          `bson:"class_id" json:"class_id"`
	Scores    []ScoreEntry `bson:"scores" json:"scores"`
}
