package models

// ClassSummary is the pass-rate statistics for one class.
type ClassSummary struct {
    TotalLearners     int     `json:"totalLearners"`
    Above70           int     `json:"above70"`
    PercentageAbove70 float64 `json:"percentageAbove70"`
}

// LearnerClassAverage is one learner's weighted average in one class.
type LearnerClassAverage struct {
    ClassID int     `json:"class_id"`
    Avg     float64 `json:"avg"`
}

// LearnerAverage is one learner's weighted average inside a class roster.
type LearnerAverage struct {
    LearnerID int     `json:"learner_id"`
    Avg       float64 `json:"avg"`
}
