package repository

import (
    "context"
    "database/sql"

    modelMongo "grade-stats/app/models/mongodb"
    models "grade-stats/app/models/postgresql"
)

type GradeRepoPostgres interface {
    FindByClass(ctx context.Context, classID int) ([]modelMongo.GradeRecord, error)
    FindByLearner(ctx context.Context, learnerID int) ([]modelMongo.GradeRecord, error)
}

type gradeRepoPostgres struct {
    db *sql.DB
}

func NewGradeRepoPostgres(db *sql.DB) GradeRepoPostgres {
    return &gradeRepoPostgres{db: db}
}

func (r *gradeRepoPostgres) FindByClass(ctx context.Context, classID int) ([]modelMongo.GradeRecord, error) {
    query := `SELECT learner_id, class_id, scores FROM grades WHERE class_id = $1`
    return r.query(ctx, query, classID)
}

func (r *gradeRepoPostgres) FindByLearner(ctx context.Context, learnerID int) ([]modelMongo.GradeRecord, error) {
    query := `SELECT learner_id, class_id, scores FROM grades WHERE learner_id = $1`
    return r.query(ctx, query, learnerID)
}

func (r *gradeRepoPostgres) query(ctx context.Context, query string, arg int) ([]modelMongo.GradeRecord, error) {
    rows, err := r.db.QueryContext(ctx, query, arg)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    results := make([]modelMongo.GradeRecord, 0)
    for rows.Next() {
        var row models.GradeRow
        if err := rows.Scan(&row.LearnerID, &row.ClassID, &row.Scores); err != nil {
            return nil, err
        }
        rec, err := row.ToRecord()
        if err != nil {
            return nil, err
        }
        results = append(results, rec)
    }

    return results, rows.Err()
}
