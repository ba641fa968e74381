package repository

import (
	"context"

	models "grade-stats/app/models/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GradeRepository reads grade records. The collection is owned by the
// grading-entry subsystem; nothing here writes to it.
type GradeRepository interface {
	FindByClass(ctx context.Context, classID int) ([]models.GradeRecord, error)
	FindByLearner(ctx context.Context, learnerID int) ([]models.GradeRecord, error)
}

type gradeRepository struct {
	coll *mongo.Collection
}

func NewGradeRepository(db *mongo.Database, collection string) GradeRepository {
	return &gradeRepository{coll: db.Collection(collection)}
}

func (r *gradeRepository) FindByClass(ctx context.Context, classID int) ([]models.GradeRecord, error) {
	return r.find(ctx, bson.M{"class_id": classID})
}

func (r *gradeRepository) FindByLearner(ctx context.Context, learnerID int) ([]models.GradeRecord, error) {
	return r.find(ctx, bson.M{"learner_id": learnerID})
}

func (r *gradeRepository) find(ctx context.Context, filter bson.M) ([]models.GradeRecord, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]models.GradeRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
