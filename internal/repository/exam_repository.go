package repository

import (
	"context"
	"errors"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ExamRepository struct {
	Col *mongo.Collection
}

func NewExamRepository(db *mongo.Database) *ExamRepository {
	return &ExamRepository{Col: db.Collection("exams")}
}

func (r *ExamRepository) FindByCourse(ctx context.Context, courseID string) (*models.Exam, error) {
	var exam models.Exam
	err := r.Col.FindOne(ctx, bson.M{"course_id": courseID}).Decode(&exam)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("exam not found")
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	if exam.ID == "" {
		exam.ID = primitive.NewObjectID().Hex()
	}
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now()
	}
	_, err := r.Col.InsertOne(ctx, exam)
	return err
}

func (r *ExamRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"course_id": courseID})
	return err
}
