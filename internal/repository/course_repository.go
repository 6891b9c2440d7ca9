package repository

import (
	"context"
	"errors"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
	"learning-service/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var course models.Course
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("course not found")
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByTitle(ctx context.Context, title string) (*models.Course, error) {
	var course models.Course
	err := r.Col.FindOne(ctx, bson.M{"title": title}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("course not found")
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Course, error) {
	byID := make(map[string]models.Course, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	cursor, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	for _, c := range courses {
		byID[c.ID] = c
	}
	return byID, nil
}

func (r *CourseRepository) List(ctx context.Context, filter service.CourseFilter) ([]models.Course, int64, error) {
	query := bson.M{"is_active": true}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Difficulty > 0 {
		query["difficulty"] = filter.Difficulty
	}

	total, err := r.Col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.M{"title": 1})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.Col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *CourseRepository) CountActive(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"is_active": true})
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, course)
	return err
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("course not found")
	}
	return nil
}

func (r *CourseRepository) SetExamID(ctx context.Context, courseID, examID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": courseID}, bson.M{
		"$set": bson.M{"exam_id": examID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("course not found")
	}
	return nil
}
