package repository

import (
	"context"
	"errors"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByManager(ctx context.Context, managerID string) ([]models.User, error) {
	cursor, err := r.Col.Find(ctx, bson.M{"manager_id": managerID}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	var team []models.User
	if err := cursor.All(ctx, &team); err != nil {
		return nil, err
	}
	return team, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.Interests == nil {
		user.Interests = []string{}
	}
	if user.CoursesInProgress == nil {
		user.CoursesInProgress = []models.CourseProgress{}
	}
	if user.CompletedCourses == nil {
		user.CompletedCourses = []models.CompletedCourse{}
	}
	if user.Calendar == nil {
		user.Calendar = []models.CalendarItem{}
	}
	_, err := r.Col.InsertOne(ctx, user)
	return err
}

func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"password": passwordHash, "first_access": false},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) UpdatePasswordByID(ctx context.Context, id, passwordHash string) error {
	if err := validateID(id); err != nil {
		return err
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"password": passwordHash, "first_access": false},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, photoURL string, interests []string) error {
	if err := validateID(id); err != nil {
		return err
	}
	set := bson.M{}
	if photoURL != "" {
		set["photo_url"] = photoURL
	}
	if interests != nil {
		set["interests"] = interests
	}
	if len(set) == 0 {
		return nil
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) AddEnrollment(ctx context.Context, userID string, enrollment models.CourseProgress) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"courses_in_progress": enrollment},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// AppendCompletedContent records a finished content item with an
// append-if-absent conditional update: the filter requires the enrollment to
// exist and the content id to not be recorded yet, so concurrent submissions
// for the same item cannot both match.
func (r *UserRepository) AppendCompletedContent(ctx context.Context, userID, courseID string, entry models.CompletedContent, progress int) (bool, error) {
	filter := bson.M{
		"_id": userID,
		"courses_in_progress": bson.M{
			"$elemMatch": bson.M{
				"course_id":                    courseID,
				"completed_content.content_id": bson.M{"$ne": entry.ContentID},
			},
		},
	}
	update := bson.M{
		"$push": bson.M{"courses_in_progress.$.completed_content": entry},
		"$set":  bson.M{"courses_in_progress.$.progress": progress},
	}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// CompleteCourse moves an enrollment into the completed list in one update.
func (r *UserRepository) CompleteCourse(ctx context.Context, userID, courseID string, record models.CompletedCourse) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"courses_in_progress": bson.M{"course_id": courseID}},
		"$push": bson.M{"completed_courses": record},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) AddExamResult(ctx context.Context, userID string, result models.ExamResult) (bool, error) {
	filter := bson.M{
		"_id":                  userID,
		"exam_results.exam_id": bson.M{"$ne": result.ExamID},
	}
	res, err := r.Col.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"exam_results": result}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *UserRepository) AddCalendarItem(ctx context.Context, userID string, item models.CalendarItem) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"calendar": item},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) DeleteByCompany(ctx context.Context, companyID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"company_id": companyID})
	return err
}

// validateID rejects ids that are not well-formed object ids. Documents are
// keyed by the hex form so the string itself is the lookup key.
func validateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return apperr.InvalidInput("malformed id")
	}
	return nil
}
