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

type CompanyRepository struct {
	Col *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{Col: db.Collection("companies")}
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var company models.Company
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("company not found")
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company
	err := r.Col.FindOne(ctx, bson.M{"name": name}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("company not found")
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, company)
	return err
}

func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	cursor, err := r.Col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("company not found")
	}
	return nil
}
