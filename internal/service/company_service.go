package service

import (
	"context"
	"net/http"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.uber.org/zap"
)

// CompanyService is the admin-only tenant directory.
type CompanyService struct {
	Companies CompanyStore
	Users     UserStore
	Logger    *zap.Logger
}

func NewCompanyService(companies CompanyStore, users UserStore, logger *zap.Logger) *CompanyService {
	return &CompanyService{Companies: companies, Users: users, Logger: logger}
}

// Create registers a company. Names are unique.
func (s *CompanyService) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	if company.Name == "" {
		return nil, apperr.InvalidInput("company name is required")
	}
	existing, err := s.Companies.FindByName(ctx, company.Name)
	if err != nil && !apperr.Status(err, http.StatusNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("a company with this name already exists")
	}
	if err := s.Companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	companies, err := s.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, nil
}

// Delete removes the company and every account that belongs to it.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	if _, err := s.Companies.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.Users.DeleteByCompany(ctx, id); err != nil {
		return err
	}
	if err := s.Companies.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Info("company deleted", zap.String("company_id", id))
	return nil
}
