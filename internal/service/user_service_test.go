package service

import (
	"context"
	"net/http"
	"testing"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.uber.org/zap"
)

func newUserFixture() (*UserService, *fakeUserStore, *fakeMailer) {
	users := newFakeUserStore(
		&models.User{ID: "admin-1", Role: models.RoleAdmin, Email: "admin@acme.test"},
		&models.User{ID: "manager-1", Role: models.RoleManager, CompanyID: "company-1", Email: "manager@acme.test"},
	)
	companies := newFakeCompanyStore(&models.Company{ID: "company-1", Name: "Acme"})
	mailer := &fakeMailer{}
	return NewUserService(users, companies, mailer, zap.NewNop()), users, mailer
}

func TestCreateUserRolePolicy(t *testing.T) {
	tests := []struct {
		name    string
		creator Claims
		input   NewUserInput
		status  int
	}{
		{
			name:    "admin creates manager",
			creator: Claims{UserID: "admin-1", Role: models.RoleAdmin},
			input:   NewUserInput{Name: "Marta", Email: "marta@acme.test", Role: models.RoleManager, CompanyID: "company-1"},
		},
		{
			name:    "manager creates employee",
			creator: Claims{UserID: "manager-1", Role: models.RoleManager, CompanyID: "company-1"},
			input:   NewUserInput{Name: "Bruno", Email: "bruno@acme.test", Role: models.RoleEmployee},
		},
		{
			name:    "manager cannot create admin",
			creator: Claims{UserID: "manager-1", Role: models.RoleManager, CompanyID: "company-1"},
			input:   NewUserInput{Name: "Eve", Email: "eve@acme.test", Role: models.RoleAdmin},
			status:  http.StatusForbidden,
		},
		{
			name:    "employee cannot create anyone",
			creator: Claims{UserID: "someone", Role: models.RoleEmployee},
			input:   NewUserInput{Name: "X", Email: "x@acme.test", Role: models.RoleEmployee},
			status:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newUserFixture()
			_, err := svc.Create(context.Background(), &tt.creator, tt.input)
			if tt.status == 0 {
				if err != nil {
					t.Fatalf("Create: %v", err)
				}
				return
			}
			if !apperr.Status(err, tt.status) {
				t.Fatalf("expected status %d, got %v", tt.status, err)
			}
		})
	}
}

func TestCreateUserByManagerInheritsTeam(t *testing.T) {
	svc, users, mailer := newUserFixture()
	creator := &Claims{UserID: "manager-1", Role: models.RoleManager, CompanyID: "company-1"}

	created, err := svc.Create(context.Background(), creator, NewUserInput{
		Name: "Bruno", Email: "bruno@acme.test",
		// A manager's choice of company/manager is ignored.
		CompanyID: "company-9", ManagerID: "someone-else",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CompanyID != "company-1" || created.ManagerID != "manager-1" {
		t.Fatalf("expected team inheritance, got %+v", created)
	}
	if !created.FirstAccess {
		t.Fatal("new accounts must start in first-access mode")
	}
	if users.users[created.ID] == nil {
		t.Fatal("user was not stored")
	}
	if len(mailer.welcomeEmails) != 1 || mailer.lastPassword == "" {
		t.Fatal("temporary password was not mailed")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture()
	creator := &Claims{UserID: "admin-1", Role: models.RoleAdmin}

	_, err := svc.Create(context.Background(), creator, NewUserInput{
		Name: "Clone", Email: "manager@acme.test", Role: models.RoleManager, CompanyID: "company-1",
	})
	if !apperr.Status(err, http.StatusConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	admin := &Claims{UserID: "admin-1", Role: models.RoleAdmin}

	tests := []struct {
		name  string
		input NewUserInput
	}{
		{"missing name", NewUserInput{Email: "a@acme.test", CompanyID: "company-1"}},
		{"invalid email", NewUserInput{Name: "A", Email: "not-an-email", CompanyID: "company-1"}},
		{"missing company", NewUserInput{Name: "A", Email: "a@acme.test", Role: models.RoleManager}},
		{"employee without manager", NewUserInput{Name: "A", Email: "a@acme.test", Role: models.RoleEmployee, CompanyID: "company-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newUserFixture()
			_, err := svc.Create(context.Background(), admin, tt.input)
			if !apperr.Status(err, http.StatusBadRequest) {
				t.Fatalf("expected InvalidInput, got %v", err)
			}
		})
	}
}
