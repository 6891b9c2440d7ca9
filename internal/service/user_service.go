package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"net/http"
	"strings"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// creatablePolicy maps a creator's role to the roles it may create.
// Admins manage the whole org chart; managers onboard employees and fellow
// managers into their own company only.
var creatablePolicy = map[models.Role][]models.Role{
	models.RoleAdmin:   {models.RoleAdmin, models.RoleManager, models.RoleEmployee},
	models.RoleManager: {models.RoleEmployee, models.RoleManager},
}

func canCreate(creator, target models.Role) bool {
	for _, allowed := range creatablePolicy[creator] {
		if allowed == target {
			return true
		}
	}
	return false
}

// NewUserInput is the onboarding request.
type NewUserInput struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CompanyID string      `json:"companyId"`
	ManagerID string      `json:"managerId"`
}

// UserService creates accounts and mails temporary credentials.
type UserService struct {
	Users     UserStore
	Companies CompanyStore
	Mailer    Mailer
	Logger    *zap.Logger
}

func NewUserService(users UserStore, companies CompanyStore, mailer Mailer, logger *zap.Logger) *UserService {
	return &UserService{Users: users, Companies: companies, Mailer: mailer, Logger: logger}
}

// Create onboards a new account under the role policy. The account starts
// with a mailed temporary password and the first-access flag set, forcing a
// password change at first login.
func (s *UserService) Create(ctx context.Context, creator *Claims, input NewUserInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" {
		return nil, apperr.InvalidInput("name and email are required")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, apperr.InvalidInput("email is not valid")
	}
	if input.Role == "" {
		input.Role = models.RoleEmployee
	}
	if !canCreate(creator.Role, input.Role) {
		return nil, apperr.Forbidden("your role cannot create accounts with this role")
	}

	// Managers create accounts inside their own team; admins choose the
	// company and the reporting line.
	if creator.Role == models.RoleManager {
		input.CompanyID = creator.CompanyID
		input.ManagerID = creator.UserID
	}
	if input.CompanyID == "" {
		return nil, apperr.InvalidInput("companyId is required")
	}
	if _, err := s.Companies.FindByID(ctx, input.CompanyID); err != nil {
		return nil, err
	}
	if input.Role == models.RoleEmployee && input.ManagerID == "" {
		return nil, apperr.InvalidInput("employees need a manager")
	}
	if input.ManagerID != "" {
		manager, err := s.Users.FindByID(ctx, input.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager.Role != models.RoleManager && manager.Role != models.RoleAdmin {
			return nil, apperr.InvalidInput("the assigned manager does not have a manager role")
		}
	}

	existing, err := s.Users.FindByEmail(ctx, input.Email)
	if err != nil && !apperr.Status(err, http.StatusNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("an account with this email already exists")
	}

	tempPassword, err := newTempPassword()
	if err != nil {
		return nil, apperr.Internal("failed to generate a temporary password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash the temporary password")
	}

	user := &models.User{
		Name:        input.Name,
		Email:       input.Email,
		Password:    string(hash),
		Role:        input.Role,
		FirstAccess: true,
		CompanyID:   input.CompanyID,
		ManagerID:   input.ManagerID,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.Mailer.SendWelcomeEmail(user.Email, tempPassword)
	s.Logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("created_by", creator.UserID))
	return user, nil
}

const tempPasswordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

func newTempPassword() (string, error) {
	buf := make([]byte, 10)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
