package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trivia/auth"
	"trivia/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Drink permissions checked by the coffee shop routes.
const (
	PermGetDrinksDetail = "get:drinks-detail"
	PermPostDrinks      = "post:drinks"
	PermPatchDrinks     = "patch:drinks"
	PermDeleteDrinks    = "delete:drinks"
)

// RolePermissions mirrors the role setup of the hosted identity provider.
var RolePermissions = map[string][]string{
	models.RoleBarista: {PermGetDrinksDetail},
	models.RoleManager: {PermGetDrinksDetail, PermPostDrinks, PermPatchDrinks, PermDeleteDrinks},
}

// AuthService is the local development identity provider: bcrypt accounts
// and HS256 tokens whose permissions derive from the account role.
type AuthService struct {
	db     *gorm.DB
	issuer *auth.Issuer
}

func NewAuthService(db *gorm.DB, issuer *auth.Issuer) *AuthService {
	return &AuthService{db: db, issuer: issuer}
}

// EnsureAccount creates the account or resets its password and role.
func (s *AuthService) EnsureAccount(ctx context.Context, username, password, role string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrUnprocessable)
	}
	if _, ok := RolePermissions[role]; !ok {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrUnprocessable)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var account models.Account
	err = s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		account = models.Account{Username: username}
	case err != nil:
		return nil, err
	}
	account.PasswordHash = string(hash)
	account.Role = role

	if err := s.db.WithContext(ctx).Save(&account).Error; err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	return &account, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.issuer.Issue(account.Username, RolePermissions[account.Role])
}
