package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bellari/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength 是自动创建管理员时要求的最短密码长度。
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

// AuthService 负责管理员账号校验与创建。
type AuthService struct {
	db *gorm.DB
}

// NewAuthService 构造 AuthService。
func NewAuthService(gdb *gorm.DB) *AuthService {
	return &AuthService{db: gdb}
}

// Authenticate 校验用户名和密码，成功时返回对应用户。
func (s *AuthService) Authenticate(username, password string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// EnsureUser 在用户名与密码均非空且账号不存在时创建一个 bcrypt 哈希的用户。
// 返回值表示是否新建了账号。
func (s *AuthService) EnsureUser(username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return false, nil
	}
	if len(password) < MinPasswordLength {
		return false, ErrPasswordTooShort
	}

	var existing db.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("load user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.Create(&db.User{Username: username, Password: string(hashed)}).Error; err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	return true, nil
}

// Count 返回管理员账号数量。
func (s *AuthService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&db.User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}
