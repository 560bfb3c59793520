package repository

import (
	"context"
	"strings"
	"time"

	"vehiclerental/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:user_id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Email:        strings.TrimSpace(strings.ToLower(u.Email)),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	m := toUserModel(u)
	m.CreatedAt = time.Now()
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return 0, tx.Error
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	return m.ID, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", id).Take(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// Update rewrites the profile fields. Returns false when no such user exists.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("user_id = ?", u.ID).
		Updates(map[string]any{
			"email":      strings.TrimSpace(strings.ToLower(u.Email)),
			"first_name": u.FirstName,
			"last_name":  u.LastName,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&userModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
