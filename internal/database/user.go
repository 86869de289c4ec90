package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

// ErrUserNotFound is returned when the user to delete does not exist.
var ErrUserNotFound = errors.New("user not found")

// DeleteUserCascade removes a user's applications and then the user row in one transaction.
// Any failure, including a missing user, rolls back both deletes.
func (d *DBinstanceStruct) DeleteUserCascade(ctx context.Context, id uuid.UUID) error {
	return d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// CreateAdmin hashes password and stores a new admin account.
func (d *DBinstanceStruct) CreateAdmin(ctx context.Context, admin *model.User, password string) error {
	hashed, err := utilities.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin.Password = hashed
	admin.Role = model.RoleAdmin
	return d.WithContext(ctx).Create(admin).Error
}

// EnsureAdmin creates the bootstrap admin when no admin exists yet.
// It returns true when an account was created.
func (d *DBinstanceStruct) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	if username == "" || password == "" {
		log.Println("Admin username or password not set, skipping admin creation")
		return false, nil
	}

	var count int64
	if err := d.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if email == "" {
		email = username + "@localhost"
	}
	admin := model.User{
		FullName: "Administrator",
		Username: username,
		Email:    email,
	}
	if err := d.CreateAdmin(ctx, &admin, password); err != nil {
		return false, err
	}
	log.Printf("Bootstrap admin %q created", username)
	return true, nil
}
