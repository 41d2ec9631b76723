package seed

import (
	"context"

	"gorm.io/gorm"

	"github.com/waysgoods/inventory/internal/models"
	"github.com/waysgoods/inventory/pkg/hash"
)

// EnsureAdmin bootstraps the admin account when it is absent. Users are only
// created through seeding, there is no registration endpoint.
func EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Password: pwHash,
		Fullname: "Admin",
		Gender:   "male",
		Address:  "Jl. Kenangan No. 1",
		Role:     "admin",
	}

	return db.WithContext(ctx).Where("email = ?", email).FirstOrCreate(&admin).Error
}
