package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samotors/vehicle-backend/pkg/db/models"
)

// RefreshTokenRepository persists the opaque refresh credentials. Rows are
// deleted with their owning user by the FK cascade.
type RefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository builds a repo bound to the provided GORM DB.
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a refresh token for the user.
func (r *RefreshTokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*models.RefreshToken, error) {
	row := &models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Find loads a refresh token row by its opaque value.
func (r *RefreshTokenRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	var row models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes a single refresh token. deleted is false when no row matched.
func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.RefreshToken{}, "token = ?", token)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteForUser revokes every refresh token held by the user.
func (r *RefreshTokenRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.RefreshToken{}, "user_id = ?", userID).Error
}

// DeleteExpired prunes tokens past their expiry. Returns the number removed.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.RefreshToken{}, "expires_at <= ?", now)
	return res.RowsAffected, res.Error
}
