package repository

import (
	"context"
	"errors"
	"time"

	"madrasa/domain"

	"gorm.io/gorm"
)

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp *domain.AdminOTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

func (r *otpRepository) FindValid(ctx context.Context, email, code string, now time.Time) (*domain.AdminOTP, error) {
	var otp domain.AdminOTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND expires_at > ?", email, code, now).
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.AdminOTP{}, id).Error
}

// IncrementAttempts bumps the counter on every still-valid code for the email
// in one UPDATE, so all live codes share the penalty.
func (r *otpRepository) IncrementAttempts(ctx context.Context, email string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.AdminOTP{}).
		Where("email = ? AND expires_at > ?", email, now).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *otpRepository) PurgeExpiredForEmail(ctx context.Context, email string, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND expires_at < ?", email, now).
		Delete(&domain.AdminOTP{}).Error
}

func (r *otpRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.AdminOTP{})
	return res.RowsAffected, res.Error
}
