package repository

import (
	"context"
	"errors"
	"time"

	"madrasa/domain"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

// Replace runs delete-all-then-insert inside one transaction. The single
// live session per email invariant depends on this never being two round trips.
func (r *sessionRepository) Replace(ctx context.Context, session *domain.AdminSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", session.Email).
			Delete(&domain.AdminSession{}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

func (r *sessionRepository) FindActive(ctx context.Context, email string, now time.Time) (*domain.AdminSession, error) {
	var session domain.AdminSession
	err := r.db.WithContext(ctx).
		Where("email = ? AND expires_at > ?", email, now).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.AdminSession{}).
		Where("session_id = ?", sessionID).
		UpdateColumn("last_access_at", at).Error
}

func (r *sessionRepository) DeleteAllForEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&domain.AdminSession{}).Error
}

func (r *sessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.AdminSession{})
	return res.RowsAffected, res.Error
}
