package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "budgetbox/internal/errors"
	"budgetbox/internal/models"
)

// defaultLayout is returned before a user has saved any layout.
const defaultLayout = "{}"

// preferenceService stores per-user dashboard preferences.
type preferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new PreferenceServicer.
func NewPreferenceService(db *gorm.DB) PreferenceServicer {
	return &preferenceService{db: db}
}

// GetLayout returns the user's saved widget layout, or the default layout
// when nothing has been saved yet.
func (s *preferenceService) GetLayout(userID string) (*models.Preference, error) {
	var pref models.Preference
	if err := s.db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Preference{UserID: userID, Layout: defaultLayout}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pref, nil
}

// SaveLayout upserts the user's widget layout. The layout is an opaque JSON
// document owned by the client; only well-formedness is checked.
func (s *preferenceService) SaveLayout(userID, layout string) (*models.Preference, error) {
	if !json.Valid([]byte(layout)) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "layout must be valid JSON")
	}

	var pref models.Preference
	err := s.db.Where("user_id = ?", userID).First(&pref).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref = models.Preference{UserID: userID, Layout: layout}
		if err := s.db.Create(&pref).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if err := s.db.Model(&pref).Update("layout", layout).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		pref.Layout = layout
	}

	return &pref, nil
}
