package repositories

import (
	"errors"

	"gorm.io/gorm"

	"orgpulse-survey/internal/core/domain"
)

// translateError maps store errors to domain errors so business logic
// never inspects vendor-specific codes. Requires gorm's TranslateError
// option so unique violations surface as gorm.ErrDuplicatedKey across
// drivers.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}
