package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrGenerationNotFound = errors.New("page generation not found")
	ErrFunnelPageNotFound = errors.New("funnel page not found")
	ErrSlugTaken          = errors.New("funnel page slug already in use")
)

func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
