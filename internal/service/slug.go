package service

import (
	"strings"

	"catalog-api/internal/domain"
)

// resolveSlug returns the slug to persist. A blank supplied slug is derived from title;
// anything else must already be a valid slug.
func resolveSlug(supplied, title string) (string, error) {
	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		derived := domain.Slugify(title)
		if derived == "" {
			return "", domain.NewValidationError("slug", "could not derive a slug from the title; supply one explicitly")
		}
		return derived, nil
	}

	if !domain.ValidSlug(supplied) {
		return "", domain.NewValidationError("slug", "enter a valid slug consisting of letters, numbers, underscores or hyphens (at most 50 characters)")
	}
	return supplied, nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "this field may not be blank")
	}
	return nil
}
