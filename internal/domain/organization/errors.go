package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSlugExists           = errors.New("organization slug already taken")
)
