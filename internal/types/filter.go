package types

import (
	ierr "github.com/pcist/pcist-backend/internal/errors"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Filter carries common pagination parameters bound from query strings.
type Filter struct {
	Limit  *int `form:"limit" json:"limit,omitempty"`
	Offset *int `form:"offset" json:"offset,omitempty"`
}

func GetDefaultFilter() Filter {
	limit := defaultLimit
	offset := 0
	return Filter{Limit: &limit, Offset: &offset}
}

func (f Filter) GetLimit() int {
	if f.Limit == nil {
		return defaultLimit
	}
	return *f.Limit
}

func (f Filter) GetOffset() int {
	if f.Offset == nil {
		return 0
	}
	return *f.Offset
}

func (f Filter) Validate() error {
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > maxLimit) {
		return ierr.NewErrorf("limit must be between 1 and %d", maxLimit).
			WithHint("invalid pagination limit").
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must not be negative").
			WithHint("invalid pagination offset").
			Mark(ierr.ErrValidation)
	}
	return nil
}
