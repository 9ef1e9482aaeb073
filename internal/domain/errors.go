package domain

import "errors"

// Configuration and item validation errors.
var (
	ErrInvalidZoom     = errors.New("zoom level must be a positive number of pixels per minute")
	ErrInvalidSnapStep = errors.New("snap step must be a positive number of minutes")
	ErrInvalidHours    = errors.New("visible hours must satisfy 0 <= start < end <= 24")
	ErrInvalidColor    = errors.New("colour must be a #rrggbb hex value")
	ErrInvalidDuration = errors.New("duration must be positive and match the item's span")
	ErrInvalidStart    = errors.New("start must fall within the day")
)
