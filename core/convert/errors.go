// Package convert: errors.
package convert

import "errors"

// Construction-time configuration errors. Conversion itself never fails.
var (
	ErrInvalidOption          = errors.New("invalid option")
	ErrInvalidTrackingPattern = errors.New("invalid tracking image pattern")
	ErrInvalidSelector        = errors.New("invalid CSS selector")
)
