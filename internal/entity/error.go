package entity

import (
	"errors"
)

var (
	ErrDataNotFound     = errors.New("data not found")
	ErrConfigPathNotSet = errors.New("CONFIG_PATH not set and -config flag not provided")

	// Order validation rejections, in the order they are checked.
	ErrMissingFields  = errors.New("missing required order fields")
	ErrInvalidName    = errors.New("name must contain letters only")
	ErrInvalidPhone   = errors.New("phone must be 7 to 15 digits")
	ErrMissingAddress = errors.New("address is required for home delivery")
	ErrInvalidZip     = errors.New("zip must be exactly 5 digits")

	// Reconciliation rejections. ErrLessonNotFound reads "lesson not
	// found": at that point no topic is available, so the generic
	// "lesson" label is the message. ErrInsufficientSpace is wrapped
	// with the lesson topic at the rejection site.
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrInsufficientSpace = errors.New("not enough space")
)

// IsOrderRejection reports whether err is a client-caused order rejection
// (validation or availability), as opposed to a store failure.
func IsOrderRejection(err error) bool {
	for _, rejection := range []error{
		ErrMissingFields,
		ErrInvalidName,
		ErrInvalidPhone,
		ErrMissingAddress,
		ErrInvalidZip,
		ErrLessonNotFound,
		ErrInsufficientSpace,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}
