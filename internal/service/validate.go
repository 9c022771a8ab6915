package service

import (
	"regexp"
	"strings"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
)

var (
	_nameRe  = regexp.MustCompile(`^[A-Za-z]+$`)
	_phoneRe = regexp.MustCompile(`^[0-9]{7,15}$`)
	_zipRe   = regexp.MustCompile(`^[0-9]{5}$`)
)

// ValidateOrder applies the order acceptance rules in a fixed sequence
// and stops at the first violation. It performs no I/O; lesson references
// are checked later, during reconciliation.
//
// Rule order: required fields, name format, phone format, then the home
// delivery address and zip checks. Address and zip are ignored entirely
// for any other delivery method.
func ValidateOrder(order *entity.Order) error {
	if order.FirstName == "" || order.LastName == "" ||
		order.Phone == "" || order.Method == "" || len(order.Items) == 0 {
		return entity.ErrMissingFields
	}

	if !_nameRe.MatchString(strings.TrimSpace(order.FirstName)) ||
		!_nameRe.MatchString(strings.TrimSpace(order.LastName)) {
		return entity.ErrInvalidName
	}

	if !_phoneRe.MatchString(order.Phone) {
		return entity.ErrInvalidPhone
	}

	if order.Method == entity.MethodHomeDelivery {
		if strings.TrimSpace(order.Address) == "" {
			return entity.ErrMissingAddress
		}
		if !_zipRe.MatchString(order.Zip.String()) {
			return entity.ErrInvalidZip
		}
	}

	return nil
}
