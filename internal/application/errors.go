package application

import (
	"errors"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func validationFrom(details map[string]string) error {
	if len(details) == 0 {
		return nil
	}
	return &errs.ValidationError{Fields: details}
}

func mergeDetails(dst map[string]string, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
