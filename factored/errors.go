// SPDX-License-Identifier: MIT

package factored

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedFactorization is returned by Build when the factor lists
	// disagree in length or a term is dimension-incompatible with the base.
	ErrMalformedFactorization = errors.New("factored: malformed factorization")

	// ErrUnsupported is returned for operations a factored matrix cannot
	// perform without materializing (append, add, slice, invert) and for
	// unknown operation names.
	ErrUnsupported = errors.New("factored: unsupported operation")

	// ErrBadArguments is returned when an operation receives arguments of the
	// wrong number, type or shape.
	ErrBadArguments = errors.New("factored: bad arguments")
)

// factoredErrorf wraps err with an operation tag ("<op>: %w"). Adapter errors
// already lead with the backend op name; a matching tag is not repeated.
func factoredErrorf(op string, err error) error {
	if strings.HasPrefix(err.Error(), op+": ") {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// malformed reports a Build validation failure with detail.
func malformed(format string, args ...any) error {
	return fmt.Errorf("build: %s: %w", fmt.Sprintf(format, args...), ErrMalformedFactorization)
}
