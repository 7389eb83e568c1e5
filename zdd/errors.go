// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error returns the error status of the manager, or an empty string if
// there is none.
func (z *ZDD) Error() string {
	if z.error == nil {
		return ""
	}
	return z.error.Error()
}

// Errored returns true if an error occurred during a previous computation.
func (z *ZDD) Errored() bool {
	return z.error != nil
}

// seterror records an error on the manager, chaining it to any previous
// error, and returns the nil Node expected by every public operator.
func (z *ZDD) seterror(format string, a ...interface{}) Node {
	next := fmt.Errorf(format, a...)
	if z.error != nil {
		z.error = errors.Wrap(z.error, next.Error())
	} else {
		z.error = next
	}
	z.logger.Debug(z.error.Error())
	return nil
}
