// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error returns the error status of the BDD, or an empty string if there is
// none.
func (b *BDD) Error() string {
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Errored returns true if an error occurred during a previous computation.
func (b *BDD) Errored() bool {
	return b.error != nil
}

// seterror records an error on the manager, chaining it to any previous
// error so that Error reports every recorded condition, and returns the nil
// Node expected by every public operator. The recorded error does not stop
// later operations; in-band poisoning is carried by the sentinel edges. Errors are wrapped with
// errors.Wrap so the chain remains inspectable with errors.Cause/errors.Is.
func (b *BDD) seterror(format string, a ...interface{}) Node {
	next := fmt.Errorf(format, a...)
	if b.error != nil {
		b.error = errors.Wrap(b.error, next.Error())
	} else {
		b.error = next
	}
	b.logger.Debug(b.error.Error())
	return nil
}
