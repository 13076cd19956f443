package lib

import (
    "errors"
)

/* the opcode byte has no entry in the dispatch table */
var ErrUnsupportedOpcode = errors.New("unsupported opcode")

/* an address was requested for a mode that has none, or a handler
 * that needs an operand address did not get one
 */
var ErrInvalidAddressing = errors.New("invalid addressing request")

/* a bulk load would run past the end of the 64k address space */
var ErrAddressOverrun = errors.New("address space overrun")
