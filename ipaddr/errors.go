// Package ipaddr models IPv4, IPv6 and MAC addresses, netmasks and
// wildcard masks as immutable, fixed-width byte values.
//
// Constructors accept any of the textual, numeric, or byte-buffer forms
// described in spec §4.3/§4.4 and normalize them to a canonical internal
// buffer (4 bytes for IPv4, 16 for IPv6, 6 for MAC). Recognizing and
// converting those forms is implemented as an ordered, static sequence of
// attempts rather than a runtime handler chain — the order still governs
// which form wins a given input, but there is no polymorphic dispatch
// behind it (see the "chain-of-responsibility overuse" design note this
// module is built against).
package ipaddr

import "errors"

// ErrInvalidAddress is returned when a recognizer accepted the shape of an
// input (right type, right length) but semantic validation failed: wrong
// octet count, a netmask whose bits are not contiguous, a value out of
// range for the target width, or a malformed textual form.
var ErrInvalidAddress = errors.New("invalid address")

// ErrInvalidArgument is returned for malformed standardizer or parser
// invocations that are not themselves an address-shaped failure (e.g. an
// unsupported argument arity).
var ErrInvalidArgument = errors.New("invalid argument")
