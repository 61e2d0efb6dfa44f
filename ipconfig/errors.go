// Package ipconfig is the configuration facade over ipaddr, ipclassify
// and ipsubnet: Host, Subnet and Wildcard configs for both address
// families, factories that build them from flexible input, batch
// construction, and cryptographically random generation constrained to
// an IANA special-purpose category.
package ipconfig

import "errors"

// ErrNoUsableHosts is not returned by this package: FirstHost and
// LastHost of a /32 or /128 subnet config return a wrapped
// ipsubnet.ErrNoUsableHosts.
var ErrNoUsableHosts = errors.New("no usable hosts in subnet")

// ErrInvalidArgument is returned for malformed batch or random-generation
// requests.
var ErrInvalidArgument = errors.New("invalid argument")
