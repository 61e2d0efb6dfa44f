// Package ipsubnet implements subnet algebra over the values modeled by
// ipaddr: division into smaller blocks, merging compatible subnets back
// into one, and computing the minimal wildcard mask covering a set of
// subnets.
package ipsubnet

import "errors"

// ErrInvalidArgument is returned for a division target outside
// (currentPrefix, width] or a merge/wildcard call with no subnets.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoUsableHosts is returned by FirstHost/LastHost for a /32 (IPv4)
// or /128 (IPv6) subnet.
var ErrNoUsableHosts = errors.New("no usable hosts in subnet")

// ErrCannotMerge is returned when a set of subnets does not fully cover
// a single common-prefix block.
var ErrCannotMerge = errors.New("subnets cannot be merged")
