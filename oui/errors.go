// Package oui implements the IEEE MAC-address assignment registry: file
// ingestion (CSV and TXT distributions for MA-L, MA-M, MA-S, IAB and
// CID), a persisted single-table store indexed by decimal MAC range, and
// range-based lookup of a MAC address to every registry record covering
// it.
package oui

import "errors"

// ErrInvalidRecord marks a malformed hex assignment or range met while
// building a Record. ParseCSV and ParseTXT do not return it: they skip
// every malformed record and count it instead.
var ErrInvalidRecord = errors.New("invalid OUI record")

// ErrStore wraps a failure reading or writing the persisted store.
var ErrStore = errors.New("oui store error")
