// Package decode implements read-only, layered packet decoders over
// raw captured bytes: Ethernet II / IEEE 802.3 (with LLC/SNAP), IPv4,
// ICMPv4, and TCP (fixed header plus options).
//
// Every decoder borrows the input slice rather than copying it; the
// returned views' byte-slice fields alias the caller's buffer and must
// be copied before the buffer is reused or released. Decoding never
// fails on a short buffer -- fields beyond the end of the input are
// treated as zero/empty and the returned view simply reflects the
// truncation, matching the wire formats fixed in spec §4.11-§4.14.
// There is no packet synthesis here: these decoders are read-only on
// captured frames.
package decode
