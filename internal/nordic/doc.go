// Package nordic parses Nordic-format seismic bulletin files ("Sfiles")
// into domain events.
//
// A bulletin is a sequence of fixed-width 80-column lines. The character at
// column 80 selects the record type, except for the "EC3" and "MACRO3"
// suffix markers which take precedence; a blank type column is a
// phase/amplitude line. The per-record column offsets decoded here are the
// format contract and must match existing bulletins byte-for-byte.
//
// Parsing is an accumulation: hypocenter, error, fault-plane and similar
// lines merge field-wise into the in-progress event (a later line of the
// same type supersedes the fields it carries), while phase lines append in
// input order. The origin time, once seen, is threaded into subsequent
// phase decodes so arrival times become absolute timestamps.
package nordic
