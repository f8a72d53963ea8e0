// Package source picks the text a submission converts.
//
// Exactly one source wins per submission, in this order: a verse search,
// a dictated recording, typed custom text, then the selected preset verse.
// A failed verse search stops resolution; the caller has to clear the
// search to use another source.
package source
