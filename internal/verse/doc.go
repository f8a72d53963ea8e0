// Package verse looks up Bible verses by human-readable reference over the
// bible-api.com HTTP interface and carries the preset and daily verses that
// the conversion form offers without a lookup.
package verse
