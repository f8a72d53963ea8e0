// Package language holds the input/output language table and the English
// accent table offered by the conversion form, and maps their entries onto
// the codes each external provider expects.
package language
