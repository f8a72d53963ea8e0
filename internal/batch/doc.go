// Package batch reads batch files for converting many texts in one run.
package batch
