// Package archive sets the audio working directory aside so a fresh one
// starts empty, keeping old audio out of reach of the retention sweep.
package archive
