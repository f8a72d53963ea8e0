// Package store keeps synthesized audio artifacts in a single working
// directory. The directory listing is the only metadata: an artifact is a
// "<name>.mp3" file and its modification time is its creation time.
package store
