// Package processor handles form submissions. It resolves the source text,
// rejects empty input, runs the conversion pipeline and builds the result
// the form shows: audio, optional output text, share link and download
// name. Submissions run one at a time. Starting a session sweeps old audio.
package processor
