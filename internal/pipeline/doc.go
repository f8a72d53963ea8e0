// Package pipeline turns a text request into a persisted audio artifact:
// translate, derive a file name from the original text, synthesize speech in
// the target language and accent, and store the MP3. The three external
// calls run strictly in sequence and each gets its own deadline.
package pipeline
