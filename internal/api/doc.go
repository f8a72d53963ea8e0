// Package api serves the conversion form over HTTP.
//
// Page load is GET /v1/options, which also sweeps old audio. The form
// posts to /v1/convert as JSON, MessagePack, urlencoded or multipart (with
// an optional "voice" recording) and plays or downloads the result from
// /v1/audio/{name}.
package api
