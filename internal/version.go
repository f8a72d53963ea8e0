package internal

// Version is the gospeltts release, overridden at build time with
// -ldflags "-X codeberg.org/snonux/gospeltts/internal.Version=...".
var Version = "0.1.0"
