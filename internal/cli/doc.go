// Package cli provides command-line interface setup and configuration
// for gospeltts. It handles flag parsing, command creation, configuration
// management using cobra and viper, and logger construction.
package cli
