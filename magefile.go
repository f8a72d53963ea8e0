//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "gospeltts"
	versionVar = "codeberg.org/snonux/gospeltts/internal.Version"
)

// Default target to run when none is specified
var Default = Build

func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		return ""
	}
	return fmt.Sprintf("-X %s=%s", versionVar, version)
}

// Build builds the gospeltts binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryName, "./cmd/gospeltts")
}

// Install installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gospeltts")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestRace runs all tests with the race detector
func TestRace() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Run builds and starts the web server
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./"+binaryName, "serve")
}

// Clean removes the binary and the audio working directory
func Clean() error {
	fmt.Println("Cleaning...")
	if err := sh.Rm(binaryName); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(".", "temp"))
}
