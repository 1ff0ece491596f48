// =============================================================================
// WinBag2Hiopos - Main Entry Point
// =============================================================================
//
// This is the main entry point for the WinBag2Hiopos CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   winbag2hiopos export    - Transcode one batch of Hiopos CSV exports
//   winbag2hiopos import    - Split a WinBag accounting file into CSV files
//   winbag2hiopos watch     - Watch a folder and process batches as they arrive
//   winbag2hiopos version   - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/Zneed99/WinBag2Hiopos/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
