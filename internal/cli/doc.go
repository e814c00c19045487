// Package cli turns command-line arguments into an app.Config. Flags win over
// the settings layer, and invalid input is reported as an ExitError carrying
// the process exit code.
package cli
