// Package cli implements the interactive menu of the library command.
//
// The Shell reads whole lines from an io.Reader, calls the library Engine and writes
// prompts, status lines and listings to an io.Writer. Listings are rendered as
// tables or as JSON.
package cli
