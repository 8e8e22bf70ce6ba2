package cli

import (
	"errors"
)

// Output formats for listings.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// ErrUnknownOutput is returned by WithOutput for an unsupported format.
var ErrUnknownOutput = errors.New("unknown output format")

// Option defines a functional option for configuring a Shell.
type Option func(*Shell) error

// WithOutput selects how listings are rendered: OutputTable (default) or OutputJSON.
func WithOutput(format string) Option {
	return func(s *Shell) error {
		if format != OutputTable && format != OutputJSON {
			return ErrUnknownOutput
		}

		s.output = format

		return nil
	}
}

// WithColor switches colored status lines on or off.
// By default fatih/color decides based on whether stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(s *Shell) error {
		s.status.setEnabled(enabled)
		return nil
	}
}
