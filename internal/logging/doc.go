// Package logging wires log/slog for siteforge.
//
// It provides a console handler for interactive runs, a JSON handler for
// machine-readable logs, attr helpers so call sites stay terse, and
// context-derived fields (run ID, export step) for correlating export logs.
package logging
