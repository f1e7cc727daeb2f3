// Package services defines the error taxonomy shared across siteforge
// components.
//
// Every mutating operation tags failures with one of the exported sentinel
// markers (duplicate name, unknown parent, invalid document, and so on) via
// Wrap, which also records the component and operation for the message. The
// CLI classifies failures with errors.Is against these markers.
//
// The package also carries context helpers for propagating the export run ID
// and the current export step into structured logs.
package services
