// Package core defines the shared language of csvto.
//
// This package contains:
//   - Domain entities (ColumnDefinition, InputSource, ParsedContent, RunResult)
//   - The closed DataType set used during and after type inference
//   - The error taxonomy shared by the parser, adapters and engine
//   - Run history entities persisted by internal/state
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
