// Package parser reads delimited text files into core.ParsedContent.
//
// Parsing is streaming: records are decoded one at a time while every
// cell is classified and folded into its column's candidate types. Once
// the input is exhausted the columns are resolved, so callers always
// receive a fully typed schema.
//
// Column names are normalized into safe SQL identifiers (see Normalize).
// Inputs may be compressed (gzip, bzip2, xz, zstd, detected by extension)
// and encoded in any charset known to golang.org/x/text.
package parser
