package parser

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Compression identifies how an input file is compressed.
type Compression string

// Supported compression formats, detected by file extension.
const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionBzip Compression = "bzip2"
	CompressionXZ   Compression = "xz"
	CompressionZstd Compression = "zstd"
)

// DetectCompression returns the compression implied by the file extension.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".bz2":
		return CompressionBzip
	case ".xz":
		return CompressionXZ
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// TrimCompressionExt strips a recognised compression extension from path.
func TrimCompressionExt(path string) string {
	if DetectCompression(path) == CompressionNone {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// LookupEncoding resolves a character set name such as "latin1" or
// "windows-1252". An empty name or any UTF-8 alias returns nil.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// source is an opened input with every layer that needs closing.
type source struct {
	io.Reader
	closers []func() error
}

// Close releases the decompressor (if any) and then the file.
func (s *source) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openSource opens path and stacks decompression and character decoding
// on top of it. A UTF-8 byte order mark is always removed.
func openSource(path string, enc encoding.Encoding) (*source, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from discovery
	if err != nil {
		return nil, err
	}

	src := &source{Reader: f, closers: []func() error{f.Close}}

	switch DetectCompression(path) {
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		src.Reader = gz
		src.closers = append(src.closers, gz.Close)
	case CompressionBzip:
		src.Reader = bzip2.NewReader(f)
	case CompressionXZ:
		xr, err := xz.NewReader(f)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		src.Reader = xr
	case CompressionZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		src.Reader = dec
		src.closers = append(src.closers, func() error { dec.Close(); return nil })
	case CompressionNone:
	}

	var decoder transform.Transformer
	if enc != nil {
		decoder = unicode.BOMOverride(enc.NewDecoder())
	} else {
		decoder = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}
	src.Reader = transform.NewReader(src.Reader, decoder)

	return src, nil
}
