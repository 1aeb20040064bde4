package mcnf

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

type format int

const (
	formatDIMACS format = iota
	formatOPB
)

// readCloser adapts a plain io.Reader (bzip2/xz decoders have none) to
// io.ReadCloser so callers can always `defer f.Close()`.
type readCloser struct {
	io.Reader
	closer func() error
}

func (r readCloser) Close() error {
	if r.closer != nil {
		return r.closer()
	}
	return nil
}

// openDecompressed opens path, wrapping it in the decompressor implied by
// a trailing .gz/.bz2/.xz extension, and reports the instance format
// implied by the remaining extension.
func openDecompressed(path string) (io.ReadCloser, format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}

	base := path
	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case ".gz":
		base = strings.TrimSuffix(base, ext)
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, 0, err
		}
		return readCloser{Reader: gz, closer: func() error { gz.Close(); return f.Close() }}, formatOf(base), nil
	case ".bz2":
		base = strings.TrimSuffix(base, ext)
		return readCloser{Reader: bzip2.NewReader(f), closer: f.Close}, formatOf(base), nil
	case ".xz":
		base = strings.TrimSuffix(base, ext)
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, 0, err
		}
		return readCloser{Reader: xr, closer: f.Close}, formatOf(base), nil
	default:
		return f, formatOf(base), nil
	}
}

func formatOf(path string) format {
	if strings.ToLower(filepath.Ext(path)) == ".opb" {
		return formatOPB
	}
	return formatDIMACS
}

// bytesReader is used by tests to exercise ParseDIMACS/ParseOPB without a
// file on disk.
func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
