// Package input reads item lists for the cmb command.
package input

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rayozzie/cmb/pkg/trace"
)

// maxItemLen bounds a single item read from a stream.
const maxItemLen = 2 * 1024 * 1024

// ReadItems returns the items in r, one per line or, with nul set, one per
// NUL-terminated record. A trailing terminator does not produce an empty
// item; a carriage return before a newline is dropped.
func ReadItems(ctx context.Context, r io.Reader, nul bool) ([]string, error) {
	log := trace.FromContext(ctx).WithPrefix("INPUT")

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxItemLen)
	if nul {
		sc.Split(scanNul)
	}

	var items []string
	for sc.Scan() {
		items = append(items, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	log.Debugf("read %d items", len(items))
	return items, nil
}

// ReadFile reads items from path; "-" reads standard input.
func ReadFile(ctx context.Context, path string, nul bool) ([]string, error) {
	if path == "-" {
		return ReadItems(ctx, os.Stdin, nul)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item file: %w", err)
	}
	defer f.Close()
	return ReadItems(ctx, f, nul)
}

func scanNul(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
