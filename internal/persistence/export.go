package persistence

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/hexcolony/internal/engine"
)

// ExportChronicle writes entries as zstd-compressed JSON lines to path.
func ExportChronicle(path string, entries []engine.Entry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(enc, 128*1024)
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			enc.Close()
			return fmt.Errorf("marshal entry: %w", err)
		}
		if _, err := w.Write(b); err != nil {
			enc.Close()
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			enc.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadChronicle decodes an export written by ExportChronicle.
func ReadChronicle(path string) ([]engine.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []engine.Entry
	jd := json.NewDecoder(dec)
	for {
		var e engine.Entry
		if err := jd.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("decode entry %d: %w", len(out), err)
		}
		out = append(out, e)
	}
}
