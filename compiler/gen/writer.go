package gen

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is the encoding of a graph handed to the templating step.
type Format string

// Graph encodings.
const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat returns the format of the given name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatMsgpack:
		return f, nil
	default:
		return "", NewConfigError("Format", s, "unsupported format; use json or msgpack")
	}
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == FormatMsgpack {
		return ".msgpack"
	}
	return ".json"
}

// Encode writes the graph to w in the given format. Msgpack documents use
// the same keys as JSON.
func (g *Graph) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(g)
	default:
		return NewConfigError("Format", format, "unsupported format; use json or msgpack")
	}
}

// WriteFile encodes the graph into the file at path, creating its directory
// if needed.
func (g *Graph) WriteFile(path string, format Format) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := g.Encode(f, format); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// WriteGo renders the Go bindings of the graph into the file at path.
func (g *Graph) WriteGo(path string) error {
	f, err := g.GoFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
