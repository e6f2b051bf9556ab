package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encoder serialises documents to one format.
type Encoder interface {
	// Format is the short name of the format, e.g. "yaml".
	Format() string

	// Extension is the file extension without the dot.
	Extension() string

	// Encode writes v to w.
	Encode(w io.Writer, v any) error
}

// cborMode is deterministic so snapshots of the same model compare equal.
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create export CBOR encoder mode: %v", err))
	}
}

// YAML encodes block-style YAML with two-space indentation.
type YAML struct{}

func (YAML) Format() string    { return "yaml" }
func (YAML) Extension() string { return "yaml" }

func (YAML) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// JSON encodes indented JSON.
type JSON struct{}

func (JSON) Format() string    { return "json" }
func (JSON) Extension() string { return "json" }

func (JSON) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// CBOR encodes deterministic CBOR.
type CBOR struct{}

func (CBOR) Format() string    { return "cbor" }
func (CBOR) Extension() string { return "cbor" }

func (CBOR) Encode(w io.Writer, v any) error {
	return cborMode.NewEncoder(w).Encode(v)
}

// MsgPack encodes MessagePack.
type MsgPack struct{}

func (MsgPack) Format() string    { return "msgpack" }
func (MsgPack) Extension() string { return "msgpack" }

func (MsgPack) Encode(w io.Writer, v any) error {
	return msgpack.NewEncoder(w).Encode(v)
}

var encoders = map[string]Encoder{
	"yaml":    YAML{},
	"yml":     YAML{},
	"json":    JSON{},
	"cbor":    CBOR{},
	"msgpack": MsgPack{},
	"mpk":     MsgPack{},
}

// ForFormat returns the encoder for a format name or file extension.
func ForFormat(name string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (want one of %s)", name, strings.Join(Formats(), ", "))
	}
	return enc, nil
}

// Formats lists the canonical format names.
func Formats() []string {
	seen := make(map[string]bool)
	var out []string
	for _, enc := range encoders {
		if !seen[enc.Format()] {
			seen[enc.Format()] = true
			out = append(out, enc.Format())
		}
	}
	sort.Strings(out)
	return out
}
