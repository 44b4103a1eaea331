package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sunkar2710/sigkit/internal/signature"
)

// Record is one processed input line
type Record struct {
	Source    string                     `json:"source" yaml:"source"`
	Line      int                        `json:"line" yaml:"line"`
	Signature *signature.MethodSignature `json:"signature,omitempty" yaml:"signature,omitempty"`
	Tokens    []string                   `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// RecordEncoder writes records in one output format
type RecordEncoder interface {
	Encode(record *Record) error
	Close() error
}

// NewRecordEncoder creates the encoder for format
func NewRecordEncoder(format string, w io.Writer) (RecordEncoder, error) {
	switch format {
	case FormatText:
		return &textEncoder{w: w}, nil
	case FormatJSON:
		return &jsonEncoder{enc: json.NewEncoder(w)}, nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlEncoder{enc: enc}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// textEncoder prints one line per record.
// Signatures: modifier=... return=... name=... args=[type name, ...], "-" marks an absent field.
// Tokens: each token quoted, separated by spaces.
type textEncoder struct {
	w io.Writer
}

func (e *textEncoder) Encode(record *Record) error {
	var line string
	if record.Signature != nil {
		sig := record.Signature
		args := make([]string, len(sig.Arguments))
		for i, arg := range sig.Arguments {
			args[i] = arg.String()
		}
		line = fmt.Sprintf("modifier=%s return=%s name=%s args=[%s]",
			orDash(string(sig.AccessModifier)), orDash(sig.ReturnType), sig.Name, strings.Join(args, ", "))
	} else {
		quoted := make([]string, len(record.Tokens))
		for i, token := range record.Tokens {
			quoted[i] = strconv.Quote(token)
		}
		line = strings.Join(quoted, " ")
	}
	_, err := fmt.Fprintln(e.w, line)
	return err
}

func (e *textEncoder) Close() error { return nil }

type jsonEncoder struct {
	enc *json.Encoder
}

func (e *jsonEncoder) Encode(record *Record) error { return e.enc.Encode(record) }
func (e *jsonEncoder) Close() error                { return nil }

type yamlEncoder struct {
	enc *yaml.Encoder
}

func (e *yamlEncoder) Encode(record *Record) error { return e.enc.Encode(record) }
func (e *yamlEncoder) Close() error                { return e.enc.Close() }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
