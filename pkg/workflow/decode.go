package workflow

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// Format identifies a workflow definition syntax.
type Format string

// Supported workflow definition formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatForPath picks the format from a file extension.
// Returns an INVALID_FORMAT error for unknown extensions.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl", ".flow":
		return FormatHCL, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported workflow file extension %q (want .json, .toml, .hcl or .flow)", filepath.Ext(path))
}

// Decode reads a workflow definition from r in the given format.
// Decode is a pure syntax boundary: it reports malformed input but performs
// no cross-node validation. Use [Workflow.Build] for that.
func Decode(r io.Reader, format Format) (*Workflow, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatTOML:
		return decodeTOML(r)
	case FormatHCL:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read workflow")
		}
		return decodeHCL(data, "workflow.hcl")
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown workflow format %q", format)
}

// DecodeFile reads a workflow definition file, picking the format from the
// file extension.
func DecodeFile(path string) (*Workflow, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "workflow file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	if format == FormatHCL {
		return decodeHCL(data, path)
	}
	return Decode(bytes.NewReader(data), format)
}

func decodeJSON(r io.Reader) (*Workflow, error) {
	var w Workflow
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON workflow")
	}
	return &w, nil
}

func decodeTOML(r io.Reader) (*Workflow, error) {
	var w Workflow
	if _, err := toml.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML workflow")
	}
	return &w, nil
}

// knownNodeKeys are the node fields the core interprets. Anything else on a
// JSON node record is display metadata and passes through into Meta.
var knownNodeKeys = map[string]struct{}{
	"id": {}, "type": {}, "title": {}, "depends_on": {}, "url": {}, "meta": {},
}

// UnmarshalJSON decodes a node record, keeping unknown fields in Meta so
// display metadata survives a round trip through the core untouched.
func (n *Node) UnmarshalJSON(data []byte) error {
	type alias Node
	var known alias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		if _, ok := knownNodeKeys[key]; ok {
			continue
		}
		var v any
		if err := json.Unmarshal(val, &v); err != nil {
			return err
		}
		if known.Meta == nil {
			known.Meta = make(map[string]any)
		}
		known.Meta[key] = v
	}

	*n = Node(known)
	return nil
}
