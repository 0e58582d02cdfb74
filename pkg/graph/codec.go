package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
)

// Family file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Formats lists every supported family file format.
var Formats = []string{FormatJSON, FormatTOML, FormatYAML}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer family format from %q (want .json, .toml, .yaml or .yml)", path)
}

// =============================================================================
// Family File Serialization API
// =============================================================================

// DecodeFamily reads a family file in the given format.
func DecodeFamily(r io.Reader, format string) (FamilyFile, error) {
	var f FamilyFile
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&f)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&f)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&f)
	default:
		return FamilyFile{}, errors.ValidateFormat(format, Formats...)
	}
	if err != nil {
		return FamilyFile{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s family", format)
	}
	return f, nil
}

// EncodeFamily writes a family file in the given format.
func EncodeFamily(w io.Writer, f FamilyFile, format string) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(f)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(f); err == nil {
			err = enc.Close()
		}
	default:
		return errors.ValidateFormat(format, Formats...)
	}
	if err != nil {
		return fmt.Errorf("encode %s family: %w", format, err)
	}
	return nil
}

// MarshalFamily encodes a family file as indented JSON.
func MarshalFamily(f FamilyFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeFamily(&buf, f, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalFamily decodes a JSON family file.
func UnmarshalFamily(data []byte) (FamilyFile, error) {
	return DecodeFamily(bytes.NewReader(data), FormatJSON)
}

// ReadFamilyFile reads a family file, choosing the codec by extension.
func ReadFamilyFile(path string) (FamilyFile, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return FamilyFile{}, err
	}
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FamilyFile{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "family file %s", path)
		}
		return FamilyFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	return DecodeFamily(fh, format)
}

// WriteFamilyFile writes a family file, choosing the codec by extension.
// The file is created with 0644 permissions.
func WriteFamilyFile(f FamilyFile, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fh.Close()
	return EncodeFamily(fh, f, format)
}
