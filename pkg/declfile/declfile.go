// Package declfile loads flag declarations and help text from a file, so
// a program's command line can be described without code.
//
// YAML and JSON files look like:
//
//	help: |
//	  usage: tool -n NAME [-v]
//	flags:
//	  - name: -n
//	    type: string
//	    required: true
//	  - name: -v
//	    type: boolean
//
// Property lists use the same keys. INI files keep help in the default
// section and describe one flag per section:
//
//	help = usage: tool -n NAME [-v]
//
//	[-n]
//	type = string
//	required = true
package declfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/digitalcave/moss/pkg/parsecommands"
	"github.com/ghodss/yaml"
	"github.com/go-ini/ini"
	"github.com/groob/plist"
	"github.com/pkg/errors"
	"github.com/serenize/snaker"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Format string

const (
	YAML  Format = "yaml"
	JSON  Format = "json"
	INI   Format = "ini"
	Plist Format = "plist"
)

// Set is a loaded declaration file.
type Set struct {
	Help         string
	Declarations []parsecommands.Declaration
}

type flagSpec struct {
	Name     string `json:"name" plist:"name"`
	Type     string `json:"type" plist:"type"`
	Required bool   `json:"required" plist:"required"`
}

type fileSpec struct {
	Help  string     `json:"help" plist:"help"`
	Flags []flagSpec `json:"flags" plist:"flags"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".ini":
		return INI, nil
	case ".plist":
		return Plist, nil
	}
	return "", fmt.Errorf("unknown declaration file extension %q", filepath.Ext(path))
}

// Load reads and decodes the declaration file at path.
func Load(path string) (*Set, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading declaration file")
	}

	set, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return set, nil
}

// Parse decodes data in the given format. YAML, JSON and INI data that
// starts with a UTF-16 or UTF-8 byte order mark is transcoded to UTF-8
// first. Plists may be binary and are passed through untouched.
func Parse(data []byte, format Format) (*Set, error) {
	var (
		spec fileSpec
		err  error
	)

	switch format {
	case YAML, JSON:
		if data, err = decodeText(data); err != nil {
			return nil, err
		}
		// JSON is a subset of YAML
		err = errors.Wrapf(yaml.Unmarshal(data, &spec), "unmarshalling %s", format)
	case Plist:
		err = errors.Wrap(plist.Unmarshal(data, &spec), "unmarshalling plist")
	case INI:
		if data, err = decodeText(data); err != nil {
			return nil, err
		}
		spec, err = parseINI(data)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return spec.toSet()
}

func decodeText(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, errors.Wrap(err, "decoding text")
	}
	return decoded, nil
}

func parseINI(data []byte) (fileSpec, error) {
	var spec fileSpec

	iniFile, err := ini.Load(data)
	if err != nil {
		return spec, errors.Wrap(err, "parsing ini")
	}

	for _, section := range iniFile.Sections() {
		if section.Name() == ini.DefaultSection {
			for _, key := range section.Keys() {
				if normalizeKey(key.Name()) == "help" {
					spec.Help = key.Value()
				}
			}
			continue
		}

		flag := flagSpec{Name: section.Name()}
		for _, key := range section.Keys() {
			switch normalizeKey(key.Name()) {
			case "name":
				flag.Name = key.Value()
			case "type", "value_type":
				flag.Type = key.Value()
			case "required":
				required, err := key.Bool()
				if err != nil {
					return spec, errors.Wrapf(err, "section %s: parsing required", section.Name())
				}
				flag.Required = required
			}
		}
		spec.Flags = append(spec.Flags, flag)
	}

	return spec, nil
}

// normalizeKey lets ValueType, valueType and value_type name the same
// key.
func normalizeKey(key string) string {
	return strings.ToLower(snaker.CamelToSnake(strings.TrimSpace(key)))
}

func (spec fileSpec) toSet() (*Set, error) {
	set := &Set{
		Help:         strings.TrimRight(spec.Help, "\n"),
		Declarations: make([]parsecommands.Declaration, 0, len(spec.Flags)),
	}

	seen := make(map[string]bool, len(spec.Flags))
	for i, flag := range spec.Flags {
		name := strings.TrimSpace(flag.Name)
		if name == "" {
			return nil, fmt.Errorf("flag %d has no name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("flag %s declared more than once", name)
		}
		seen[name] = true

		// Unknown type names are kept as an unsupported type; such a flag
		// still takes a value but never resolves one.
		valueType, _ := parsecommands.ParseValueType(flag.Type)

		set.Declarations = append(set.Declarations, parsecommands.NewDeclaration(name, valueType, flag.Required))
	}

	return set, nil
}
