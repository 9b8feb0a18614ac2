package sheet

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"
)

// PresetFormat is the encoding of a preset file.
type PresetFormat uint8

const (
	YAMLPreset PresetFormat = iota
	XMLPreset
)

// presetRoot is the expected root element of XML presets.
const presetRoot = "worksheet"

// ReadPreset decodes a preset from `r` on top of `cfg`: fields absent
// from the preset keep their current value.
func ReadPreset(r io.Reader, format PresetFormat, cfg *Config) error {
	switch format {
	case YAMLPreset:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return fmt.Errorf("invalid yaml preset: %w", err)
		}
		return nil
	case XMLPreset:
		return readXMLPreset(r, cfg)
	default:
		return fmt.Errorf("unsupported preset format %d", format)
	}
}

func readXMLPreset(r io.Reader, cfg *Config) error {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return errors.New("invalid xml preset: no root element")
			}
			return fmt.Errorf("invalid xml preset: %w", err)
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != presetRoot {
			return fmt.Errorf("invalid xml preset: root element is <%s>, expected <%s>", se.Name.Local, presetRoot)
		}
		if err := decoder.DecodeElement(cfg, &se); err != nil {
			return fmt.Errorf("invalid xml preset: %w", err)
		}
		return nil
	}
}

// ReadPresetFile reads the named preset, choosing the format
// from the file extension (.yaml, .yml or .xml).
func ReadPresetFile(name string, cfg *Config) error {
	var format PresetFormat
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		format = YAMLPreset
	case ".xml":
		format = XMLPreset
	default:
		return fmt.Errorf("unknown preset extension for %s", name)
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := ReadPreset(f, format, cfg); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
