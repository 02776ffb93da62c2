package catalog

import (
	"fmt"
	"reflect"

	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var mediaTypeType = reflect.TypeOf(domain.MediaType(""))

// mediaTypeHook maps wire tags onto domain.MediaType, rejecting unknown tags.
func mediaTypeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != mediaTypeType {
		return data, nil
	}
	if from.Kind() != reflect.String {
		return nil, fmt.Errorf("%w: expected string tag, got %s", domain.ErrUnknownMediaType, from.Kind())
	}
	return domain.ParseMediaType(data.(string))
}

// Decode converts generic catalog records (as decoded from JSON or YAML) into units.
// Any malformed record fails the whole decode; a partial catalog is never returned.
func Decode(records []map[string]any) ([]domain.Unit, error) {
	units := make([]domain.Unit, 0, len(records))

	for i, rec := range records {
		if err := checkMediaTags(rec); err != nil {
			return nil, fmt.Errorf("catalog record %d (%v): %w", i, rec["id"], err)
		}

		var u domain.Unit
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mediaTypeHook,
			Result:     &u,
			TagName:    "mapstructure",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build decoder: %w", err)
		}

		if err := decoder.Decode(rec); err != nil {
			return nil, fmt.Errorf("catalog record %d: %w", i, err)
		}

		if u.InputType == "" || u.OutputType == "" {
			return nil, fmt.Errorf("catalog record %d (%s): %w", i, u.ID, domain.ErrMissingMediaType)
		}
		if u.ID == "" {
			return nil, fmt.Errorf("catalog record %d: missing id", i)
		}
		if u.Name == "" {
			u.Name = u.ID
		}

		units = append(units, u)
	}

	return units, nil
}

// checkMediaTags parses the media tags up front so callers can match the domain
// sentinels with errors.Is; mapstructure flattens hook errors into strings.
func checkMediaTags(rec map[string]any) error {
	for _, key := range []string{"input_type", "output_type"} {
		raw, ok := rec[key]
		if !ok || raw == nil {
			return fmt.Errorf("%s: %w", key, domain.ErrMissingMediaType)
		}
		tag, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%s: %w: expected string tag, got %T", key, domain.ErrUnknownMediaType, raw)
		}
		if _, err := domain.ParseMediaType(tag); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// Document is the on-disk layout of a catalog file.
type Document struct {
	Models []map[string]any `yaml:"models" json:"models"`
}

// ParseYAML decodes a catalog document.
func ParseYAML(data []byte) ([]domain.Unit, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return Decode(doc.Models)
}
