package modeldict

import (
	"bytes"
	"context"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/modeldict/modeldict-go/i18n"
)

// ParseJSON decodes a JSON object and constructs a Record from it. Numbers are
// preserved as json.Number so field types decide their interpretation.
func ParseJSON(ctx context.Context, s *Schema, data []byte) (*Record, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}}
	}
	return New(ctx, s, m)
}

// ParseYAML decodes a YAML mapping and constructs a Record from it.
func ParseYAML(ctx context.Context, s *Schema, data []byte) (*Record, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}}
	}
	return New(ctx, s, m)
}
