package json

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonrepair"
	"gopkg.in/yaml.v3"
)

// ParseFile decodes a DSL file by extension: .json, .jsonc, .yao, .yml, .yaml
func ParseFile(name string, data []byte, v interface{}) error {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".yao", ".jsonc":
		if err := jsoniter.Unmarshal(TrimComments(data), v); err != nil {
			return fmt.Errorf("[Parse] %s Error %s", name, err.Error())
		}
		return nil

	case ".json":
		if err := jsoniter.Unmarshal(data, v); err != nil {
			return fmt.Errorf("[Parse] %s Error %s", name, err.Error())
		}
		return nil

	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("[Parse] %s Error %s", name, err.Error())
		}
		return nil
	}

	return fmt.Errorf("[Parse] %s Error %s does not support", name, ext)
}

// Decode decodes a JSON text into v, falling back to comment removal and
// then to auto-repair for hand written or generated input
func Decode(data string, v interface{}) error {
	err := jsoniter.UnmarshalFromString(data, v)
	if err == nil {
		return nil
	}

	if jsoniter.Unmarshal(TrimComments([]byte(data)), v) == nil {
		return nil
	}

	repaired, errRepair := jsonrepair.JSONRepair(data)
	if errRepair != nil {
		return err
	}
	return jsoniter.UnmarshalFromString(repaired, v)
}

// Object converts a parameter value into a JSON object. Maps pass through,
// strings are decoded, nil and blank strings give an empty object.
func Object(value interface{}) (map[string]interface{}, error) {
	switch v := value.(type) {
	case nil:
		return map[string]interface{}{}, nil

	case map[string]interface{}:
		return v, nil

	case string:
		if strings.TrimSpace(v) == "" {
			return map[string]interface{}{}, nil
		}
		res := map[string]interface{}{}
		if err := Decode(v, &res); err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
		return res, nil

	case []byte:
		return Object(string(v))
	}

	// Named map types and structs go through a JSON round trip
	raw, err := jsoniter.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	res := map[string]interface{}{}
	if err := jsoniter.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	return res, nil
}

// TrimComments removes // and /* */ comments outside of strings, line breaks
// are kept so parser offsets still point at the right line
func TrimComments(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))

	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(data) && data[i+1] == '/' {
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
			if i < len(data) {
				out.WriteByte(data[i])
			}
			continue
		}

		if c == '/' && i+1 < len(data) && data[i+1] == '*' {
			i += 2
			for i < len(data) && !(data[i] == '*' && i+1 < len(data) && data[i+1] == '/') {
				if data[i] == '\n' {
					out.WriteByte('\n')
				}
				i++
			}
			i++
			continue
		}

		out.WriteByte(c)
	}

	return out.Bytes()
}
