package pipeline

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Value is a string-or-array union. A YAML scalar decodes as a string
// value, a YAML sequence as an array value.
type Value struct {
	Type      ParamType
	StringVal string
	ArrayVal  []string
}

// NewString creates a string Value.
func NewString(s string) Value {
	return Value{Type: ParamTypeString, StringVal: s}
}

// NewArray creates an array Value.
func NewArray(items ...string) Value {
	return Value{Type: ParamTypeArray, ArrayVal: items}
}

// UnmarshalYAML decodes a scalar as a string value and a sequence as an
// array value. Any other node kind is rejected.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v.Type = ParamTypeString
		return node.Decode(&v.StringVal)
	case yaml.SequenceNode:
		v.Type = ParamTypeArray
		return node.Decode(&v.ArrayVal)
	default:
		return fmt.Errorf("pipeline: param value must be a string or a list of strings (line %d)", node.Line)
	}
}

// MarshalYAML emits the underlying string or array.
func (v Value) MarshalYAML() (any, error) {
	if v.Type == ParamTypeArray {
		return v.ArrayVal, nil
	}
	return v.StringVal, nil
}

// UnmarshalJSON mirrors the YAML union for the HTTP surface.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Type = ParamTypeString
		v.StringVal = s
		return nil
	}
	var a []string
	if err := json.Unmarshal(data, &a); err == nil {
		v.Type = ParamTypeArray
		v.ArrayVal = a
		return nil
	}
	return fmt.Errorf("pipeline: param value must be a string or a list of strings")
}

// MarshalJSON emits the underlying string or array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Type == ParamTypeArray {
		return json.Marshal(v.ArrayVal)
	}
	return json.Marshal(v.StringVal)
}

// Equal reports value equality including type.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	if v.Type == ParamTypeArray {
		if len(v.ArrayVal) != len(other.ArrayVal) {
			return false
		}
		for i := range v.ArrayVal {
			if v.ArrayVal[i] != other.ArrayVal[i] {
				return false
			}
		}
		return true
	}
	return v.StringVal == other.StringVal
}

// String renders the value for logs and error details.
func (v Value) String() string {
	if v.Type == ParamTypeArray {
		return fmt.Sprintf("%v", v.ArrayVal)
	}
	return v.StringVal
}
