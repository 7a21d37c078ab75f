// Package serialize turns typed resource structs into CloudFormation property maps
// and finds the logical IDs a property map refers to.
package serialize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// Resource serializes a Go struct to CloudFormation resource properties.
// Field names come from JSON tags, zero values are dropped, and values
// implementing json.Marshaler (intrinsics, AttrRef) are emitted in their
// CloudFormation form.
func Resource(v any) (map[string]any, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("cannot serialize nil %T", v)
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot serialize %T: not a struct", v)
	}

	props := make(map[string]any)
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := propertyName(field)
		if !ok {
			continue
		}

		fv := val.Field(i)
		if omit(fv) {
			continue
		}

		out, err := serializeValue(fv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if out != nil {
			props[name] = out
		}
	}

	return props, nil
}

// propertyName is the CloudFormation property name of field: its JSON tag
// name, or the Go field name when the tag has none. "-" excludes the field.
func propertyName(field reflect.StructField) (string, bool) {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return "", false
	case "":
		return field.Name, true
	}
	return name, true
}

// omit reports whether a field value is left out of the properties. Structs
// are only omitted when they say so through an IsZero method.
func omit(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Struct:
		if z, ok := v.Interface().(interface{ IsZero() bool }); ok {
			return z.IsZero()
		}
		return false
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v.IsZero()
	}
	return false
}

// serializeValue converts a reflect.Value to a JSON-compatible value.
func serializeValue(v reflect.Value) (any, error) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, nil
	}

	if m, ok := v.Interface().(json.Marshaler); ok {
		data, err := m.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return decode(data)
	}

	switch v.Kind() {
	case reflect.Struct:
		return Resource(v.Interface())

	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return nil, nil
		}
		items := make([]any, v.Len())
		for i := range items {
			item, err := serializeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil

	case reflect.Map:
		if v.Len() == 0 {
			return nil, nil
		}
		entries := make(map[string]any, v.Len())
		for iter := v.MapRange(); iter.Next(); {
			item, err := serializeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			entries[iter.Key().String()] = item
		}
		return entries, nil

	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	}

	data, err := json.Marshal(v.Interface())
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) (any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Value serializes an arbitrary value (an output value, a policy document)
// into its JSON-compatible form.
func Value(v any) (any, error) {
	return serializeValue(reflect.ValueOf(v))
}

var subVariable = regexp.MustCompile(`\$\{([^!}][^}]*)\}`)

// References returns the logical IDs targeted by Ref, Fn::GetAtt and Fn::Sub
// variables anywhere inside a serialized value, sorted and without duplicates.
// Pseudo parameters (AWS::*) are not logical IDs and are skipped.
func References(v any) []string {
	seen := make(map[string]bool)
	collectReferences(v, seen)

	refs := make([]string, 0, len(seen))
	for id := range seen {
		refs = append(refs, id)
	}
	sort.Strings(refs)
	return refs
}

func collectReferences(v any, seen map[string]bool) {
	switch val := v.(type) {
	case map[string]any:
		if sub, ok := val["Fn::Sub"]; ok && len(val) == 1 {
			collectSub(sub, seen)
			return
		}
		if len(val) == 1 {
			if target, ok := intrinsicTarget(val); ok {
				if target != "" && !strings.HasPrefix(target, "AWS::") {
					seen[target] = true
				}
				return
			}
		}
		for _, item := range val {
			collectReferences(item, seen)
		}
	case []any:
		for _, item := range val {
			collectReferences(item, seen)
		}
	}
}

// intrinsicTarget reports the resource a single-key Ref or Fn::GetAtt map points at.
func intrinsicTarget(m map[string]any) (string, bool) {
	if ref, ok := m["Ref"].(string); ok {
		return ref, true
	}

	switch att := m["Fn::GetAtt"].(type) {
	case []any:
		if len(att) > 0 {
			if name, ok := att[0].(string); ok {
				return name, true
			}
		}
	case string:
		name, _, _ := strings.Cut(att, ".")
		return name, true
	}

	return "", false
}

// collectSub records the variables of an Fn::Sub, either the short string form
// or the [template, variables] form. Names bound in the variables map are local.
func collectSub(sub any, seen map[string]bool) {
	switch val := sub.(type) {
	case string:
		for _, id := range SubReferences(val) {
			seen[id] = true
		}
	case []any:
		if len(val) == 0 {
			return
		}
		template, _ := val[0].(string)
		vars := map[string]any{}
		if len(val) > 1 {
			vars, _ = val[1].(map[string]any)
			collectReferences(vars, seen)
		}
		for _, id := range SubReferences(template) {
			if _, local := vars[id]; !local {
				seen[id] = true
			}
		}
	}
}

// SubReferences returns the logical IDs named by ${Name} or ${Name.Attr}
// variables in an Fn::Sub template string.
func SubReferences(template string) []string {
	var refs []string
	for _, match := range subVariable.FindAllStringSubmatch(template, -1) {
		name, _, _ := strings.Cut(match[1], ".")
		if strings.HasPrefix(name, "AWS::") {
			continue
		}
		refs = append(refs, name)
	}
	return refs
}
