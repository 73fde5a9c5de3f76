package magento

import (
	"fmt"
	"strconv"
)

// Custom attribute helpers. Magento attaches schema-less key/value pairs
// to entities as a custom_attributes array of {attribute_code, value}
// objects; these helpers read and edit that shape in place.

// customAttributes returns the entity's custom attributes as a uniform
// slice. Both decoded JSON ([]any) and literal []Entity values are
// accepted.
func customAttributes(entity Entity) []Entity {
	switch attrs := entity["custom_attributes"].(type) {
	case []Entity:
		return attrs
	case []any:
		out := make([]Entity, 0, len(attrs))
		for _, raw := range attrs {
			if attr, ok := raw.(Entity); ok {
				out = append(out, attr)
			}
		}
		return out
	default:
		return nil
	}
}

// CustomAttribute returns the value of the custom attribute with the
// given code and whether the entity carries it.
func CustomAttribute(entity Entity, code string) (any, bool) {
	for _, attr := range customAttributes(entity) {
		if attr["attribute_code"] == code {
			return attr["value"], true
		}
	}

	return nil, false
}

// CustomAttributeDefault returns the value of the custom attribute with
// the given code, or def when the entity doesn't carry it.
func CustomAttributeDefault(entity Entity, code string, def any) any {
	if value, ok := CustomAttribute(entity, code); ok {
		return value
	}

	return def
}

// BoolCustomAttribute returns a boolean custom attribute. Magento stores
// booleans as "1" and "0".
func BoolCustomAttribute(entity Entity, code string) (value, ok bool) {
	raw, ok := CustomAttribute(entity, code)
	if !ok {
		return false, false
	}

	return raw == "1" || raw == 1 || raw == true, true
}

// IntCustomAttribute returns an integer custom attribute.
func IntCustomAttribute(entity Entity, code string) (int, bool) {
	raw, ok := CustomAttribute(entity, code)
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// FloatCustomAttribute returns a floating point custom attribute.
func FloatCustomAttribute(entity Entity, code string) (float64, bool) {
	raw, ok := CustomAttribute(entity, code)
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// CustomAttributesDict returns the entity's custom attributes as a map
// from code to value.
func CustomAttributesDict(entity Entity) map[string]any {
	attrs := customAttributes(entity)
	dict := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if code, ok := attr["attribute_code"].(string); ok {
			dict[code] = attr["value"]
		}
	}

	return dict
}

// SerializeAttributeValue converts a value to the form Magento stores
// custom attributes in: booleans become "1"/"0", nil becomes the empty
// string, everything non-string is stringified.
func SerializeAttributeValue(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "1"
		}
		return "0"
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// SetCustomAttribute sets a custom attribute on the entity, serializing
// the value and replacing an existing attribute with the same code. The
// entity is modified in place and returned; a nil entity allocates one.
func SetCustomAttribute(entity Entity, code string, value any) Entity {
	return setCustomAttribute(entity, code, SerializeAttributeValue(value))
}

// AttributeValue pairs an attribute code with a value to set.
type AttributeValue struct {
	Code  string
	Value any
}

// SetCustomAttributes sets several custom attributes; later values for
// the same code win.
func SetCustomAttributes(entity Entity, values []AttributeValue) Entity {
	for _, v := range values {
		entity = SetCustomAttribute(entity, v.Code, v.Value)
	}

	return entity
}

// DeleteCustomAttribute sets the attribute to an explicit null, which
// Magento treats as a deletion when the entity is saved.
func DeleteCustomAttribute(entity Entity, code string) Entity {
	return setCustomAttribute(entity, code, nil)
}

// DeleteCustomAttributes deletes several custom attributes.
func DeleteCustomAttributes(entity Entity, codes []string) Entity {
	if entity == nil {
		entity = Entity{}
	}
	if _, ok := entity["custom_attributes"]; !ok {
		entity["custom_attributes"] = []Entity{}
	}
	for _, code := range codes {
		entity = DeleteCustomAttribute(entity, code)
	}

	return entity
}

func setCustomAttribute(entity Entity, code string, serialized any) Entity {
	if entity == nil {
		entity = Entity{}
	}

	attrs := customAttributes(entity)
	for _, attr := range attrs {
		if attr["attribute_code"] == code {
			attr["value"] = serialized
			entity["custom_attributes"] = attrs
			return entity
		}
	}

	attrs = append(attrs, Entity{"attribute_code": code, "value": serialized})
	entity["custom_attributes"] = attrs

	return entity
}
