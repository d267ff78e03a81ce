package order

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const msgNotAString = "Not a valid string."

// NormalizeForm normalizes urlencoded or multipart form values. size and colours keep every
// submitted value; other fields take the last value and are skipped when it is "", "null" or
// "undefined".
func NormalizeForm(values map[string][]string) Payload {
	raw := make(map[string]any, len(values))
	for key, vals := range values {
		if key == FieldSize || key == FieldColours {
			list := make([]any, 0, len(vals))
			for _, v := range vals {
				list = append(list, v)
			}
			raw[key] = list
			continue
		}

		if len(vals) == 0 {
			continue
		}
		value := vals[len(vals)-1]
		if isBlankMarker(value) {
			continue
		}
		raw[key] = value
	}
	return Normalize(raw)
}

// Normalize converts loosely typed input into a Payload. JSON bodies must be decoded with
// UseNumber so numbers arrive as json.Number. Unknown keys are ignored.
func Normalize(raw map[string]any) Payload {
	p := newPayload()

	for key, value := range raw {
		switch key {
		case FieldCustomerName:
			p.CustomerName = p.text(key, value)
		case FieldProductName:
			p.ProductName = p.text(key, value)
		case FieldFabricType:
			p.FabricType = p.text(key, value)
		case FieldFabricWeight:
			p.FabricWeight = p.text(key, value)
		case FieldDescription:
			p.Description = p.text(key, value)
		case FieldStatus:
			p.Status = p.text(key, value)
		case FieldOrderDate:
			p.OrderDate = p.text(key, value)
		case FieldDeliveryDate:
			p.DeliveryDate = p.text(key, value)
		case FieldColours:
			p.Colours = stringList(value)
		case FieldSize:
			p.Sizes = stringList(value)
		case FieldSizeQuantities:
			p.SizeQuantities = sizeQuantities(value)
		case FieldQuantity:
			p.Quantity = coerceInt(value, 0)
		case FieldIsSet:
			p.IsSet = coerceBool(value)
		case FieldSetMultiplier:
			p.SetMultiplier = coerceInt(value, 1)
		case FieldProductImage:
			// Only an explicit null or empty value means anything here; files arrive separately.
			if s, ok := value.(string); value == nil || (ok && strings.TrimSpace(s) == "") {
				p.ClearImage = true
			}
			continue
		default:
			continue
		}
		p.present[key] = true
	}

	return p
}

func (p *Payload) text(field string, value any) *string {
	var s string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		p.typeErrors[field] = msgNotAString
		return nil
	}
	return &s
}

func isBlankMarker(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "null", "undefined":
		return true
	}
	return false
}

// stringList accepts a list, a JSON encoded list or a comma separated string and returns the
// non-empty trimmed entries.
func stringList(value any) []string {
	out := []string{}

	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "[") {
			var decoded []any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				return stringList(decoded)
			}
		}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case []string:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return stringList(items)
	case []any:
		// A lone form value may itself carry a comma separated or JSON list.
		if len(v) == 1 {
			if s, ok := v[0].(string); ok {
				return stringList(s)
			}
		}
		for _, item := range v {
			var s string
			switch e := item.(type) {
			case string:
				s = e
			case json.Number:
				s = e.String()
			case float64:
				s = strconv.FormatFloat(e, 'f', -1, 64)
			case bool:
				s = strconv.FormatBool(e)
			default:
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}

	return out
}

// sizeQuantities accepts an object or a JSON encoded object. Malformed input yields an empty map.
func sizeQuantities(value any) map[string]*int {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return map[string]*int{}
		}
		var decoded map[string]any
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return map[string]*int{}
		}
		return sizeQuantities(decoded)
	case map[string]any:
		out := make(map[string]*int, len(v))
		for size, q := range v {
			out[size] = optionalInt(q)
		}
		return out
	}
	return map[string]*int{}
}

// optionalInt converts v to an int, returning nil for null markers and unconvertible values.
func optionalInt(v any) *int {
	switch q := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(q)
		if isBlankMarker(s) {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &n
	case json.Number:
		if n, err := q.Int64(); err == nil {
			return intFromInt64(n)
		}
		f, err := q.Float64()
		if err != nil {
			return nil
		}
		return intFromFloat(f)
	case float64:
		return intFromFloat(q)
	case int:
		return &q
	case bool:
		n := 0
		if q {
			n = 1
		}
		return &n
	}
	return nil
}

func intFromInt64(n int64) *int {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil
	}
	i := int(n)
	return &i
}

func intFromFloat(f float64) *int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	i := int(f)
	return &i
}

func coerceInt(v any, fallback int) int {
	if n := optionalInt(v); n != nil {
		return *n
	}
	return fallback
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case float64:
		return b != 0
	case []any:
		return len(b) > 0
	case map[string]any:
		return len(b) > 0
	}
	return true
}
