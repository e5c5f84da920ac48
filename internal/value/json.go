package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// bytesKey marks a JSON object carrying a base64 byte string.
const bytesKey = "$bytes"

// MarshalJSON encodes v. Floats always carry a fraction or exponent so the
// receiving side decodes them back as floats.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return fmt.Errorf("cannot encode non-finite float %v", v.f)
		}
		buf.WriteString(formatFloat(v.f))
	case KindString:
		writeJSONString(buf, v.s)
	case KindBytes:
		buf.WriteString(`{"` + bytesKey + `":`)
		writeJSONString(buf, base64.StdEncoding.EncodeToString(v.bytes))
		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, e.Key)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return fmt.Errorf("key %q: %w", e.Key, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode %s value", v.kind)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// Marshalling a string never fails.
	data, _ := json.Marshal(s)
	buf.Write(data)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

// UnmarshalJSON decodes data into v, preserving object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	decoded, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected trailing data after value")
	}
	*v = decoded
	return nil
}

// Parse decodes a JSON document into a Value.
func Parse(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return decodeNumber(t)
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindList, list: items}, nil
		case '{':
			entries := []Entry{}
			index := make(map[string]int)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("invalid object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				// A repeated key keeps its first position and its last value.
				if i, dup := index[key]; dup {
					entries[i].Value = item
					continue
				}
				index[key] = len(entries)
				entries = append(entries, Entry{Key: key, Value: item})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return unwrapBytes(Value{kind: KindMap, entries: entries})
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

func decodeNumber(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}

func unwrapBytes(m Value) (Value, error) {
	if len(m.entries) != 1 || m.entries[0].Key != bytesKey {
		return m, nil
	}
	encoded, err := m.entries[0].Value.AsString()
	if err != nil {
		return m, nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Value{}, fmt.Errorf("invalid %s payload: %w", bytesKey, err)
	}
	return Value{kind: KindBytes, bytes: data}, nil
}
