package treesearch

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Unmarshal decodes a single JSON document into a Value. Object member
// order and the integer/float distinction of numbers are preserved.
//
// Decoding is strict: numbers must follow the JSON grammar (no leading
// zeros, no bare trailing dot) and strings must be valid UTF-8. Nesting
// depth is bounded only by memory; containers are tracked on an explicit
// stack, not the goroutine stack.
func Unmarshal(data []byte) (Value, error) {
	d := decoder{data: data, iter: jsonAPI.BorrowIterator(nil)}
	defer jsonAPI.ReturnIterator(d.iter)

	v, err := d.decode()
	if err != nil {
		return Value{}, &Error{Code: ErrInvalidJSON, Message: "failed to parse JSON", Cause: err}
	}
	return v, nil
}

// MustParse decodes data and panics if it is not valid JSON.
// Only use this in tests or for compile-time constant documents.
func MustParse(data []byte) Value {
	v, err := Unmarshal(data)
	if err != nil {
		panic(fmt.Sprintf("treesearch.MustParse: %v", err))
	}
	return v
}

// decodeFrame is an open container waiting for its remaining children.
type decodeFrame struct {
	object  bool
	key     string
	items   []Value
	members []Member
}

// decoder scans container punctuation itself and hands string tokens to
// json-iterator for unescaping.
type decoder struct {
	data []byte
	pos  int
	iter *jsoniter.Iterator
}

func (d *decoder) decode() (Value, error) {
	var stack []*decodeFrame

	for {
		d.skipSpace()
		if d.pos >= len(d.data) {
			return Value{}, d.errorf("unexpected end of input")
		}

		var v Value
		switch c := d.data[d.pos]; {
		case c == '{':
			d.pos++
			if d.consume('}') {
				v = Object()
				break
			}
			key, err := d.readKey()
			if err != nil {
				return Value{}, err
			}
			stack = append(stack, &decodeFrame{object: true, key: key})
			continue
		case c == '[':
			d.pos++
			if d.consume(']') {
				v = Array()
				break
			}
			stack = append(stack, &decodeFrame{items: []Value{}})
			continue
		case c == '"':
			s, err := d.readString()
			if err != nil {
				return Value{}, err
			}
			v = String(s)
		case c == 't':
			if err := d.literal("true"); err != nil {
				return Value{}, err
			}
			v = Bool(true)
		case c == 'f':
			if err := d.literal("false"); err != nil {
				return Value{}, err
			}
			v = Bool(false)
		case c == 'n':
			if err := d.literal("null"); err != nil {
				return Value{}, err
			}
			v = Null()
		case c == '-' || (c >= '0' && c <= '9'):
			n, err := d.readNumber()
			if err != nil {
				return Value{}, err
			}
			v = Num(n)
		default:
			return Value{}, d.errorf("unexpected character %q", c)
		}

		// v is complete: attach it and close every container it finishes.
		for {
			if len(stack) == 0 {
				d.skipSpace()
				if d.pos != len(d.data) {
					return Value{}, d.errorf("unexpected data after top-level value")
				}
				return v, nil
			}
			top := stack[len(stack)-1]
			if top.object {
				top.members = append(top.members, Member{Key: top.key, Value: v})
			} else {
				top.items = append(top.items, v)
			}

			d.skipSpace()
			if d.pos >= len(d.data) {
				return Value{}, d.errorf("unexpected end of input")
			}
			c := d.data[d.pos]
			d.pos++
			if c == ',' {
				if top.object {
					key, err := d.readKey()
					if err != nil {
						return Value{}, err
					}
					top.key = key
				}
				break
			}
			switch {
			case top.object && c == '}':
				v = Object(top.members...)
			case !top.object && c == ']':
				v = Array(top.items...)
			default:
				d.pos--
				return Value{}, d.errorf("unexpected character %q", c)
			}
			stack[len(stack)-1] = nil
			stack = stack[:len(stack)-1]
		}
	}
}

func (d *decoder) skipSpace() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

// consume skips whitespace and advances past c if it comes next.
func (d *decoder) consume(c byte) bool {
	d.skipSpace()
	if d.pos < len(d.data) && d.data[d.pos] == c {
		d.pos++
		return true
	}
	return false
}

func (d *decoder) readKey() (string, error) {
	d.skipSpace()
	if d.pos >= len(d.data) || d.data[d.pos] != '"' {
		return "", d.errorf("expected object key")
	}
	key, err := d.readString()
	if err != nil {
		return "", err
	}
	if !d.consume(':') {
		return "", d.errorf("expected ':' after object key")
	}
	return key, nil
}

// readString finds the closing quote of the string token at d.pos and
// lets json-iterator decode its escapes.
func (d *decoder) readString() (string, error) {
	start := d.pos
	i := start + 1
	for ; i < len(d.data); i++ {
		c := d.data[i]
		if c == '"' {
			break
		}
		if c < 0x20 {
			d.pos = i
			return "", d.errorf("control character in string")
		}
		if c == '\\' {
			i++
		}
	}
	if i >= len(d.data) {
		return "", d.errorf("unterminated string")
	}
	raw := d.data[start : i+1]
	if !utf8.Valid(raw) {
		return "", d.errorf("invalid UTF-8 in string")
	}

	d.iter.ResetBytes(raw)
	d.iter.Error = nil
	s := d.iter.ReadString()
	if d.iter.Error != nil && d.iter.Error != io.EOF {
		return "", errors.Wrapf(d.iter.Error, "offset %d", start)
	}
	d.pos = i + 1
	return s, nil
}

func (d *decoder) readNumber() (Number, error) {
	start := d.pos
	for d.pos < len(d.data) {
		c := d.data[d.pos]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			d.pos++
			continue
		}
		break
	}
	n, err := ParseNumber(string(d.data[start:d.pos]))
	if err != nil {
		return Number{}, errors.Wrapf(err, "offset %d", start)
	}
	return n, nil
}

func (d *decoder) literal(word string) error {
	if !bytes.HasPrefix(d.data[d.pos:], []byte(word)) {
		return d.errorf("invalid literal")
	}
	d.pos += len(word)
	return nil
}

func (d *decoder) errorf(format string, args ...interface{}) error {
	return errors.Errorf("%s at offset %d", fmt.Sprintf(format, args...), d.pos)
}

// Marshal returns the compact JSON encoding of v. Integral floats keep a
// trailing ".0" so that decoding the output yields an equal Value.
func Marshal(v Value) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	if err := writeValue(stream, v); err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, &Error{Code: ErrInvalidInput, Message: "failed to encode JSON", Cause: stream.Error}
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// writeValue encodes v. It recurses on containers; callers with
// untrusted depth should decode and search rather than re-encode.
func writeValue(stream *jsoniter.Stream, v Value) error {
	switch v.kind {
	case KindNull:
		stream.WriteNil()
	case KindBool:
		stream.WriteBool(v.b)
	case KindNumber:
		if v.n.repr == reprFloat && (math.IsNaN(v.n.f) || math.IsInf(v.n.f, 0)) {
			return &Error{Code: ErrInvalidInput, Message: fmt.Sprintf("unsupported number %v", v.n.f)}
		}
		stream.WriteRaw(v.n.String())
	case KindString:
		stream.WriteString(v.s)
	case KindArray:
		stream.WriteArrayStart()
		for i, item := range v.arr {
			if i > 0 {
				stream.WriteMore()
			}
			if err := writeValue(stream, item); err != nil {
				return err
			}
		}
		stream.WriteArrayEnd()
	case KindObject:
		stream.WriteObjectStart()
		for i, m := range v.obj {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(m.Key)
			if err := writeValue(stream, m.Value); err != nil {
				return err
			}
		}
		stream.WriteObjectEnd()
	default:
		return &Error{Code: ErrInvalidInput, Message: fmt.Sprintf("unknown kind %v", v.kind)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
