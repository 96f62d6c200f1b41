package basic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	ErrShortTable   = errors.New("basic: truncated field table")
	ErrShortValue   = errors.New("basic: truncated field value")
	ErrBadFieldType = errors.New("basic: unknown field value type")
)

// Table is an AMQP field table: short-string keys mapping to typed
// values (bool, int8..int64, uint8/uint16/uint32, float32/float64,
// Decimal, string, []byte, []any, time.Time, nested Table, nil).
type Table map[string]any

// Decimal is the scaled-integer decimal field value.
type Decimal struct {
	Scale uint8
	Value uint32
}

// DecodeTable decodes a length-prefixed field table from buf and
// returns the unconsumed remainder. Entries must fill the declared
// byte length exactly.
func DecodeTable(buf []byte) (Table, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, ErrShortTable
	}
	size := binary.BigEndian.Uint32(buf)
	if uint64(len(buf)-4) < uint64(size) {
		return nil, nil, fmt.Errorf("%w: %d bytes declared, %d present", ErrShortTable, size, len(buf)-4)
	}
	body := buf[4 : 4+size]
	rest := buf[4+size:]

	table := Table{}
	for len(body) > 0 {
		key, after, err := readShortStr(body)
		if err != nil {
			return nil, nil, err
		}
		value, after, err := decodeFieldValue(after)
		if err != nil {
			return nil, nil, err
		}
		table[key] = value
		body = after
	}
	return table, rest, nil
}

func decodeFieldValue(buf []byte) (any, []byte, error) {
	if len(buf) == 0 {
		return nil, nil, ErrShortValue
	}
	tag := buf[0]
	buf = buf[1:]
	switch tag {
	case 't':
		if len(buf) < 1 {
			return nil, nil, ErrShortValue
		}
		return buf[0] != 0, buf[1:], nil
	case 'b':
		if len(buf) < 1 {
			return nil, nil, ErrShortValue
		}
		return int8(buf[0]), buf[1:], nil
	case 'B':
		if len(buf) < 1 {
			return nil, nil, ErrShortValue
		}
		return buf[0], buf[1:], nil
	case 's':
		if len(buf) < 2 {
			return nil, nil, ErrShortValue
		}
		return int16(binary.BigEndian.Uint16(buf)), buf[2:], nil
	case 'u':
		if len(buf) < 2 {
			return nil, nil, ErrShortValue
		}
		return binary.BigEndian.Uint16(buf), buf[2:], nil
	case 'I':
		if len(buf) < 4 {
			return nil, nil, ErrShortValue
		}
		return int32(binary.BigEndian.Uint32(buf)), buf[4:], nil
	case 'i':
		if len(buf) < 4 {
			return nil, nil, ErrShortValue
		}
		return binary.BigEndian.Uint32(buf), buf[4:], nil
	case 'l':
		if len(buf) < 8 {
			return nil, nil, ErrShortValue
		}
		return int64(binary.BigEndian.Uint64(buf)), buf[8:], nil
	case 'f':
		if len(buf) < 4 {
			return nil, nil, ErrShortValue
		}
		return math.Float32frombits(binary.BigEndian.Uint32(buf)), buf[4:], nil
	case 'd':
		if len(buf) < 8 {
			return nil, nil, ErrShortValue
		}
		return math.Float64frombits(binary.BigEndian.Uint64(buf)), buf[8:], nil
	case 'D':
		if len(buf) < 5 {
			return nil, nil, ErrShortValue
		}
		return Decimal{Scale: buf[0], Value: binary.BigEndian.Uint32(buf[1:5])}, buf[5:], nil
	case 'S':
		raw, rest, err := readLongStr(buf)
		if err != nil {
			return nil, nil, err
		}
		return string(raw), rest, nil
	case 'x':
		raw, rest, err := readLongStr(buf)
		if err != nil {
			return nil, nil, err
		}
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, rest, nil
	case 'A':
		return decodeArray(buf)
	case 'T':
		if len(buf) < 8 {
			return nil, nil, ErrShortValue
		}
		secs := binary.BigEndian.Uint64(buf)
		return time.Unix(int64(secs), 0).UTC(), buf[8:], nil
	case 'F':
		return DecodeTable(buf)
	case 'V':
		return nil, buf, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrBadFieldType, tag)
}

func decodeArray(buf []byte) ([]any, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, ErrShortValue
	}
	size := binary.BigEndian.Uint32(buf)
	if uint64(len(buf)-4) < uint64(size) {
		return nil, nil, ErrShortValue
	}
	body := buf[4 : 4+size]
	rest := buf[4+size:]

	values := []any{}
	for len(body) > 0 {
		value, after, err := decodeFieldValue(body)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, value)
		body = after
	}
	return values, rest, nil
}

func readShortStr(buf []byte) (string, []byte, error) {
	if len(buf) < 1 {
		return "", nil, ErrShortValue
	}
	n := int(buf[0])
	if len(buf) < 1+n {
		return "", nil, ErrShortValue
	}
	return string(buf[1 : 1+n]), buf[1+n:], nil
}

func readLongStr(buf []byte) ([]byte, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, ErrShortValue
	}
	n := binary.BigEndian.Uint32(buf)
	if uint64(len(buf)-4) < uint64(n) {
		return nil, nil, ErrShortValue
	}
	return buf[4 : 4+n], buf[4+n:], nil
}

// AppendTable appends the wire encoding of t to dst. Keys are written
// in sorted order so encoding is deterministic.
func AppendTable(dst []byte, t Table) ([]byte, error) {
	body := []byte{}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var err error
		body, err = appendShortStr(body, k)
		if err != nil {
			return nil, err
		}
		body, err = appendFieldValue(body, t[k])
		if err != nil {
			return nil, err
		}
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(body)))
	return append(dst, body...), nil
}

func appendShortStr(dst []byte, s string) ([]byte, error) {
	if len(s) > 255 {
		return nil, fmt.Errorf("basic: short string of %d bytes", len(s))
	}
	dst = append(dst, byte(len(s)))
	return append(dst, s...), nil
}

func appendLongStr(dst []byte, raw []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(raw)))
	return append(dst, raw...)
}

func appendFieldValue(dst []byte, value any) ([]byte, error) {
	switch v := value.(type) {
	case bool:
		b := byte(0)
		if v {
			b = 1
		}
		return append(dst, 't', b), nil
	case int8:
		return append(dst, 'b', byte(v)), nil
	case uint8:
		return append(dst, 'B', v), nil
	case int16:
		return binary.BigEndian.AppendUint16(append(dst, 's'), uint16(v)), nil
	case uint16:
		return binary.BigEndian.AppendUint16(append(dst, 'u'), v), nil
	case int32:
		return binary.BigEndian.AppendUint32(append(dst, 'I'), uint32(v)), nil
	case uint32:
		return binary.BigEndian.AppendUint32(append(dst, 'i'), v), nil
	case int64:
		return binary.BigEndian.AppendUint64(append(dst, 'l'), uint64(v)), nil
	case float32:
		return binary.BigEndian.AppendUint32(append(dst, 'f'), math.Float32bits(v)), nil
	case float64:
		return binary.BigEndian.AppendUint64(append(dst, 'd'), math.Float64bits(v)), nil
	case Decimal:
		dst = append(dst, 'D', v.Scale)
		return binary.BigEndian.AppendUint32(dst, v.Value), nil
	case string:
		return appendLongStr(append(dst, 'S'), []byte(v)), nil
	case []byte:
		return appendLongStr(append(dst, 'x'), v), nil
	case []any:
		body := []byte{}
		for _, elem := range v {
			var err error
			body, err = appendFieldValue(body, elem)
			if err != nil {
				return nil, err
			}
		}
		return appendLongStr(append(dst, 'A'), body), nil
	case time.Time:
		return binary.BigEndian.AppendUint64(append(dst, 'T'), uint64(v.Unix())), nil
	case Table:
		return AppendTable(append(dst, 'F'), v)
	case nil:
		return append(dst, 'V'), nil
	}
	return nil, fmt.Errorf("basic: cannot encode field value of type %T", value)
}
