// Package json provides small byte-level JSON helpers for debug
// dumps of board and wire values, built directly on jsonparser rather
// than encoding/json so a Debug log line can be assembled without an
// intermediate struct or allocation-heavy marshaling.
package json

import (
	"errors"
	"strconv"
	"unsafe"

	jsp "github.com/buger/jsonparser"
)

var ErrValue = errors.New("invalid value")

func Int(dst []byte, v int) []byte {
	return strconv.AppendInt(dst, int64(v), 10)
}

func UnInt(src []byte) (int, error) {
	v, err := strconv.ParseInt(S(src), 0, 64)
	return int(v), err
}

func Bool(dst []byte, val bool) []byte {
	if val {
		return append(dst, `true`...)
	}
	return append(dst, `false`...)
}

func UnBool(src []byte) (bool, error) {
	switch SQ(src) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, ErrValue
	}
}

func Ints(dst []byte, src []int) []byte {
	dst = append(dst, '[')
	for i, v := range src {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = Int(dst, v)
	}
	return append(dst, ']')
}

// S returns a string view of buf without copying.
func S(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// Q removes "double quotes" around buf, if present.
func Q(buf []byte) []byte {
	if l := len(buf); l > 1 && buf[0] == '"' && buf[l-1] == '"' {
		return buf[1 : l-1]
	}
	return buf
}

// SQ returns a string view of buf, unquoting if necessary.
func SQ(buf []byte) string {
	if l := len(buf); l > 1 && buf[0] == '"' && buf[l-1] == '"' {
		buf = buf[1 : l-1]
	}
	return *(*string)(unsafe.Pointer(&buf))
}

// ArrayEach calls cb for each element in the src JSON array,
// stopping at the first error cb returns.
func ArrayEach(src []byte, cb func(val []byte) error) (reterr error) {
	defer func() {
		if r, ok := recover().(error); ok {
			reterr = r
		}
	}()

	jsp.ArrayEach(src, func(val []byte, _ jsp.ValueType, _ int, _ error) {
		if err := cb(val); err != nil {
			panic(err) // the only way to break from ArrayEach
		}
	})

	return nil
}

// ObjectEach calls cb for each key/value pair in the src JSON object.
func ObjectEach(src []byte, cb func(key, val []byte) error) error {
	return jsp.ObjectEach(src, func(key, val []byte, _ jsp.ValueType, _ int) error {
		return cb(key, val)
	})
}
