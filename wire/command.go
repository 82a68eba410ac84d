// Package wire implements the KGP line protocol: parsing a command
// line into a Command, tokenising its argument tail, and serialising
// outbound commands back into wire form.
package wire

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kgpkit/kgpclient/board"
	"github.com/spf13/cast"
)

// commandPattern mirrors the KGP command grammar from the protocol
// spec: an optional `id[@ref]` prefix, a command word, and an
// optional argument tail.
var commandPattern = regexp.MustCompile(`^\s*(?:(\d+)(?:@(\d+))?\s+)?(\w+)(?:\s+(.*?))?\s*$`)

var (
	stringPattern = regexp.MustCompile(`^"((?:\\.|[^"])*)"\s*`)
	intPattern    = regexp.MustCompile(`^(\d+)\s*`)
	floatPattern  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*`)
	boardPattern  = regexp.MustCompile(`^(<[^>]*>)\s*`)
	escapePattern = regexp.MustCompile(`\\(.)`)
)

// Word is an unquoted bare-word argument, used for protocol keywords
// such as a `set` key ("info:name") or a mode name ("freeplay") that
// the wire examples show unquoted, unlike genuine string values.
type Word string

// Command is a parsed protocol frame: an optional id, an optional
// reference to an earlier id, a command word, and an ordered list of
// arguments. Each argument is a string, int64, float64, or
// *board.Board.
type Command struct {
	Id   int // 0 if absent
	Ref  int // 0 if absent
	Name string
	Args []any
}

// New builds an outbound Command. ref == 0 means "no reference", matching
// the wire behaviour where @0 is never distinguishable from "absent"
// since ids start at 1 and only grow (see Command.Bytes).
func New(id, ref int, name string, args ...any) *Command {
	return &Command{Id: id, Ref: ref, Name: name, Args: args}
}

// Parse parses a single input line into a Command. It returns
// ErrNoMatch if the line does not match the command grammar; per the
// protocol, callers are expected to drop such lines rather than treat
// them as fatal.
func Parse(line string) (cmd *Command, err error) {
	m := commandPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, ErrNoMatch
	}

	c := &Command{Name: m[3]}
	if m[1] != "" {
		if id, err := strconv.Atoi(m[1]); err == nil {
			c.Id = id
		}
	}
	if m[2] != "" {
		if ref, err := strconv.Atoi(m[2]); err == nil {
			c.Ref = ref
		}
	}
	c.Args = tokenize(m[4])
	return c, nil
}

// tokenize consumes args greedily, trying string, integer, float, and
// board patterns in that priority order at each position. It stops at
// the first position matching none of the four; any residual suffix
// is silently dropped (per the protocol's argument-parsing policy).
func tokenize(args string) []any {
	var out []any
	for len(args) > 0 {
		switch {
		case stringPattern.MatchString(args):
			m := stringPattern.FindStringSubmatch(args)
			out = append(out, unescape(m[1]))
			args = args[len(m[0]):]
		case intPattern.MatchString(args):
			m := intPattern.FindStringSubmatch(args)
			v, _ := strconv.ParseInt(m[1], 10, 64)
			out = append(out, v)
			args = args[len(m[0]):]
		case floatPattern.MatchString(args):
			m := floatPattern.FindStringSubmatch(args)
			v, _ := strconv.ParseFloat(m[1], 64)
			out = append(out, v)
			args = args[len(m[0]):]
		case boardPattern.MatchString(args):
			m := boardPattern.FindStringSubmatch(args)
			if b, err := board.Parse(m[1]); err == nil {
				out = append(out, b)
			}
			args = args[len(m[0]):]
		default:
			return out
		}
	}
	return out
}

func unescape(s string) string {
	return escapePattern.ReplaceAllString(s, "$1")
}

// Int returns the i'th argument coerced to int64, using lenient
// (cast) coercion so a quoted numeral still reads back as an integer.
func (c *Command) Int(i int) (int64, bool) {
	if i < 0 || i >= len(c.Args) {
		return 0, false
	}
	v, err := cast.ToInt64E(c.Args[i])
	return v, err == nil
}

// Str returns the i'th argument coerced to a string.
func (c *Command) Str(i int) (string, bool) {
	if i < 0 || i >= len(c.Args) {
		return "", false
	}
	v, err := cast.ToStringE(c.Args[i])
	return v, err == nil
}

// Float returns the i'th argument coerced to float64.
func (c *Command) Float(i int) (float64, bool) {
	if i < 0 || i >= len(c.Args) {
		return 0, false
	}
	v, err := cast.ToFloat64E(c.Args[i])
	return v, err == nil
}

// Board returns the i'th argument as a *board.Board, if that is what it is.
func (c *Command) Board(i int) (*board.Board, bool) {
	if i < 0 || i >= len(c.Args) {
		return nil, false
	}
	b, ok := c.Args[i].(*board.Board)
	return b, ok
}

// Bytes serialises c into its wire form, `id[@ref] name [arg]...`,
// without a trailing line terminator: framing (CRLF for a stream
// transport, one text frame for WebSocket) is the transport's job,
// not the codec's. @ref is omitted both when Ref == 0 (no reference)
// and, per the reference client's own behaviour, when Ref would
// otherwise be a legitimate-looking zero (ids never reuse 0, so the
// two cases never actually collide in practice).
func (c *Command) Bytes() []byte {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(c.Id))
	if c.Ref != 0 {
		sb.WriteByte('@')
		sb.WriteString(strconv.Itoa(c.Ref))
	}
	sb.WriteByte(' ')
	sb.WriteString(c.Name)
	for _, a := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(serializeArg(a))
	}
	return []byte(sb.String())
}

func serializeArg(a any) string {
	switch v := a.(type) {
	case Word:
		return string(v)
	case string:
		return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *board.Board:
		return v.String()
	case board.Side:
		return v.String()
	default:
		s, err := cast.ToStringE(a)
		if err != nil {
			return ""
		}
		return s
	}
}
