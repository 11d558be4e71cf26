package glterm

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindNil
	KindNumber
	KindString
	KindBoolean
	KindCons
)

var kindNames = [...]string{
	KindEmpty:   "empty",
	KindNil:     "nil",
	KindNumber:  "number",
	KindString:  "string",
	KindBoolean: "boolean",
	KindCons:    "cons",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Term is a parsed value. Only the fields belonging to Kind are meaningful;
// a KindCons term exclusively owns its Head and Tail.
type Term struct {
	Kind
	Number  int64
	Text    string
	Boolean bool
	Head    *Term
	Tail    *Term
}

// Equal reports whether t and o are structurally equal.
func (t *Term) Equal(o *Term) bool {
	for {
		if t == nil || o == nil {
			return t == o
		}
		if t.Kind != o.Kind {
			return false
		}

		switch t.Kind {
		case KindEmpty, KindNil:
			return true
		case KindNumber:
			return t.Number == o.Number
		case KindString:
			return t.Text == o.Text
		case KindBoolean:
			return t.Boolean == o.Boolean
		case KindCons:
			if !t.Head.Equal(o.Head) {
				return false
			}
			// walk list spines iteratively:
			t, o = t.Tail, o.Tail
			continue
		}

		return false
	}
}

// IsList reports whether t is a proper list: Nil or a Cons chain ending in Nil.
func (t *Term) IsList() bool {
	for ; t != nil; t = t.Tail {
		switch t.Kind {
		case KindNil:
			return true
		case KindCons:
			continue
		default:
			return false
		}
	}
	return false
}

// Slice returns the elements of a list and its final tail. The tail is Nil
// for proper lists.
func (t *Term) Slice() (items []*Term, tail *Term) {
	for t != nil && t.Kind == KindCons {
		items = append(items, t.Head)
		t = t.Tail
	}
	return items, t
}

func (t *Term) String() string {
	var sb strings.Builder
	t.appendToBuilder(&sb)
	return sb.String()
}

func (t *Term) appendToBuilder(sb *strings.Builder) {
	if t == nil {
		return
	}

	switch t.Kind {
	case KindEmpty:
		return
	case KindNil:
		sb.WriteString("nil")
		return
	case KindNumber:
		sb.WriteString(strconv.FormatInt(t.Number, 10))
		return
	case KindString:
		appendQuoted(sb, t.Text)
		return
	case KindBoolean:
		sb.WriteString(strconv.FormatBool(t.Boolean))
		return
	case KindCons:
		sb.WriteRune('(')
		c := t
		for {
			c.Head.appendToBuilder(sb)
			if c.Tail == nil || c.Tail.Kind == KindNil {
				break
			}
			if c.Tail.Kind != KindCons {
				sb.WriteString(" . ")
				c.Tail.appendToBuilder(sb)
				break
			}
			sb.WriteRune(' ')
			c = c.Tail
		}
		sb.WriteRune(')')
		return
	}
}

// appendQuoted writes s as a string literal. Bytes that are not valid UTF-8
// are copied through unchanged so the literal reads back as s.
func appendQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteByte(s[i])
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
}
