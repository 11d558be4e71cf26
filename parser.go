package glterm

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Whitespace is the default set of runes skipped between terms.
const Whitespace = " \t\n\r"

// delimiters may directly follow a bounded literal besides whitespace.
const delimiters = "()\""

type Options struct {
	// Whitespace overrides the runes skipped between terms. Empty means the
	// package Whitespace set.
	Whitespace string
	// Lax turns off the delimiter check after nil, true, false, numbers and
	// the list dot, so "nilable" reads as nil followed by "able".
	Lax bool
	// AllowTrailing makes Parse ignore anything after the first term.
	AllowTrailing bool
}

// Grammar is an immutable set of parsers for the term language, built from
// Options. It is safe for concurrent use.
type Grammar struct {
	opts Options

	ws      Parser
	nilLit  Parser
	boolean Parser
	number  Parser
	str     Parser
	cons    Parser
	term    Parser
	top     Parser
}

var StrictParser = New(Options{})
var LaxParser = New(Options{Lax: true})

// Parse reads exactly one term from input using StrictParser.
func Parse(input string) (*Term, error) {
	return StrictParser.Parse(input)
}

// ParsePrefix reads one term from the start of input using StrictParser and
// returns it with the unread remainder.
func ParsePrefix(input string) (PartialParse, error) {
	return StrictParser.ParsePrefix(input)
}

// ParseAll reads every term in input using StrictParser.
func ParseAll(input string) ([]*Term, error) {
	return StrictParser.ParseAll(input)
}

// SkipWhitespace returns input without its leading whitespace.
func SkipWhitespace(input string) string {
	return StrictParser.SkipWhitespace(input)
}

// ParseNil skips leading whitespace and matches the nil literal.
func ParseNil(input string) (PartialParse, error) {
	pp, err := Then(StrictParser.ws, StrictParser.nilLit)(input)
	if err != nil {
		return fail(Generic("not a nil"))
	}
	return pp, nil
}

func New(opts Options) *Grammar {
	if opts.Whitespace == "" {
		opts.Whitespace = Whitespace
	}

	g := &Grammar{opts: opts}
	g.ws = KleeneStar(SkipOneOf(opts.Whitespace))

	bound := func(p Parser) Parser {
		if opts.Lax {
			return p
		}
		return Bounded(p, opts.Whitespace+delimiters)
	}

	// grammar rules reach the term parser through ref since g.term is
	// assigned last:
	ref := func(input string) (PartialParse, error) {
		return g.term(input)
	}

	g.nilLit = bound(Map(Literal("nil"), constant(Nil)))
	g.boolean = bound(Either(
		Map(Literal("true"), constant(func() *Term { return Boolean(true) })),
		Map(Literal("false"), constant(func() *Term { return Boolean(false) })),
	))
	g.number = bound(Map(
		Then(Optional(SkipOneOf("+-")), Plus(SkipOneOf("0123456789"))),
		parseNumber,
	))
	g.str = g.stringParser()
	g.cons = g.consParser(ref, bound)

	alternatives := Choice(g.nilLit, g.boolean, g.number, g.str, g.cons)
	g.term = Then(g.ws, func(input string) (PartialParse, error) {
		pp, err := alternatives(input)
		if err == nil {
			return pp, nil
		}
		if !IsKind(err, KindGeneric) {
			return PartialParse{}, err
		}
		if len(input) == 0 {
			return fail(newError(KindEndOfInput, "unexpected end of input"))
		}
		return fail(Generic("no term matched"))
	})

	if opts.AllowTrailing {
		g.top = g.term
	} else {
		g.top = Skip(g.term, Label(Then(g.ws, End()), KindTrailingInput, "unexpected trailing input"))
	}

	return g
}

func constant(f func() *Term) func(string, *Term) (*Term, error) {
	return func(string, *Term) (*Term, error) {
		return f(), nil
	}
}

func parseNumber(matched string, _ *Term) (*Term, error) {
	// the matched text is already a well formed decimal:
	v, err := strconv.ParseInt(matched, 10, 64)
	if err != nil {
		return nil, newError(KindNumberRange, "number out of range: "+matched)
	}
	return Number(v), nil
}

func (g *Grammar) stringParser() Parser {
	escape := Then(SkipOneOf(`\`), SkipAny())
	body := KleeneStar(Either(SkipNoneOf(`"\`), escape))
	closing := Label(SkipOneOf(`"`), KindUnterminated, "unterminated string")

	return Map(
		Then(SkipOneOf(`"`), Then(body, closing)),
		func(matched string, _ *Term) (*Term, error) {
			return String(unescape(matched[1 : len(matched)-1])), nil
		},
	)
}

func unescape(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	escaped := false
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		// invalid bytes are kept as they are, escaped or not:
		text := raw[i : i+size]
		i += size

		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				sb.WriteString(text)
			}
			continue
		}

		escaped = false
		switch r {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}

// consParser reads a parenthesized list:
//
//	list := "(" ( ")" | term tail )
//	tail := ")" | "." term ")" | term tail
func (g *Grammar) consParser(term Parser, bound func(Parser) Parser) Parser {
	unterminated := Map(Then(g.ws, End()), func(string, *Term) (*Term, error) {
		return nil, newError(KindUnterminated, "unterminated list")
	})
	closing := Either(Map(Then(g.ws, Literal(")")), constant(Nil)), unterminated)
	dot := Then(g.ws, bound(Literal(".")))

	var tail Parser
	tailRef := func(input string) (PartialParse, error) {
		return tail(input)
	}
	tail = Choice(
		closing,
		Then(dot, Skip(term, closing)),
		Sequence(term, tailRef, Cons),
	)

	// a dot is only valid after the first element:
	return Then(Literal("("), Choice(closing, Sequence(term, tailRef, Cons)))
}

// Term returns the parser for a single term, including leading whitespace.
func (g *Grammar) Term() Parser {
	return g.term
}

func (g *Grammar) SkipWhitespace(input string) string {
	pp, _ := g.ws(input)
	return pp.Rest
}

func (g *Grammar) Parse(input string) (*Term, error) {
	pp, err := g.top(input)
	if err != nil {
		return nil, err
	}
	return pp.Term, nil
}

func (g *Grammar) ParsePrefix(input string) (PartialParse, error) {
	return g.term(input)
}

func (g *Grammar) ParseAll(input string) ([]*Term, error) {
	var terms []*Term
	rest := g.SkipWhitespace(input)
	for len(rest) > 0 {
		pp, err := g.term(rest)
		if err != nil {
			return nil, err
		}
		terms = append(terms, pp.Term)
		rest = g.SkipWhitespace(pp.Rest)
	}
	return terms, nil
}
