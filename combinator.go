package glterm

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// PartialParse is the result of a successful Parser application. Rest is the
// unconsumed suffix of the input that was given to the parser.
type PartialParse struct {
	Term *Term
	Rest string
}

// Parser consumes a prefix of input. On success Rest is always a suffix of
// input; on failure the returned error is a *ParseError and nothing is
// consumed.
type Parser func(input string) (PartialParse, error)

func fail(err *ParseError) (PartialParse, error) {
	return PartialParse{}, err
}

func consumed(input, rest string) string {
	return input[:len(input)-len(rest)]
}

// SkipOneOf matches exactly one rune that is contained in charset.
func SkipOneOf(charset string) Parser {
	return func(input string) (PartialParse, error) {
		// check length before decoding so empty input never indexes:
		if len(input) == 0 {
			return fail(Generic("no match"))
		}

		r, size := utf8.DecodeRuneInString(input)
		if !strings.ContainsRune(charset, r) {
			return fail(Generic("no match"))
		}

		return PartialParse{Term: Empty(), Rest: input[size:]}, nil
	}
}

// SkipNoneOf matches exactly one rune that is not contained in charset.
func SkipNoneOf(charset string) Parser {
	return func(input string) (PartialParse, error) {
		if len(input) == 0 {
			return fail(newError(KindEndOfInput, "unexpected end of input"))
		}

		r, size := utf8.DecodeRuneInString(input)
		if strings.ContainsRune(charset, r) {
			return fail(Generic("no match"))
		}

		return PartialParse{Term: Empty(), Rest: input[size:]}, nil
	}
}

// SkipAny matches exactly one rune.
func SkipAny() Parser {
	return SkipNoneOf("")
}

// Literal matches text exactly and case-sensitively. text must not be empty.
func Literal(text string) Parser {
	return func(input string) (PartialParse, error) {
		if !strings.HasPrefix(input, text) {
			return fail(Generic("expected " + strconv.Quote(text)))
		}
		return PartialParse{Term: Empty(), Rest: input[len(text):]}, nil
	}
}

// End succeeds without consuming anything when input is empty.
func End() Parser {
	return func(input string) (PartialParse, error) {
		if len(input) != 0 {
			return fail(Generic("expected end of input"))
		}
		return PartialParse{Term: Empty(), Rest: input}, nil
	}
}

// KleeneStar applies op as many times as it succeeds and never fails. Zero
// matches leave the input untouched.
//
// op must consume at least one byte on every success. Repetition stops at
// the first success that does not make progress.
func KleeneStar(op Parser) Parser {
	return func(input string) (PartialParse, error) {
		cursor := input
		for {
			pp, err := op(cursor)
			if err != nil || len(pp.Rest) >= len(cursor) {
				break
			}
			cursor = pp.Rest
		}
		return PartialParse{Term: Empty(), Rest: cursor}, nil
	}
}

// Plus is KleeneStar requiring at least one match.
func Plus(op Parser) Parser {
	star := KleeneStar(op)
	return func(input string) (PartialParse, error) {
		first, err := op(input)
		if err != nil {
			return PartialParse{}, err
		}
		return star(first.Rest)
	}
}

// Either returns p1's result if it succeeds, otherwise p2 applied to the
// original input.
func Either(p1, p2 Parser) Parser {
	return func(input string) (PartialParse, error) {
		pp, err := p1(input)
		if err == nil {
			return pp, nil
		}
		return p2(input)
	}
}

// Choice tries each parser in order against the same input and returns the
// first success. When every branch fails the first error that is more
// specific than KindGeneric is returned, or else the last branch's error.
func Choice(ps ...Parser) Parser {
	return func(input string) (PartialParse, error) {
		var specific, last error = nil, Generic("no alternatives")
		for _, p := range ps {
			pp, err := p(input)
			if err == nil {
				return pp, nil
			}
			if specific == nil && !IsKind(err, KindGeneric) {
				specific = err
			}
			last = err
		}
		if specific != nil {
			return PartialParse{}, specific
		}
		return PartialParse{}, last
	}
}

// Sequence applies a, then b to a's remainder, and joins both terms with
// combine.
func Sequence(a, b Parser, combine func(x, y *Term) *Term) Parser {
	return func(input string) (PartialParse, error) {
		x, err := a(input)
		if err != nil {
			return PartialParse{}, err
		}
		y, err := b(x.Rest)
		if err != nil {
			return PartialParse{}, err
		}
		return PartialParse{Term: combine(x.Term, y.Term), Rest: y.Rest}, nil
	}
}

// Then sequences a and b and keeps b's term.
func Then(a, b Parser) Parser {
	return Sequence(a, b, func(_, y *Term) *Term { return y })
}

// Skip sequences a and b and keeps a's term.
func Skip(a, b Parser) Parser {
	return Sequence(a, b, func(x, _ *Term) *Term { return x })
}

// Optional never fails; when p fails it succeeds with Empty and consumes
// nothing. Not suitable as the operand of KleeneStar.
func Optional(p Parser) Parser {
	return func(input string) (PartialParse, error) {
		pp, err := p(input)
		if err != nil {
			return PartialParse{Term: Empty(), Rest: input}, nil
		}
		return pp, nil
	}
}

// Map transforms the term of a successful p. f receives the exact text p
// consumed.
func Map(p Parser, f func(matched string, t *Term) (*Term, error)) Parser {
	return func(input string) (PartialParse, error) {
		pp, err := p(input)
		if err != nil {
			return PartialParse{}, err
		}
		t, err := f(consumed(input, pp.Rest), pp.Term)
		if err != nil {
			return PartialParse{}, err
		}
		return PartialParse{Term: t, Rest: pp.Rest}, nil
	}
}

// Label replaces a KindGeneric failure of p with an error of the given kind
// and message. More specific failures pass through unchanged.
func Label(p Parser, kind ErrorKind, msg string) Parser {
	return func(input string) (PartialParse, error) {
		pp, err := p(input)
		if err != nil {
			if IsKind(err, KindGeneric) {
				return fail(newError(kind, msg))
			}
			return PartialParse{}, err
		}
		return pp, nil
	}
}

// Bounded succeeds when p succeeds and what follows is either the end of
// input or a rune from delimiters.
func Bounded(p Parser, delimiters string) Parser {
	return func(input string) (PartialParse, error) {
		pp, err := p(input)
		if err != nil {
			return PartialParse{}, err
		}
		if len(pp.Rest) == 0 {
			return pp, nil
		}

		r, _ := utf8.DecodeRuneInString(pp.Rest)
		if !strings.ContainsRune(delimiters, r) {
			return fail(Generic("expected delimiter after " + strconv.Quote(consumed(input, pp.Rest))))
		}
		return pp, nil
	}
}
