package glterm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipWhitespace(t *testing.T) {
	assert.Equal(t, "abc", SkipWhitespace("   abc"))
	assert.Equal(t, "abc \n", SkipWhitespace("\t\n\r abc \n"))
	assert.Equal(t, "", SkipWhitespace("  "))
	assert.Equal(t, "", SkipWhitespace(""))

	for _, s := range []string{"", " ", "  x ", "\n\tnil", "nil", " \r\n "} {
		once := SkipWhitespace(s)
		assert.Equal(t, once, SkipWhitespace(once), "idempotent for %q", s)
	}
}

func TestParseNil(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRest string
		wantErr  bool
	}{
		{name: "xpass: nil followed by space", input: "nil ", wantRest: " "},
		{name: "xpass: bare nil", input: "nil", wantRest: ""},
		{name: "xpass: leading whitespace", input: " \t nil)", wantRest: ")"},
		{name: "xfail: not nil", input: "xyz", wantErr: true},
		{name: "xfail: empty", input: "", wantErr: true},
		{name: "xfail: wrong case", input: "NIL", wantErr: true},
		{name: "xfail: nil prefix of a longer word", input: "nilable", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp, err := ParseNil(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindGeneric))
				assert.Equal(t, "not a nil", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Nil(), pp.Term)
			assert.Equal(t, tt.wantRest, pp.Rest)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     *Term
		wantKind ErrorKind
		wantErr  bool
	}{
		{name: "xpass: nil", input: "nil", want: Nil()},
		{name: "xpass: nil with whitespace", input: "  nil \n", want: Nil()},
		{name: "xpass: true", input: "true", want: Boolean(true)},
		{name: "xpass: false", input: "false", want: Boolean(false)},
		{name: "xpass: number", input: "1023", want: Number(1023)},
		{name: "xpass: negative number", input: "-17", want: Number(-17)},
		{name: "xpass: explicit plus", input: "+5", want: Number(5)},
		{name: "xpass: int64 max", input: "9223372036854775807", want: Number(9223372036854775807)},
		{name: "xpass: int64 min", input: "-9223372036854775808", want: Number(-9223372036854775808)},
		{name: "xpass: string", input: `"abc"`, want: String("abc")},
		{name: "xpass: empty string", input: `""`, want: String("")},
		{name: "xpass: string with escapes", input: `"a\n\t\"b\\c\q"`, want: String("a\n\t\"b\\cq")},
		{name: "xpass: string with unicode", input: `"λx"`, want: String("λx")},
		{name: "xpass: string with invalid utf-8", input: "\"a\xffb\"", want: String("a\xffb")},
		{name: "xpass: invalid utf-8 next to an escape", input: "\"a\xff\\nb\\\xfe\"", want: String("a\xff\nb\xfe")},
		{name: "xpass: empty list", input: "()", want: Nil()},
		{name: "xpass: empty list with whitespace", input: "(  \n )", want: Nil()},
		{name: "xpass: list of one", input: "(1)", want: List(Number(1))},
		{name: "xpass: mixed list", input: `(nil true 1 "s")`, want: List(Nil(), Boolean(true), Number(1), String("s"))},
		{name: "xpass: nested lists", input: "(1 (2 3) ())", want: List(Number(1), List(Number(2), Number(3)), Nil())},
		{name: "xpass: list without spaces around parens", input: `((1)"a"(nil))`, want: List(List(Number(1)), String("a"), List(Nil()))},
		{name: "xpass: dotted pair", input: "(1 . 2)", want: Cons(Number(1), Number(2))},
		{name: "xpass: dotted list", input: "(1 2 . 3)", want: DottedList(Number(3), Number(1), Number(2))},
		{name: "xpass: dotted nil is a proper list", input: "(1 . nil)", want: List(Number(1))},
		{name: "xpass: dot before list", input: "(1 .(2))", want: List(Number(1), Number(2))},

		{name: "xfail: empty input", input: "", wantErr: true, wantKind: KindEndOfInput},
		{name: "xfail: only whitespace", input: " \n ", wantErr: true, wantKind: KindEndOfInput},
		{name: "xfail: unknown literal", input: "xyz", wantErr: true, wantKind: KindGeneric},
		{name: "xfail: nil prefix", input: "nilable", wantErr: true, wantKind: KindGeneric},
		{name: "xfail: number followed by letters", input: "12ab", wantErr: true, wantKind: KindGeneric},
		{name: "xfail: lone sign", input: "-", wantErr: true, wantKind: KindGeneric},
		{name: "xfail: number overflow", input: "9223372036854775808", wantErr: true, wantKind: KindNumberRange},
		{name: "xfail: unterminated string", input: `"abc`, wantErr: true, wantKind: KindUnterminated},
		{name: "xfail: string ending in backslash", input: `"abc\`, wantErr: true, wantKind: KindUnterminated},
		{name: "xfail: unterminated list", input: "(1 2", wantErr: true, wantKind: KindUnterminated},
		{name: "xfail: unterminated empty list", input: "(", wantErr: true, wantKind: KindUnterminated},
		{name: "xfail: unterminated dotted list", input: "(1 . 2", wantErr: true, wantKind: KindUnterminated},
		{name: "xfail: unterminated string in list", input: `(1 "a)`, wantErr: true, wantKind: KindUnterminated},
		{name: "xfail: overflow in list", input: "(1 99999999999999999999)", wantErr: true, wantKind: KindNumberRange},
		{name: "xfail: mismatched close", input: ")", wantErr: true, wantKind: KindGeneric},
		{name: "xfail: leading dot", input: "(. 1)", wantErr: true, wantKind: KindGeneric},
		{name: "xfail: two terms after dot", input: "(1 . 2 3)", wantErr: true, wantKind: KindGeneric},
		{name: "xfail: trailing input", input: "nil nil", wantErr: true, wantKind: KindTrailingInput},
		{name: "xfail: trailing close", input: "(1))", wantErr: true, wantKind: KindTrailingInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				var pe *ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, tt.wantKind, pe.Kind, "error %q", pe.Message)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_ErrorMessages(t *testing.T) {
	_, err := Parse("xyz")
	require.EqualError(t, err, "no term matched")

	_, err = Parse("")
	require.EqualError(t, err, "unexpected end of input")

	_, err = Parse(`"abc`)
	require.EqualError(t, err, "unterminated string")

	_, err = Parse("(1 2")
	require.EqualError(t, err, "unterminated list")

	_, err = Parse("1 2")
	require.EqualError(t, err, "unexpected trailing input")
}

func TestParsePrefix(t *testing.T) {
	pp, err := ParsePrefix("  (1 2) rest")
	require.NoError(t, err)
	assert.Equal(t, List(Number(1), Number(2)), pp.Term)
	assert.Equal(t, " rest", pp.Rest)

	_, err = ParsePrefix("nilable")
	require.Error(t, err)
}

func TestLaxParser(t *testing.T) {
	pp, err := LaxParser.ParsePrefix("nilable")
	require.NoError(t, err)
	assert.Equal(t, Nil(), pp.Term)
	assert.Equal(t, "able", pp.Rest)

	pp, err = LaxParser.ParsePrefix("12ab")
	require.NoError(t, err)
	assert.Equal(t, Number(12), pp.Term)
	assert.Equal(t, "ab", pp.Rest)

	_, err = LaxParser.Parse("truex")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTrailingInput))

	got, err := LaxParser.Parse("(1 .2)")
	require.NoError(t, err)
	assert.Equal(t, Cons(Number(1), Number(2)), got)
}

func TestAllowTrailing(t *testing.T) {
	g := New(Options{AllowTrailing: true})

	got, err := g.Parse("1 2 garbage")
	require.NoError(t, err)
	assert.Equal(t, Number(1), got)

	_, err = g.Parse("")
	require.Error(t, err)
}

func TestCustomWhitespace(t *testing.T) {
	g := New(Options{Whitespace: " ,"})

	got, err := g.Parse("(1,2, 3)")
	require.NoError(t, err)
	assert.Equal(t, List(Number(1), Number(2), Number(3)), got)

	_, err = g.Parse("(1\n2)")
	require.Error(t, err)

	// carriage return is only whitespace by default:
	g = New(Options{Whitespace: " \t\n"})
	_, err = g.Parse("(1\r\n2)")
	require.Error(t, err)
	got, err = StrictParser.Parse("(1\r\n2)")
	require.NoError(t, err)
	assert.Equal(t, List(Number(1), Number(2)), got)
}

func TestGrammar_Term(t *testing.T) {
	// a comma separated sequence of terms built on top of the grammar:
	g := New(Options{Lax: true})
	comma := Then(Literal(","), g.Term())
	seq := Sequence(g.Term(), KleeneStar(comma), func(first, _ *Term) *Term {
		return first
	})

	pp, err := seq(" 1, (2 3),\"x\" rest")
	require.NoError(t, err)
	assert.Equal(t, Number(1), pp.Term)
	assert.Equal(t, " rest", pp.Rest)

	pp, err = Skip(g.Term(), End())(" (1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnterminated))
	assert.Equal(t, PartialParse{}, pp)
}

func TestParseAll(t *testing.T) {
	terms, err := ParseAll(" nil 1\n(2 . 3) \"x\" ")
	require.NoError(t, err)
	assert.Equal(t, []*Term{Nil(), Number(1), Cons(Number(2), Number(3)), String("x")}, terms)

	terms, err = ParseAll("  \n")
	require.NoError(t, err)
	assert.Empty(t, terms)

	_, err = ParseAll("1 (2")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnterminated))
}

func TestParse_RestIsViewIntoInput(t *testing.T) {
	input := `"plain" tail`
	pp, err := ParsePrefix(input)
	require.NoError(t, err)
	assert.Equal(t, " tail", pp.Rest)
	assert.Equal(t, input[len(input)-len(pp.Rest):], pp.Rest)
}

func TestParse_Concurrent(t *testing.T) {
	inputs := []string{"(1 2 3)", `("a" "b")`, "(nil . true)", "-42"}
	done := make(chan error, 4*len(inputs))
	for i := 0; i < 4; i++ {
		for _, in := range inputs {
			in := in
			go func() {
				_, err := Parse(in)
				done <- err
			}()
		}
	}
	for i := 0; i < 4*len(inputs); i++ {
		require.NoError(t, <-done)
	}
}
