// Lisp-like data term reader built from parser combinators
//
// a term is read straight from the input text, without a separate
// tokenization pass, by parsers that each consume a prefix of their input
// and hand back the unconsumed remainder:
//
//	type Parser func(input string) (PartialParse, error)
//
// grammar parsers are composed from a small algebra (SkipOneOf, Literal,
// KleeneStar, Plus, Either, Choice, Sequence, Optional, Map, Label,
// Bounded) rather than written as hand-rolled loops.
//
// examples:
//
//	nil  true  -42  "abc\n"  (1 "two" (3 . 4) nil)
//
// BNF:
//
//	<term>        :: <ws> ( <nil> | <boolean> | <number> | <string> | <list> ) ;
//
//	<nil>         :: "nil" ;
//	<boolean>     :: "true" | "false" ;
//	<number>      :: [ "+" | "-" ] <digit>+ ;
//	<digit>       :: "0" | ... | "9" ;
//
//	<string>      :: "\"" ( <string-char> | <escape> )* "\"" ;
//	<string-char> :: <any char except "\"" and "\\"> ;
//	<escape>      :: "\\" <any char> ;
//
//	<list>        :: "(" <ws> ")" | "(" <term> <tail> ;
//	<tail>        :: <ws> ")" | <ws> "." <term> <ws> ")" | <term> <tail> ;
//
//	<ws>          :: ( " " | "\t" | "\n" | "\r" )* ;
//
// escapes "\n", "\t", "\r" and "\0" decode to control characters; any
// other escaped char stands for itself.
//
// nil, booleans, numbers and the list dot must be followed by the end of
// input, whitespace, "(", ")" or "\"" unless the grammar is built with
// Options.Lax. "nilable" is therefore not read as nil.
//
// numbers are signed 64-bit integers; the empty list "()" reads as nil and
// lists are chains of cons cells ending in nil.

package glterm
