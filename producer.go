package glterm

// Constructors for terms. Parsers and tests build terms through these so
// that every Term carries only the fields of its Kind.

func Empty() *Term {
	return &Term{Kind: KindEmpty}
}

func Nil() *Term {
	return &Term{Kind: KindNil}
}

func Number(v int64) *Term {
	return &Term{Kind: KindNumber, Number: v}
}

func String(s string) *Term {
	return &Term{Kind: KindString, Text: s}
}

func Boolean(b bool) *Term {
	return &Term{Kind: KindBoolean, Boolean: b}
}

func Cons(head, tail *Term) *Term {
	return &Term{Kind: KindCons, Head: head, Tail: tail}
}

// List builds a proper list of items. An empty list is Nil.
func List(items ...*Term) *Term {
	return DottedList(Nil(), items...)
}

// DottedList builds a list of items whose final tail is tail instead of Nil.
func DottedList(tail *Term, items ...*Term) *Term {
	n := tail
	for i := len(items) - 1; i >= 0; i-- {
		n = Cons(items[i], n)
	}
	return n
}
