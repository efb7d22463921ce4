// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

/*
Package lex provides the core of a lexer built as a Deterministic Finite State
Automaton whose states and associated actions are implemented as functions.

The rule language lexer in package lexer is a set of state functions driven by
this package. The package streams input from an io.Reader with up to
BackupBufferSize-1 runes of look-ahead and keeps track of line starts so that
any byte offset can be turned back into a line and column, or a
token.LineInfo, after the fact.

State functions

A StateFn is both state and action: it reads from the input, possibly emits
items, and returns the next state. Returning nil transitions back to the
initial state function given to NewLexer:

	type StateFn func(*State) StateFn

	// One iteration:
	state = state(s)

Items are queued in a FIFO rather than sent over a channel. A StateFn that has
called Emit should return as soon as possible so that the caller of Lex can
dequeue the item, but the queue grows as needed.

EOF conditions must be handled by the initial state function, which must emit
a token.EOF item whenever it reads EOF. EOF is not a valid rune, so the usual
unicode predicates return false for it and other states need not check it
explicitly, except for tokens that need a terminator, like quoted strings.

Error handling

Invalid UTF-8 input, NUL bytes, BOMs past the start of the input and I/O
errors are reported as token.Error items and skipped. Lexing always continues
up to EOF, so Error items may appear alongside otherwise valid tokens.
*/
package lex
