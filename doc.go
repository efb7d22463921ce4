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
Package nlex compiles tokenizer rule files into an Artifact.

A rule file describes the behavior of a text tokenizer: named constants and
pattern rules, stopword lists, per-character normalisations and a few boolean
options:

	# constants are stored verbatim
	vowel :- "[aeiou]"

	# rules reference earlier definitions with {{name}}
	syllable :: [^aeiou]*{{vowel}}+

	option stem on
	stopword "the", "a", -"stopwords.txt"
	[éèê] <= e

Compilation is a single forward pass: statements are evaluated in source
order, as soon as they are parsed, so a rule may only reference names defined
on a previous line.

Errors in the rule file are reported as diagnostics (see package diag) and
never stop a compile. The result always holds a best-effort Artifact along
with every diagnostic emitted; callers that need strict correctness should
check Result.Err.

The Artifact is the input of a code generator that turns the rules into an
actual tokenizer. Package backend describes the interfaces of that tokenizer
and of the build service that produces it.
*/
package nlex
