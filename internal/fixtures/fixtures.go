// Package fixtures provides random-but-valid Dav source snippets for
// lexer/parser tests and benchmarks.
package fixtures

import (
	"math/rand"
	"strings"
)

const validLexemes = "ah;beg;boo;if;else;while;return;int;char;void;(;);{;};[;];;;,;=;==;!=;<;>;<=;>=;&&;||;+;-;*;/;x;y;count;\"hello\";\"world\";'a';'z';123;0;//comment\n;\n"

// GetRandomTokens returns size lexemes, each drawn independently from Dav's
// keyword/operator/literal vocabulary, space-separated.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

// GetRandomTokensWithSep is GetRandomTokens with a caller-chosen separator,
// letting a test probe the lexer's whitespace handling.
func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validLexemes, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// Program is a small, complete, well-typed Dav program exercising functions,
// control flow, arrays, and string/int/char printing; a smoke-test fixture
// for golden-file and end-to-end tests.
const Program = `
ah int add(int a, int b) {
	return a + b;
}

ah void main() {
	beg int x = 10;
	beg int y = 20;
	boo(add(x, y));

	beg char* name = "dav";
	boo(name);

	beg int nums[4];
	nums[0] = 1;
	nums[1] = nums[0] + 1;
	boo(nums[1]);

	beg int i = 0;
	while (i < 3) {
		if (i == 1) {
			boo('!');
		} else {
			boo(i);
		}
		i = i + 1;
	}
}
`
