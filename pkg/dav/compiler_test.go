package dav

import (
	"strings"
	"testing"

	"github.com/dav-lang/davc/internal/fixtures"
	"github.com/stretchr/testify/assert"
)

func compileString(t *testing.T, src string) *Result {
	t.Helper()
	r, err := Compile(strings.NewReader(src), "test.dav")
	assert.NoError(t, err)
	return r
}

// TestEndToEndScenarios exercises the six input/output pairs the grammar and
// type-directed emission rules are built around: a plain int declaration, a
// string equality rewrite, array/while lowering, the string concatenation
// overload, redefinition producing exactly one diagnostic, and char
// printing.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("int declaration and print", func(t *testing.T) {
		r := compileString(t, `beg int x = 10; ah int main() { boo(x); return 0; }`)
		assert.Empty(t, r.Diagnostics)
		assert.Contains(t, r.C, "int x = 10;")
		assert.Contains(t, r.C, "int main() {")
		assert.Contains(t, r.C, "printf(\"%d\\n\", x);")
		assert.Contains(t, r.C, "return 0;")
	})

	t.Run("string equality rewrites to strcmp", func(t *testing.T) {
		r := compileString(t, `ah int main() { beg char* s = "hi"; if s == "hi" { boo(s); } return 0; }`)
		assert.Empty(t, r.Diagnostics)
		assert.Contains(t, r.C, `if (strcmp(s, "hi") == 0) {`)
		assert.Contains(t, r.C, `printf("%s\n", s);`)
	})

	t.Run("array indexing and while", func(t *testing.T) {
		r := compileString(t, `ah int main() { beg int a[3]; beg int i = 0; while i < 3 { a[i] = i; i = i + 1; } return 0; }`)
		assert.Empty(t, r.Diagnostics)
		assert.Contains(t, r.C, "int a[3];")
		assert.Contains(t, r.C, "while (i < 3) {")
		assert.Contains(t, r.C, "a[i] = i;")
		assert.Contains(t, r.C, "i = i + 1;")
	})

	t.Run("string plus string concatenates", func(t *testing.T) {
		r := compileString(t, `ah char* greet(char* n) { return "hi" + n; }`)
		assert.Empty(t, r.Diagnostics)
		assert.Contains(t, r.C, `return concat("hi", n);`)
		assert.Contains(t, r.C, "char* greet(char* n) {")
	})

	t.Run("redefinition yields exactly one diagnostic", func(t *testing.T) {
		r := compileString(t, `beg int x = 1; beg int x = 2;`)
		if assert.Len(t, r.Diagnostics, 1) {
			assert.Contains(t, r.Diagnostics[0].Message, "Redefinition")
			assert.Contains(t, r.Diagnostics[0].Message, "x")
		}
	})

	t.Run("char literal prints with %c", func(t *testing.T) {
		r := compileString(t, `ah int main() { beg char c = 'a'; boo(c); return 0; }`)
		assert.Empty(t, r.Diagnostics)
		assert.Contains(t, r.C, `printf("%c\n", c);`)
	})
}

func TestUndeclaredIdentifierDiagnoses(t *testing.T) {
	r := compileString(t, `ah int main() { boo(missing); return 0; }`)
	if assert.NotEmpty(t, r.Diagnostics) {
		assert.Contains(t, r.Diagnostics[0].Message, "undeclared identifier")
	}
}

func TestCallArityMismatchDiagnoses(t *testing.T) {
	r := compileString(t, `ah int add(int a, int b) { return a + b; } ah int main() { beg int x = add(1); return 0; }`)
	found := false
	for _, d := range r.Diagnostics {
		if strings.Contains(d.Message, "expects 2 argument(s), got 1") {
			found = true
		}
	}
	assert.True(t, found, "expected an arity diagnostic, got %v", r.Diagnostics)
}

func TestCallArgumentTypeMismatchDiagnoses(t *testing.T) {
	r := compileString(t, `ah int add(int a, int b) { return a + b; } ah int main() { beg int x = add("s", 1); return 0; }`)
	found := false
	for _, d := range r.Diagnostics {
		if strings.Contains(d.Message, "argument 1 to 'add'") {
			found = true
		}
	}
	assert.True(t, found, "expected an argument-type diagnostic, got %v", r.Diagnostics)
}

func TestIntPointerArithmeticKeepsPointerType(t *testing.T) {
	r := compileString(t, `ah int main() { beg int a[3]; beg int* p = a; beg int* q = p + 1; return 0; }`)
	assert.Empty(t, r.Diagnostics)
	assert.Contains(t, r.C, "int* q = p + 1;")
}

func TestSubtractingPointerFromIntIsRejected(t *testing.T) {
	r := compileString(t, `ah int main() { beg int a[3]; beg int* p = a; beg int* q = 1 - p; return 0; }`)
	found := false
	for _, d := range r.Diagnostics {
		if strings.Contains(d.Message, "cannot subtract a pointer from an integer") {
			found = true
		}
	}
	assert.True(t, found, "expected a pointer-subtraction diagnostic, got %v", r.Diagnostics)
}

func TestFixtureProgramCompilesCleanly(t *testing.T) {
	r := compileString(t, fixtures.Program)
	assert.Empty(t, r.Diagnostics)
	assert.Contains(t, r.C, "#include <stdio.h>")
	assert.Contains(t, r.C, "char* concat(char* str1, char* str2)")
}
