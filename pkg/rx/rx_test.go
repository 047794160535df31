package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metercore/mcore/pkg/errs"
)

func compileErrCode(t *testing.T, pattern string) errs.Code {
	t.Helper()
	_, err := Compile(pattern, false)
	require.Error(t, err, "pattern %q should not compile", pattern)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	return e.Code
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		pattern string
		code    errs.Code
	}{
		{"(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)", errs.CodeRegexpTooManyParens},
		{"abc\\", errs.CodeRegexpTrailingBackslash},
		{"a[]b", errs.CodeRegexpEmptyBrackets},
		{"a[z-a]b", errs.CodeRegexpBadRange},
		{"abc)", errs.CodeRegexpUnmatchedParen},
		{"(abc", errs.CodeRegexpUnterminatedParen},
		{"a**", errs.CodeRegexpNestedQuantifier},
		{"*a", errs.CodeRegexpQuantifierNoOperand},
		{"(a*)*", errs.CodeRegexpEmptyMatchUnderRepeat},
	}
	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.code, compileErrCode(t, tc.pattern))
		})
	}
}

func TestBasicMatching(t *testing.T) {
	re, err := Compile("a+b", false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("xxaaab"))
	assert.True(t, re.MatchString("ab"))
	assert.False(t, re.MatchString("b"))
	assert.False(t, re.MatchString("AAB"))
}

func TestCaseInsensitiveFold(t *testing.T) {
	re, err := Compile("meter", true)
	require.NoError(t, err)
	assert.True(t, re.MatchString("MeTeR"))
	assert.True(t, re.MatchString("METER"))
	assert.False(t, re.MatchString("metre"))

	// folding leaves bracket expressions alone
	re2, err := Compile("[abc]x", true)
	require.NoError(t, err)
	assert.True(t, re2.MatchString("bX"))
	assert.False(t, re2.MatchString("Bx"))
}

func TestAnchors(t *testing.T) {
	re, err := Compile("^ab$", false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("ab"))
	assert.False(t, re.MatchString("xab"))
	assert.False(t, re.MatchString("abx"))
}

func TestWordAnchors(t *testing.T) {
	re, err := Compile(`\<cat\>`, false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("a cat sat"))
	assert.True(t, re.MatchString("cat"))
	assert.False(t, re.MatchString("concatenate"))
	assert.False(t, re.MatchString("cats"))
}

func TestCaptureGroups(t *testing.T) {
	re, err := Compile(`(a+)(b+)`, false)
	require.NoError(t, err)
	require.True(t, re.MatchString("xxaabbb"))
	assert.Equal(t, 2, re.GetCount())
	assert.Equal(t, "aabbb", re.Item(0))
	assert.Equal(t, "aa", re.Item(1))
	assert.Equal(t, "bbb", re.Item(2))
	assert.Equal(t, 2, re.GetItemStart(0))
	assert.Equal(t, 2, re.GetItemStart(1))
	assert.Equal(t, 4, re.GetItemStart(2))
	assert.Equal(t, 3, re.GetItemLength(2))
	assert.Equal(t, "", re.Item(3))
	assert.Equal(t, -1, re.GetItemStart(3))
}

func TestReaderAddressScenario(t *testing.T) {
	re, err := Compile("^[\t ]*(.*)[\t ]*\\((.*)\\)", false)
	require.NoError(t, err)
	require.True(t, re.MatchString("example.com!david(David)"))
	assert.Equal(t, 2, re.GetCount())
	assert.Equal(t, "example.com!david", re.Item(1))
	assert.Equal(t, "David", re.Item(2))
	assert.Equal(t, 18, re.GetItemStart(2))
	assert.Equal(t, 5, re.GetItemLength(2))
}

func TestAlternation(t *testing.T) {
	re, err := Compile("ST|MT|SF|MF", false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("MT17"))
	assert.True(t, re.MatchString("ST1"))
	assert.False(t, re.MatchString("XT1"))
}

func TestBracketExpressions(t *testing.T) {
	re, err := Compile("[0-9a-f]+", false)
	require.NoError(t, err)
	require.True(t, re.MatchString("zz7fc0zz"))
	assert.Equal(t, "7fc0", re.Item(0))

	neg, err := Compile("[^0-9]+", false)
	require.NoError(t, err)
	require.True(t, neg.MatchString("123abc456"))
	assert.Equal(t, "abc", neg.Item(0))
}

func TestReplaceTemplate(t *testing.T) {
	re, err := Compile(`(\<[a-z]+\>) (\<[a-z]+\>)`, false)
	require.NoError(t, err)
	require.True(t, re.MatchString("hello world"))
	assert.Equal(t, "world hello", re.GetReplaceString(`\2 \1`))
	assert.Equal(t, "hello world", re.GetReplaceString("&"))
	assert.Equal(t, "&\\", re.GetReplaceString(`\&\\`))
	assert.Equal(t, "", re.GetReplaceString(`\9`)) // missing slot is empty
}

func TestMatchIdempotence(t *testing.T) {
	first, err := Compile("a(b+)c", false)
	require.NoError(t, err)
	second, err := Compile("a(b+)c", false)
	require.NoError(t, err)

	input := "xabbbcx"
	require.True(t, first.MatchString(input))
	require.True(t, second.MatchString(input))
	assert.Equal(t, first.Item(0), second.Item(0))
	assert.Equal(t, first.Item(1), second.Item(1))

	// matching again over the same input reproduces the same slots
	require.True(t, first.MatchString(input))
	assert.Equal(t, second.Item(1), first.Item(1))

	// the whole match always equals the '&' expansion
	assert.Equal(t, first.Item(0), first.GetReplaceString("&"))
}

func TestFailedMatchClearsState(t *testing.T) {
	re, err := Compile("(a)", false)
	require.NoError(t, err)
	require.True(t, re.MatchString("a"))
	require.False(t, re.MatchString("b"))
	assert.Equal(t, 0, re.GetCount())
	assert.Equal(t, "", re.Item(0))
}
