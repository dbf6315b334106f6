package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, toks []Token) []Kind {
	t.Helper()
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestNegativeLiteralAfterOperator(t *testing.T) {
	toks, err := Lex("x + -1")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Ident, Plus, Int, EOF}, kinds(t, toks))
	assert.Equal(t, int64(-1), toks[2].Int)
}

func TestMinusIsBinaryAfterIdentifier(t *testing.T) {
	toks, err := Lex("x - 1")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Ident, Minus, Int, EOF}, kinds(t, toks))
	assert.Equal(t, int64(1), toks[2].Int)
}

func TestMinusIsBinaryAfterRParen(t *testing.T) {
	toks, err := Lex("f() - 1")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Ident, LParen, RParen, Minus, Int, EOF}, kinds(t, toks))
}

func TestMinusIsBinaryAfterThis(t *testing.T) {
	toks, err := Lex("THIS - 1")
	require.NoError(t, err)
	assert.Equal(t, []Kind{KwThis, Minus, Int, EOF}, kinds(t, toks))
}

func TestNegativeLiteralAtStartOfExpression(t *testing.T) {
	toks, err := Lex("-1")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Int, EOF}, kinds(t, toks))
	assert.Equal(t, int64(-1), toks[0].Int)
}

func TestNegativeLiteralAfterLParen(t *testing.T) {
	toks, err := Lex("(-1)")
	require.NoError(t, err)
	assert.Equal(t, []Kind{LParen, Int, RParen, EOF}, kinds(t, toks))
	assert.Equal(t, int64(-1), toks[1].Int)
}

func TestDurationSuffixesFoldToMilliseconds(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"5ms", 5},
		{"5s", 5_000},
		{"5m", 300_000},
		{"2h", 7_200_000},
	}
	for _, c := range cases {
		toks, err := Lex(c.src)
		require.NoError(t, err)
		require.Equal(t, []Kind{Duration, EOF}, kinds(t, toks))
		assert.Equal(t, c.want, toks[0].Int, "duration literal %q", c.src)
	}
}

func TestNegativeDurationFoldsThenNegates(t *testing.T) {
	toks, err := Lex("-2h")
	require.NoError(t, err)
	require.Equal(t, []Kind{Duration, EOF}, kinds(t, toks))
	assert.Equal(t, int64(-7_200_000), toks[0].Int)
}

func TestBareIntegerIsNotADuration(t *testing.T) {
	toks, err := Lex("5")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Int, EOF}, kinds(t, toks))
}

func TestDurationSuffixBacksOffBeforeLongerIdentifier(t *testing.T) {
	// "5msPerTick" must not silently lex as Duration(5): the suffix match
	// backs off when "ms" is immediately followed by another identifier
	// rune, leaving the digits as a plain Int and the rest as a separate
	// Ident (which the parser then rejects, rather than accepting a mangled
	// duration).
	toks, err := Lex("5msPerTick")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Int, Ident, EOF}, kinds(t, toks))
	assert.Equal(t, int64(5), toks[0].Int)
	assert.Equal(t, "msPerTick", toks[1].Text)
}

func TestFloatLiteralIsNeverADuration(t *testing.T) {
	toks, err := Lex("1.5")
	require.NoError(t, err)
	require.Equal(t, []Kind{Float, EOF}, kinds(t, toks))
	assert.Equal(t, 1.5, toks[0].Float)
}

func TestKeywordsAreRecognized(t *testing.T) {
	toks, err := Lex("BIRTH ENTOMB WITH SHOULD LEST RITE BEQUEATH ATTEMPT SALVAGE CONDEMN AND OR NOT")
	require.NoError(t, err)
	want := []Kind{
		KwBirth, KwEntomb, KwWith, KwShould, KwLest, KwRite, KwBequeath,
		KwAttempt, KwSalvage, KwCondemn, KwAnd, KwOr, KwNot, EOF,
	}
	assert.Equal(t, want, kinds(t, toks))
}

func TestBooleanLiteralsAreAliveDeadOnly(t *testing.T) {
	toks, err := Lex("ALIVE DEAD")
	require.NoError(t, err)
	require.Equal(t, []Kind{Bool, Bool, EOF}, kinds(t, toks))
	assert.True(t, toks[0].Bool)
	assert.False(t, toks[1].Bool)

	// Neither TRUE nor FALSE is a keyword: both lex as plain identifiers.
	toks, err = Lex("TRUE FALSE")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Ident, Ident, EOF}, kinds(t, toks))
}

func TestAthMarkerLexesAsSingleToken(t *testing.T) {
	toks, err := Lex("~ATH(T)")
	require.NoError(t, err)
	assert.Equal(t, []Kind{KwAth, LParen, Ident, RParen, EOF}, kinds(t, toks))
}

func TestStrayTildeIsALexError(t *testing.T) {
	_, err := Lex("~AT")
	require.Error(t, err)
	var target *Error
	assert.ErrorAs(t, err, &target)
}

func TestStringEscapes(t *testing.T) {
	toks, err := Lex(`"a\nb\tc\\d\"e"`)
	require.NoError(t, err)
	require.Equal(t, []Kind{String, EOF}, kinds(t, toks))
	assert.Equal(t, "a\nb\tc\\d\"e", toks[0].Text)
}

func TestUnknownEscapeSequenceIsALexError(t *testing.T) {
	_, err := Lex(`"\q"`)
	require.Error(t, err)
	var target *Error
	require.ErrorAs(t, err, &target)
	assert.Contains(t, target.Msg, `\q`)
}

func TestUnterminatedStringIsALexError(t *testing.T) {
	_, err := Lex(`"abc`)
	require.Error(t, err)
}

func TestUnterminatedStringAcrossNewlineIsALexError(t *testing.T) {
	_, err := Lex("\"abc\ndef\"")
	require.Error(t, err)
}

func TestLineCommentsAreSkipped(t *testing.T) {
	toks, err := Lex("1 // comment until end of line\n2")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Int, Int, EOF}, kinds(t, toks))
	assert.Equal(t, int64(1), toks[0].Int)
	assert.Equal(t, int64(2), toks[1].Int)
}

func TestTwoCharOperators(t *testing.T) {
	toks, err := Lex("== != <= >= && ||")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Eq, Ne, Le, Ge, AndAnd, OrOr, EOF}, kinds(t, toks))
}

func TestSingleCharOperatorsDoNotGreedilyConsume(t *testing.T) {
	toks, err := Lex("= ! < >")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Assign, Bang, Lt, Gt, EOF}, kinds(t, toks))
}

func TestStrayAmpersandIsALexError(t *testing.T) {
	_, err := Lex("&")
	require.Error(t, err)
}

func TestStrayPipeIsALexError(t *testing.T) {
	_, err := Lex("|")
	require.Error(t, err)
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	toks, err := Lex("x\ny")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Col)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 1, toks[1].Col)
}
