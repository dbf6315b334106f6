package interp

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinpie/ath/host/stdhost"
	"github.com/robinpie/ath/parser"
)

// runSource parses and runs src against a fresh interpreter backed by a
// stdhost.Host writing into a buffer, returning its captured output and the
// run's error. It
// fails the test if the run does not complete within a generous deadline,
// since a correct program always drains and exits.
func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	h := stdhost.New(&buf)
	in := New(h)

	done := make(chan error, 1)
	go func() { done <- in.Run(prog) }()

	select {
	case runErr := <-done:
		return buf.String(), runErr
	case <-time.After(2 * time.Second):
		t.Fatal("program did not terminate")
		return "", nil
	}
}

func TestGoldenHelloWorld(t *testing.T) {
	out, err := runSource(t, `import timer T(1ms); ~ATH(T) {} EXECUTE(UTTER("Hello, world!")); THIS.DIE();`)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", out)
}

func TestGoldenEntityOr(t *testing.T) {
	out, err := runSource(t, `import timer T1(10ms); import timer T2(1ms); ~ATH(T1 || T2) {} EXECUTE(UTTER("done"));`)
	require.NoError(t, err)
	assert.Equal(t, "done\n", out)
}

func TestGoldenErrorCatchInsideTimer(t *testing.T) {
	src := `import timer T(1ms);
~ATH(T) {} EXECUTE(
	ATTEMPT {
		BIRTH x WITH PARSE_INT("not a number");
	} SALVAGE err {
		UTTER("Error: " + err);
	}
);`
	out, err := runSource(t, src)
	require.NoError(t, err)
	assert.Contains(t, out, "Error: ")
}

func TestGoldenCountdown(t *testing.T) {
	src := `
RITE countdown(n) {
	SHOULD (n == 0) {
		UTTER("Liftoff!");
	} LEST {
		UTTER(STRING(n));
		import timer T(1ms);
		~ATH(T) {} EXECUTE(countdown(n - 1));
	}
}
countdown(5);
THIS.DIE();`
	out, err := runSource(t, src)
	require.NoError(t, err)
	assert.Equal(t, "5\n4\n3\n2\n1\nLiftoff!\n", out)
}

func TestGoldenFizzBuzz(t *testing.T) {
	src := `
RITE fizzbuzz(n, limit) {
	SHOULD (n > limit) {
		BEQUEATH;
	}
	SHOULD (n % 15 == 0) {
		UTTER("FizzBuzz");
	} LEST {
		SHOULD (n % 3 == 0) {
			UTTER("Fizz");
		} LEST {
			SHOULD (n % 5 == 0) {
				UTTER("Buzz");
			} LEST {
				UTTER(STRING(n));
			}
		}
	}
	import timer T(1ms);
	~ATH(T) {} EXECUTE(fizzbuzz(n + 1, limit));
}
fizzbuzz(1, 15);
THIS.DIE();`
	out, err := runSource(t, src)
	require.NoError(t, err)
	want := "1\n2\nFizz\n4\nBuzz\nFizz\n7\n8\nFizz\nBuzz\n11\nFizz\n13\n14\nFizzBuzz\n"
	assert.Equal(t, want, out)
}

func TestGoldenBifurcation(t *testing.T) {
	src := `
bifurcate THIS[LEFT, RIGHT];
~ATH(LEFT) {
	import timer T1(1ms);
	~ATH(T1) {} EXECUTE(UTTER("left"));
} EXECUTE(VOID);
~ATH(RIGHT) {
	import timer T2(1ms);
	~ATH(T2) {} EXECUTE(UTTER("right"));
} EXECUTE(VOID);
[LEFT, RIGHT].DIE();`
	out, err := runSource(t, src)
	require.NoError(t, err)
	assert.Contains(t, out, "left\n")
	assert.Contains(t, out, "right\n")
}

func TestTopLevelCondemnUncaughtFailsRun(t *testing.T) {
	_, err := runSource(t, `CONDEMN "boom";`)
	require.Error(t, err)
}

func TestTopLevelBequeathIsAConstraintError(t *testing.T) {
	_, err := runSource(t, `BEQUEATH 1;`)
	require.Error(t, err)
}
