package number

import (
	"math"
	"testing"
)

func TestRationalRoundTrip(t *testing.T) {
	tests := []string{"1/3", "22/7", "5", "-4/9"}
	for _, s := range tests {
		n, err := FromString(Rational, s)
		if err != nil {
			t.Fatalf("FromString(%q): %v", s, err)
		}
		q, err := n.ToRational()
		if err != nil {
			t.Fatalf("ToRational: %v", err)
		}
		want, err := FromString(Rational, s)
		if err != nil {
			t.Fatalf("re-parse: %v", err)
		}
		wantQ, _ := want.ToRational()
		if q.Cmp(wantQ) != 0 {
			t.Errorf("round trip %q: got %s want %s", s, q.RatString(), wantQ.RatString())
		}
	}
}

func TestRationalAssociativity(t *testing.T) {
	a, _ := FromString(Rational, "1/2")
	b, _ := FromString(Rational, "1/3")
	c, _ := FromString(Rational, "1/7")

	ab, _ := a.Add(b)
	abc1, _ := ab.Add(c)

	bc, _ := b.Add(c)
	abc2, _ := a.Add(bc)

	eq, err := abc1.Equal(abc2)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Errorf("(a+b)+c != a+(b+c): %s vs %s", abc1, abc2)
	}
}

func TestRationalDistributivity(t *testing.T) {
	a, _ := FromString(Rational, "2/3")
	b, _ := FromString(Rational, "1/5")
	c, _ := FromString(Rational, "3/7")

	bc, _ := b.Add(c)
	left, _ := a.Mul(bc)

	ab, _ := a.Mul(b)
	ac, _ := a.Mul(c)
	right, _ := ab.Add(ac)

	eq, _ := left.Equal(right)
	if !eq {
		t.Errorf("a*(b+c) != a*b+a*c: %s vs %s", left, right)
	}
}

func TestIdentities(t *testing.T) {
	a, _ := FromString(Float, "3.25")
	zero := Zero(Float)
	one := One(Float)

	sum, _ := a.Add(zero)
	if eq, _ := sum.Equal(a); !eq {
		t.Errorf("a+zero != a")
	}

	prod, _ := a.Mul(one)
	if eq, _ := prod.Equal(a); !eq {
		t.Errorf("a*one != a")
	}
}

func TestMixedModeIsError(t *testing.T) {
	a := One(Float)
	b := One(Rational)
	if _, err := a.Add(b); err == nil {
		t.Errorf("expected error mixing modes")
	}
}

func TestLogSumExpAbsorption(t *testing.T) {
	a := Number{mode: LogFloat, fraction: 1.5}
	negInf := Zero(LogFloat)

	r1, err := a.LogSumExp(negInf)
	if err != nil {
		t.Fatal(err)
	}
	if eq, _ := r1.Equal(a); !eq {
		t.Errorf("a.logSumExp(-inf) != a: got %v", r1.fraction)
	}

	r2, err := negInf.LogSumExp(a)
	if err != nil {
		t.Fatal(err)
	}
	if eq, _ := r2.Equal(a); !eq {
		t.Errorf("(-inf).logSumExp(a) != a: got %v", r2.fraction)
	}
}

func TestLogSumExpMatchesLog10OfSum(t *testing.T) {
	a := Number{mode: LogFloat, fraction: math.Log10(3)}
	b := Number{mode: LogFloat, fraction: math.Log10(4)}
	got, err := a.LogSumExp(b)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Log10(7)
	if math.Abs(got.fraction-want) > 1e-9 {
		t.Errorf("logSumExp(log3, log4) = %v, want log10(7) = %v", got.fraction, want)
	}
}
