package lit

import "testing"

func TestNewAndAccessors(t *testing.T) {
	cases := []struct {
		v    Var
		sign bool
	}{
		{0, false},
		{0, true},
		{5, false},
		{5, true},
		{1000, true},
	}
	for _, c := range cases {
		l := New(c.v, c.sign)
		if got := l.Var(); got != c.v {
			t.Fatalf("New(%d,%v).Var() = %d, want %d", c.v, c.sign, got, c.v)
		}
		if got := l.Sign(); got != c.sign {
			t.Fatalf("New(%d,%v).Sign() = %v, want %v", c.v, c.sign, got, c.sign)
		}
	}
}

func TestNegIsInvolution(t *testing.T) {
	l := New(3, false)
	if l.Neg().Neg() != l {
		t.Fatalf("Neg(Neg(l)) != l")
	}
	if l.Neg() == l {
		t.Fatalf("Neg(l) == l")
	}
	if l.Neg().Var() != l.Var() {
		t.Fatalf("Neg must preserve the variable")
	}
}

func TestAdjacentPolarities(t *testing.T) {
	pos := New(7, false)
	neg := New(7, true)
	if neg.Index() != pos.Index()+1 {
		t.Fatalf("polarities of the same variable must be adjacent indices")
	}
}

func TestXor(t *testing.T) {
	if Xor(false) != True {
		t.Fatalf("Xor(false) must be True")
	}
	if Xor(true) != False {
		t.Fatalf("Xor(true) must be False")
	}
}
