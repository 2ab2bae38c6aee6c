package hashing

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcrypt_CostBounds(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, bcrypt.DefaultCost},
		{-3, bcrypt.DefaultCost},
		{bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{bcrypt.MinCost, bcrypt.MinCost},
		{bcrypt.DefaultCost + 1, bcrypt.DefaultCost + 1},
	}
	for _, c := range cases {
		if got := NewBcrypt(c.in).Cost(); got != c.want {
			t.Fatalf("NewBcrypt(%d).Cost() = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestHashCompare(t *testing.T) {
	p := NewBcrypt(bcrypt.MinCost)
	h, err := p.Hash("parrilla123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !p.Compare(h, "parrilla123") {
		t.Fatalf("valid password rejected")
	}
	if p.Compare(h, "parrilla124") {
		t.Fatalf("wrong password accepted")
	}
	if p.Compare("not-a-bcrypt-hash", "parrilla123") {
		t.Fatalf("broken hash must not match")
	}
}

func TestHash_TooLong(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := NewBcrypt(bcrypt.MinCost).Hash(string(long)); err == nil {
		t.Fatalf("password over 72 bytes must be rejected")
	}
}

func TestNeedsRehash(t *testing.T) {
	low := NewBcrypt(bcrypt.MinCost)
	h, err := low.Hash("secreta")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if low.NeedsRehash(h) {
		t.Fatalf("same cost must not need rehash")
	}
	if !NewBcrypt(bcrypt.MinCost + 1).NeedsRehash(h) {
		t.Fatalf("different cost must need rehash")
	}
	if !low.NeedsRehash("garbage") {
		t.Fatalf("unparseable hash must need rehash")
	}
}
