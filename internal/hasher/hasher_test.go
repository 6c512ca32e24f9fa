package hasher

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	h := NewBcryptHasher()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Hash a normal password",
			password: "correct horse battery staple",
			wantErr:  false,
		},
		{
			name:     "Hash a short password",
			password: "x",
			wantErr:  false,
		},
		{
			name:     "Empty password is rejected",
			password: "",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Hash(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("Hash() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(got), []byte(tt.password)); err != nil {
				t.Errorf("Hash() produced a hash that does not verify: %v", err)
			}
		})
	}
}

func TestBcryptHasher_Hash_FreshSaltPerCall(t *testing.T) {
	h := NewBcryptHasher()

	first, err := h.Hash("testpass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := h.Hash("testpass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Errorf("Hash() returned identical hashes for two calls, expected distinct salts")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(first), []byte("testpass")); err != nil {
		t.Errorf("first hash does not verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(second), []byte("testpass")); err != nil {
		t.Errorf("second hash does not verify: %v", err)
	}
}

func TestBcryptHasher_Hash_Cost(t *testing.T) {
	h := NewBcryptHasher()

	hashed, err := h.Hash("testpass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		t.Fatalf("bcrypt.Cost() error = %v", err)
	}
	if cost != Cost {
		t.Errorf("bcrypt cost = %d, want %d", cost, Cost)
	}
}
