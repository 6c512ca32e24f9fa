package generator

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/haguru/shisui/internal/models"
)

// plainHasher records what it was asked to hash and returns a
// deterministic marker so record contents can be asserted exactly.
type plainHasher struct {
	calls []string
}

func (h *plainHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password")
	}
	h.calls = append(h.calls, password)
	return "hashed(" + password + ")", nil
}

func TestGenerator_Generate(t *testing.T) {
	type args struct {
		prefix   string
		domain   string
		count    int
		password string
	}
	tests := []struct {
		name          string
		allowUsername bool
		args          args
		wantUsernames []string
		wantErr       bool
	}{
		{
			name:          "single record with explicit password",
			allowUsername: false,
			args:          args{prefix: "imfake", domain: "test.edu", count: 1, password: "s3cret"},
			wantUsernames: []string{"imfake_01"},
		},
		{
			name:          "five records are zero padded to two digits",
			allowUsername: false,
			args:          args{prefix: "load", domain: "example.com", count: 5, password: "s3cret"},
			wantUsernames: []string{"load_01", "load_02", "load_03", "load_04", "load_05"},
		},
		{
			name:          "empty password falls back to username when allowed",
			allowUsername: true,
			args:          args{prefix: "imfake", domain: "test.edu", count: 2, password: ""},
			wantUsernames: []string{"imfake_01", "imfake_02"},
		},
		{
			name:          "empty password fails when username passwords are not allowed",
			allowUsername: false,
			args:          args{prefix: "imfake", domain: "test.edu", count: 2, password: ""},
			wantErr:       true,
		},
		{
			name:          "zero count fails",
			allowUsername: false,
			args:          args{prefix: "imfake", domain: "test.edu", count: 0, password: "s3cret"},
			wantErr:       true,
		},
		{
			name:          "empty prefix fails",
			allowUsername: false,
			args:          args{prefix: "", domain: "test.edu", count: 1, password: "s3cret"},
			wantErr:       true,
		},
		{
			name:          "empty domain fails",
			allowUsername: false,
			args:          args{prefix: "imfake", domain: "", count: 1, password: "s3cret"},
			wantErr:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&plainHasher{}, tt.allowUsername)
			got, err := g.Generate(tt.args.prefix, tt.args.domain, tt.args.count, tt.args.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("Generate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.wantUsernames) {
				t.Fatalf("Generate() produced %d records, want %d", len(got), len(tt.wantUsernames))
			}
			for i, username := range tt.wantUsernames {
				if got[i].Username != username {
					t.Errorf("record %d username = %q, want %q", i, got[i].Username, username)
				}
				wantEmail := username + "@" + tt.args.domain
				if got[i].Email != wantEmail {
					t.Errorf("record %d email = %q, want %q", i, got[i].Email, wantEmail)
				}
				if !got[i].EmailVerified {
					t.Errorf("record %d email_verified = false, want true", i)
				}
				if got[i].PasswordHash == "" || got[i].PasswordHash == tt.args.password {
					t.Errorf("record %d password_hash = %q, plaintext must never be stored", i, got[i].PasswordHash)
				}
			}
		})
	}
}

func TestGenerator_Generate_UsernamePasswordFallback(t *testing.T) {
	h := &plainHasher{}
	g := NewGenerator(h, true)

	if _, err := g.Generate("imfake", "test.edu", 3, ""); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{"imfake_01", "imfake_02", "imfake_03"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("hashed passwords = %v, want usernames %v", h.calls, want)
	}
}

func TestGenerator_Generate_WidePadding(t *testing.T) {
	g := NewGenerator(&plainHasher{}, false)

	got, err := g.Generate("bulk", "example.com", 150, "s3cret")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if got[0].Username != "bulk_001" {
		t.Errorf("first username = %q, want %q", got[0].Username, "bulk_001")
	}
	if got[149].Username != "bulk_150" {
		t.Errorf("last username = %q, want %q", got[149].Username, "bulk_150")
	}
}

func TestGenerator_GenerateOne(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    string
		wantErr bool
	}{
		{name: "index 7 pads to two digits", index: 7, want: "imfake_07"},
		{name: "index 42", index: 42, want: "imfake_42"},
		{name: "index 120 pads to three digits", index: 120, want: "imfake_120"},
		{name: "index 0 fails", index: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&plainHasher{}, false)
			got, err := g.GenerateOne("imfake", "test.edu", tt.index, "s3cret")
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateOne() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			want := models.NewUserRecord(tt.want, "test.edu", "hashed(s3cret)")
			if !reflect.DeepEqual(got, want) {
				t.Errorf("GenerateOne() = %v, want %v", got, want)
			}
		})
	}
}
