package models

import (
	"reflect"
	"testing"
)

func TestNewUserRecord(t *testing.T) {
	type args struct {
		username     string
		domain       string
		passwordHash string
	}
	tests := []struct {
		name string
		args args
		want UserRecord
	}{
		{
			name: "Create record with username, domain and hash",
			args: args{
				username:     "imfake_01",
				domain:       "test.edu",
				passwordHash: "$2a$10$abcdefghijklmnopqrstuv",
			},
			want: UserRecord{
				Email:         "imfake_01@test.edu",
				EmailVerified: true,
				PasswordHash:  "$2a$10$abcdefghijklmnopqrstuv",
				Name:          "imfake_01",
				Nickname:      "imfake_01",
				Username:      "imfake_01",
			},
		},
		{
			name: "Email verified is always true even with empty inputs",
			args: args{
				username:     "",
				domain:       "",
				passwordHash: "",
			},
			want: UserRecord{
				Email:         "@",
				EmailVerified: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewUserRecord(tt.args.username, tt.args.domain, tt.args.passwordHash); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewUserRecord() = %v, want %v", got, tt.want)
			}
		})
	}
}
