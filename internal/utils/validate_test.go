package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"too short by one", strings.Repeat("a", 19), false},
		{"minimum length", strings.Repeat("a", 20), true},
		{"maximum length", strings.Repeat("a", 60), true},
		{"too long by one", strings.Repeat("a", 61), false},
		{"empty", "", false},
		{"multibyte runes counted once", strings.Repeat("å", 20), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.input)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrNameLength)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	require.NoError(t, ValidateAddress(""))
	require.NoError(t, ValidateAddress(strings.Repeat("x", 400)))
	require.ErrorIs(t, ValidateAddress(strings.Repeat("x", 401)), ErrAddressLength)
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid", "Passw0rd!", true},
		{"valid at min length", "Abcdef1!", true},
		{"valid at max length", "Abcdefghijklmn1!", true},
		{"too short", "Abc!def", false},
		{"too long", "Abcdefghijklmno1!", false},
		{"no uppercase", "passw0rd!", false},
		{"no symbol", "Passw0rd1", false},
		{"symbol outside set", "Passw0rd?", false},
		{"every symbol in set", "A!@#$%^&*ok", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.input)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrPasswordRule)
			}
		})
	}
}
