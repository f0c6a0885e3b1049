package utils // utils provides helper functions shared across handlers

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Field constraints applied at registration and by the admin user
// creation endpoint. Lengths are counted in runes so multi-byte
// names are not rejected early.
const (
	NameMinLen    = 20
	NameMaxLen    = 60
	AddressMaxLen = 400
	PasswordMin   = 8
	PasswordMax   = 16
)

// passwordSymbols is the punctuation set of which at least one
// character must appear in every password.
const passwordSymbols = "!@#$%^&*"

var (
	ErrNameLength    = errors.New("name must be between 20 and 60 characters")
	ErrAddressLength = errors.New("address cannot exceed 400 characters")
	ErrPasswordRule  = errors.New("password must be 8-16 characters with 1 uppercase and 1 special character")
)

// ValidateName checks the registration name length bounds.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < NameMinLen || n > NameMaxLen {
		return ErrNameLength
	}
	return nil
}

// ValidateAddress checks the address upper bound. Empty addresses are
// accepted; only the maximum is enforced.
func ValidateAddress(address string) error {
	if utf8.RuneCountInString(address) > AddressMaxLen {
		return ErrAddressLength
	}
	return nil
}

// ValidatePassword enforces the password policy: 8 to 16 characters,
// at least one ASCII uppercase letter and at least one symbol from
// the !@#$%^&* set.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < PasswordMin || n > PasswordMax {
		return ErrPasswordRule
	}
	var upper, symbol bool
	for _, r := range password {
		if r >= 'A' && r <= 'Z' {
			upper = true
		}
		if strings.ContainsRune(passwordSymbols, r) {
			symbol = true
		}
	}
	if !upper || !symbol {
		return ErrPasswordRule
	}
	return nil
}
