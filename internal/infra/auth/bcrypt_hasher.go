// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"shelflife/config"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/service"
)

// Default password policy, applied when no configuration overrides it.
const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 0 // 0 means unlimited
)

// defaultForbiddenWords are substrings a password may never contain,
// case-insensitively.
var defaultForbiddenWords = []string{"password", "admin"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost             int
	minLength        int
	maxLength        int
	requireUppercase bool
	requireLowercase bool
	requireNumbers   bool
	requireSpecial   bool
	forbiddenWords   []string
}

// NewBcryptHasher is the constructor for bcryptHasher with the default cost
// and password policy.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher() service.PasswordHasher {
	return NewBcryptHasherWithCost(bcrypt.DefaultCost)
}

// NewBcryptHasherWithCost creates a hasher with a specific bcrypt cost factor.
// Useful for tests where the default cost is too slow.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{
		cost:             cost,
		minLength:        defaultMinPasswordLength,
		maxLength:        defaultMaxPasswordLength,
		requireUppercase: true,
		requireLowercase: true,
		requireNumbers:   true,
		requireSpecial:   true,
		forbiddenWords:   defaultForbiddenWords,
	}
}

// NewBcryptHasherFromConfig builds a hasher from the application
// configuration, falling back to the defaults for any missing section.
func NewBcryptHasherFromConfig(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{
		cost:             bcrypt.DefaultCost,
		minLength:        defaultMinPasswordLength,
		maxLength:        defaultMaxPasswordLength,
		requireUppercase: true,
		requireLowercase: true,
		requireNumbers:   true,
		requireSpecial:   true,
		forbiddenWords:   defaultForbiddenWords,
	}

	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		hasher.cost = cfg.Auth.BcryptCost
	}
	if strength := cfg.PasswordStrength; strength != nil {
		if strength.MinLength > 0 {
			hasher.minLength = strength.MinLength
		}
		if strength.MaxLength > 0 {
			hasher.maxLength = strength.MaxLength
		}
		hasher.requireUppercase = strength.RequireUppercase
		hasher.requireLowercase = strength.RequireLowercase
		hasher.requireNumbers = strength.RequireNumbers
		hasher.requireSpecial = strength.RequireSpecial
	}

	return hasher
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// The password must pass the strength policy first; bcrypt handles salt
// generation automatically.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks a plaintext password against the policy
// without hashing it.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return domainerrors.ErrPasswordTooShort.WrapMessage("must be at least 8 characters long")
	}
	if h.maxLength > 0 && len(password) > h.maxLength {
		return domainerrors.ErrPasswordTooLong.WrapMessage("exceeds the maximum allowed length")
	}
	if h.requireUppercase && !h.hasUppercase(password) {
		return domainerrors.ErrPasswordMissingUppercase.WrapMessage("must contain at least one uppercase letter")
	}
	if h.requireLowercase && !h.hasLowercase(password) {
		return domainerrors.ErrPasswordMissingLowercase.WrapMessage("must contain at least one lowercase letter")
	}
	if h.requireNumbers && !h.hasNumbers(password) {
		return domainerrors.ErrPasswordMissingNumbers.WrapMessage("must contain at least one number")
	}
	if h.requireSpecial && !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordMissingSpecial.WrapMessage("must contain at least one special character")
	}
	if h.containsForbiddenWords(password, h.forbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}

	return false
}

func (h *bcryptHasher) containsForbiddenWords(password string, forbidden []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range forbidden {
		if strings.Contains(lowered, strings.ToLower(word)) {
			return true
		}
	}

	return false
}
