package engine

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/farthing/internal/store"
)

// SetParentPasscode hashes and stores the parent passcode.
func (e *Engine) SetParentPasscode(code string) error {
	if !validPasscode(code) {
		return ErrInvalidPasscode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ParentSettings.PasscodeHash = string(hash)
	e.save("", store.ColParentSettings, e.state.ParentSettings)
	return nil
}

// VerifyParentPasscode checks a passcode attempt. A household with no
// passcode configured accepts any well-formed attempt.
func (e *Engine) VerifyParentPasscode(code string) error {
	if !validPasscode(code) {
		return ErrInvalidPasscode
	}

	e.mu.Lock()
	hash := e.state.ParentSettings.PasscodeHash
	e.mu.Unlock()

	if hash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return ErrPasscodeMismatch
	}
	return nil
}

func validPasscode(code string) bool {
	if len(code) < 4 || len(code) > 8 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
