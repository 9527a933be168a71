package model

// ParentSettings is the singleton household-level configuration.
type ParentSettings struct {
	PasscodeHash string `json:"passcode_hash,omitempty"`
}
