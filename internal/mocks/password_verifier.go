package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether comparisons succeed by default
	ShouldSucceed bool

	// CompareFn allows custom comparison logic
	CompareFn func(hashedPassword, password string) error

	// Call tracking for verification
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}
	CompareCallCount int
}

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
