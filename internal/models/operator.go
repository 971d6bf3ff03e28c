package models

// Operator is the account that manages presets on a preset server.
// There is a single operator per deployment, configured by email and a
// bcrypt password hash.
type Operator struct {
	// Email identifies the operator and is the token subject.
	Email string

	// PasswordHash is the bcrypt hash of the operator password.
	PasswordHash string
}
