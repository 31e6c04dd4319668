package models

// PasswordCreate is the body of POST /password. The secret travels to the
// backend exactly once and is not retained by the client.
type PasswordCreate struct {
	AccountName string `json:"accountName" validate:"required,min=2"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
}

// PasswordUpdate is the body of PUT /password/:id.
// Only non-nil fields are sent (partial update support); omitted fields are
// left untouched by the backend.
type PasswordUpdate struct {
	// AccountName is the new account name. If nil, the field is not sent.
	AccountName *string `json:"accountName,omitempty" validate:"omitempty,min=1"`

	// Username is the new username. If nil, the field is not sent.
	Username *string `json:"username,omitempty" validate:"omitempty,min=1"`

	// Password is the new secret. If nil, the stored secret is kept.
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u PasswordUpdate) IsEmpty() bool {
	return u.AccountName == nil && u.Username == nil && u.Password == nil
}
