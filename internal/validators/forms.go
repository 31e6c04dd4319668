package validators

import (
	"strings"

	"github.com/MKhiriev/vault-guard/models"
)

// RegisterForm holds the fields of the registration screen.
type RegisterForm struct {
	Username        string `validate:"required,min=2"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// Request converts the form into the register request body.
func (f RegisterForm) Request() models.RegisterRequest {
	return models.RegisterRequest{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

// LoginForm holds the fields of the login screen.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Request converts the form into the login request body.
func (f LoginForm) Request() models.LoginRequest {
	return models.LoginRequest{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

// AddForm holds the fields of the add-password screen.
type AddForm struct {
	AccountName string `validate:"required,min=2"`
	Username    string `validate:"required"`
	Password    string `validate:"required,min=6"`
}

// EditForm holds the fields of the edit screen. Password is optional: an
// empty value keeps the stored secret.
type EditForm struct {
	AccountName string `validate:"required"`
	Username    string `validate:"required"`
	Password    string `validate:"omitempty,min=6"`
}

// Update builds a partial update against the current record. Only fields
// that differ from current are set; Password is set only when typed.
func (f EditForm) Update(current models.PasswordRecord) models.PasswordUpdate {
	var upd models.PasswordUpdate
	if name := strings.TrimSpace(f.AccountName); name != current.AccountName {
		upd.AccountName = &name
	}
	if username := strings.TrimSpace(f.Username); username != current.Username {
		upd.Username = &username
	}
	if f.Password != "" {
		password := f.Password
		upd.Password = &password
	}
	return upd
}
