package tui

import (
	"github.com/MKhiriev/vault-guard/models"
)

// Page names registered in [RootModel].
const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageList     = "list"
	pageAdd      = "add"
	pageEdit     = "edit"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to the
// new page as a message instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload any
}

// RegisterSuccessNotice is delivered to the login page after registration.
type RegisterSuccessNotice struct {
	Username string
	Message  string
}

// LoginResult is produced by the login page's command.
type LoginResult struct {
	Err   error
	Email string
}

// RegisterResult is produced by the register page's command.
type RegisterResult struct {
	Err      error
	Username string
	Message  string
}

// sessionChangedMsg mirrors a session transition into the program.
type sessionChangedMsg struct {
	authenticated bool
}

// revealChangedMsg mirrors a reveal or retraction into the program.
type revealChangedMsg struct {
	id      string
	visible bool
}

// listChangedMsg mirrors a list cache update into the program.
type listChangedMsg struct {
	fresh bool
}

// editRecord opens the edit page for a record.
type editRecord struct {
	record models.PasswordRecord
}

// openAdd opens an empty add page.
type openAdd struct{}

// listNotice is shown on the list page after a form closes.
type listNotice struct {
	text string
}

type listLoadedMsg struct {
	items models.PasswordList
	err   error
}

type revealDoneMsg struct {
	id  string
	err error
}

type itemSavedMsg struct {
	err error
}

type itemDeletedMsg struct {
	id  string
	err error
}

type revealTickMsg struct{}

type clearStatusMsg struct{}
