package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/vault-guard/internal/adapter"
	"github.com/MKhiriev/vault-guard/internal/mock"
	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/internal/validators"
	"github.com/MKhiriev/vault-guard/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var keyEnter = tea.KeyMsg{Type: tea.KeyEnter}

type mocks struct {
	session *mock.MockClientSession
	auth    *mock.MockClientAuthService
	vault   *mock.MockClientVaultService
	reveal  *mock.MockClientRevealService
}

func newMocks(t *testing.T) (mocks, *service.ClientServices) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		session: mock.NewMockClientSession(ctrl),
		auth:    mock.NewMockClientAuthService(ctrl),
		vault:   mock.NewMockClientVaultService(ctrl),
		reveal:  mock.NewMockClientRevealService(ctrl),
	}
	return m, &service.ClientServices{
		Session:       m.session,
		AuthService:   m.auth,
		VaultService:  m.vault,
		RevealService: m.reveal,
	}
}

var testRecords = models.PasswordList{
	{ID: "rec1", AccountName: "Gmail", Username: "x@example.com"},
	{ID: "rec2", AccountName: "Bank", Username: "x"},
}

// loadedList returns a list page that already shows testRecords.
func loadedList(t *testing.T, m mocks, services *service.ClientServices) *ListModel {
	t.Helper()
	ctx := context.Background()
	list := NewListModel(ctx, services)

	m.vault.EXPECT().Records(ctx).Return(testRecords, nil)
	list.loading = true
	list.Update(list.cmdLoad()())
	require.False(t, list.loading)
	require.Len(t, list.items, 2)
	return list
}

// ── list ─────────────────────────────────────────────────────────────────────

func TestListModel_MasksSecrets(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)
	m.reveal.EXPECT().CurrentPlaintext(gomock.Any()).Return("", false).AnyTimes()

	view := list.View()
	assert.Contains(t, view, "Gmail")
	assert.Contains(t, view, "Bank")
	assert.Equal(t, 2, strings.Count(view, service.Mask))
}

func TestListModel_RevealShowsPlaintextWithCountdown(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	list.now = func() time.Time { return now }
	ctx := context.Background()

	_, cmd := list.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	assert.True(t, list.revealing["rec1"])

	// a second press while in flight does nothing
	_, again := list.Update(keyRunes("r"))
	assert.Nil(t, again)

	m.reveal.EXPECT().RevealNow(ctx, "rec1").Return("hunter2", nil)
	list.Update(cmd())
	assert.False(t, list.revealing["rec1"])

	m.reveal.EXPECT().CurrentPlaintext("rec1").Return("hunter2", true)
	m.reveal.EXPECT().ExpiresAt("rec1").Return(now.Add(15*time.Second), true)
	m.reveal.EXPECT().CurrentPlaintext("rec2").Return("", false)

	view := list.View()
	assert.Contains(t, view, "hunter2")
	assert.Contains(t, view, "15s")
}

func TestListModel_RevealAgainFetchesFresh(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)
	ctx := context.Background()

	gomock.InOrder(
		m.reveal.EXPECT().RevealNow(ctx, "rec1").Return("hunter2", nil),
		m.reveal.EXPECT().RevealNow(ctx, "rec1").Return("hunter3", nil),
	)

	_, cmd := list.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	list.Update(cmd())

	// pressing reveal on a visible secret fetches it again
	_, cmd = list.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	list.Update(cmd())
	assert.Empty(t, list.revealing)
}

func TestListModel_HideKey(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	m.reveal.EXPECT().Hide("rec1")

	_, cmd := list.Update(keyRunes("h"))
	assert.Nil(t, cmd)
}

func TestListModel_EmptyPlaintextIsMasked(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	m.reveal.EXPECT().CurrentPlaintext("rec1").Return("", true)
	m.reveal.EXPECT().CurrentPlaintext("rec2").Return("", false)

	view := list.View()
	assert.Equal(t, 2, strings.Count(view, service.Mask))
}

func TestListModel_RevealErrorShown(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	list.Update(revealDoneMsg{id: "rec1", err: adapter.NewStatusError(http.StatusNotFound, "Password not found")})
	assert.Equal(t, "Password not found", list.errMsg)
	assert.Contains(t, list.View(), "Password not found")

	// dismissed with enter
	list.Update(keyEnter)
	assert.Empty(t, list.errMsg)

	list.Update(revealDoneMsg{id: "rec1", err: service.ErrRevealCanceled})
	assert.Empty(t, list.errMsg)
}

func TestListModel_CopyOnlyWhileVisible(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	var copied []string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = append(copied, s); return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	m.reveal.EXPECT().CurrentPlaintext("rec1").Return("", false)
	list.Update(keyRunes("c"))
	assert.Empty(t, copied)
	assert.Equal(t, "Сначала покажите пароль", list.status)

	m.reveal.EXPECT().CurrentPlaintext("rec1").Return("hunter2", true)
	list.Update(keyRunes("c"))
	assert.Equal(t, []string{"hunter2"}, copied)
	assert.Equal(t, "Скопировано", list.status)
}

func TestListModel_CopyFailure(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { copyToClipboard = orig })

	m.reveal.EXPECT().CurrentPlaintext("rec1").Return("hunter2", true)
	list.Update(keyRunes("c"))
	assert.Contains(t, list.errMsg, "no clipboard")
}

func TestListModel_DeleteAsksForConfirmation(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)
	ctx := context.Background()

	list.Update(keyRunes("d"))
	require.True(t, list.confirming)
	assert.Contains(t, list.View(), `Удалить "Gmail"?`)

	// n cancels without a request
	list.Update(keyRunes("n"))
	assert.False(t, list.confirming)

	list.Update(keyRunes("d"))
	_, cmd := list.Update(keyRunes("y"))
	require.NotNil(t, cmd)

	m.vault.EXPECT().Remove(ctx, "rec1").Return(nil)
	msg := cmd()
	require.Equal(t, itemDeletedMsg{id: "rec1"}, msg)

	m.reveal.EXPECT().Hide("rec1")
	_, reload := list.Update(msg)
	assert.NotNil(t, reload)
	assert.True(t, list.loading)
	assert.Equal(t, "Запись удалена", list.status)
}

func TestListModel_DeleteNotFoundKeepsList(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	list.Update(itemDeletedMsg{id: "rec1", err: adapter.NewStatusError(http.StatusNotFound, "Password not found")})
	assert.Equal(t, "Password not found", list.errMsg)
	assert.Len(t, list.items, 2)
}

func TestListModel_Navigation(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	list.Update(keyRunes("j"))
	assert.Equal(t, 1, list.idx)
	list.Update(keyRunes("j"))
	assert.Equal(t, 1, list.idx)

	_, cmd := list.Update(keyRunes("e"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageEdit, Payload: editRecord{record: testRecords[1]}}, cmd())

	_, cmd = list.Update(keyRunes("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageAdd, Payload: openAdd{}}, cmd())

	list.Update(keyRunes("k"))
	assert.Equal(t, 0, list.idx)
}

func TestListModel_Logout(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	m.auth.EXPECT().Logout()
	list.Update(keyRunes("l"))
}

func TestListModel_RefreshIsAuthoritative(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)
	ctx := context.Background()

	list.Update(keyRunes("s"))
	require.True(t, list.loading)

	m.vault.EXPECT().List(ctx).Return(models.PasswordList{testRecords[1]}, nil)
	list.Update(list.cmdRefresh()())
	assert.Equal(t, models.PasswordList{testRecords[1]}, list.items)
	assert.Equal(t, 0, list.idx)
}

func TestListModel_StaleCacheReloads(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	_, cmd := list.Update(listChangedMsg{fresh: true})
	assert.Nil(t, cmd)

	m.session.EXPECT().IsAuthenticated().Return(true)
	_, cmd = list.Update(listChangedMsg{fresh: false})
	assert.NotNil(t, cmd)
	assert.True(t, list.loading)
}

func TestListModel_ResetAfterLogoutClearsItems(t *testing.T) {
	m, services := newMocks(t)
	list := loadedList(t, m, services)

	m.session.EXPECT().IsAuthenticated().Return(false)
	_, cmd := list.Update(listChangedMsg{fresh: false})
	assert.Nil(t, cmd)
	assert.Empty(t, list.items)
}

// ── forms ────────────────────────────────────────────────────────────────────

func TestLoginModel_ValidatesBeforeSubmitting(t *testing.T) {
	m, _ := newMocks(t)
	login := NewLoginModel(context.Background(), m.auth, validators.NewFormValidator())

	login.inputs[0].SetValue("not-an-email")
	login.inputs[1].SetValue("secret1")
	_, cmd := login.Update(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "Email must be a valid email address", login.errMsg)
	assert.False(t, login.submitting)
}

func TestLoginModel_Submits(t *testing.T) {
	m, _ := newMocks(t)
	ctx := context.Background()
	login := NewLoginModel(ctx, m.auth, validators.NewFormValidator())

	login.inputs[0].SetValue(" x@example.com ")
	login.inputs[1].SetValue("secret1")
	_, cmd := login.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, login.submitting)

	m.auth.EXPECT().Login(ctx, models.LoginRequest{Email: "x@example.com", Password: "secret1"}).
		Return(adapter.NewStatusError(http.StatusUnauthorized, "Invalid credentials"))
	login.Update(cmd())

	assert.False(t, login.submitting)
	assert.Equal(t, "Invalid credentials", login.errMsg)
}

func TestRegisterModel_SuccessOpensLoginWithNotice(t *testing.T) {
	m, _ := newMocks(t)
	ctx := context.Background()
	register := NewRegisterModel(ctx, m.auth, validators.NewFormValidator())

	register.inputs[0].SetValue("xx")
	register.inputs[1].SetValue("x@example.com")
	register.inputs[2].SetValue("secret1")
	register.inputs[3].SetValue("secret2")
	_, cmd := register.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, "Password confirmation does not match", register.errMsg)

	register.inputs[3].SetValue("secret1")
	_, cmd = register.Update(keyEnter)
	require.NotNil(t, cmd)

	m.auth.EXPECT().Register(ctx, models.RegisterRequest{Username: "xx", Email: "x@example.com", Password: "secret1"}).
		Return("User registered successfully", nil)
	_, nav := register.Update(cmd())
	require.NotNil(t, nav)
	assert.Equal(t, NavigateTo{
		Page:    pageLogin,
		Payload: RegisterSuccessNotice{Username: "xx", Message: "User registered successfully"},
	}, nav())
}

func TestPasswordForm_EditSendsPasswordOnlyWhenTyped(t *testing.T) {
	m, _ := newMocks(t)
	ctx := context.Background()
	edit := NewEditPasswordModel(ctx, m.vault, validators.NewFormValidator())
	rec := testRecords[0]

	edit.Update(editRecord{record: rec})
	assert.Equal(t, "Gmail", edit.inputs[0].Value())
	assert.Empty(t, edit.inputs[2].Value())

	// unchanged form goes back without a request
	_, cmd := edit.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageList, Payload: listNotice{text: "Изменений нет"}}, cmd())

	edit.Update(editRecord{record: rec})
	edit.inputs[1].SetValue("y")
	_, cmd = edit.Update(keyEnter)
	require.NotNil(t, cmd)

	username := "y"
	m.vault.EXPECT().Update(ctx, "rec1", models.PasswordUpdate{Username: &username}).
		Return(models.PasswordRecord{ID: "rec1", AccountName: "Gmail", Username: "y"}, nil)
	_, nav := edit.Update(cmd())
	require.NotNil(t, nav)
	assert.Equal(t, NavigateTo{Page: pageList, Payload: listNotice{text: "Запись обновлена"}}, nav())
}

func TestPasswordForm_AddValidationAndFailure(t *testing.T) {
	m, _ := newMocks(t)
	ctx := context.Background()
	add := NewAddPasswordModel(ctx, m.vault, validators.NewFormValidator())

	add.inputs[0].SetValue("Gmail")
	add.inputs[1].SetValue("x")
	add.inputs[2].SetValue("hunt")
	_, cmd := add.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, "Password must be at least 6 characters", add.errMsg)

	add.inputs[2].SetValue("hunter2")
	_, cmd = add.Update(keyEnter)
	require.NotNil(t, cmd)

	m.vault.EXPECT().Add(ctx, "Gmail", "x", "hunter2").
		Return(models.PasswordRecord{}, adapter.NewStatusError(http.StatusBadRequest, "accountName, username and password are required"))
	_, next := add.Update(cmd())
	assert.Nil(t, next)
	assert.Equal(t, "accountName, username and password are required", add.errMsg)
	assert.Equal(t, "hunter2", add.inputs[2].Value(), "form keeps its values after a failure")
}

// ── root ─────────────────────────────────────────────────────────────────────

// stubPage records the messages it receives.
type stubPage struct {
	name string
	msgs []tea.Msg
}

func (p *stubPage) Init() tea.Cmd { return nil }

func (p *stubPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.msgs = append(p.msgs, msg)
	return p, nil
}

func (p *stubPage) View() string { return p.name }

func newStubRoot(start string) (RootModel, map[string]*stubPage) {
	stubs := map[string]*stubPage{}
	pages := map[string]tea.Model{}
	for _, name := range []string{pageLogin, pageRegister, pageList, pageAdd, pageEdit} {
		stubs[name] = &stubPage{name: name}
		pages[name] = stubs[name]
	}
	pages[pageMenu] = NewMenuModel()
	return NewRootModel(pages, start, models.NewAppBuildInfo("1.0.0", "", "")), stubs
}

func TestRootModel_LoginSuccessOpensList(t *testing.T) {
	root, stubs := newStubRoot(pageLogin)

	next, _ := root.Update(LoginResult{Email: "x@example.com"})
	r := next.(RootModel)

	assert.Equal(t, pageList, r.currentName)
	assert.Len(t, stubs[pageLogin].msgs, 1, "login page sees its result")
}

func TestRootModel_LoginFailureStays(t *testing.T) {
	root, _ := newStubRoot(pageLogin)

	next, _ := root.Update(LoginResult{Err: errors.New("nope")})
	assert.Equal(t, pageLogin, next.(RootModel).currentName)
}

func TestRootModel_SessionEndRoutesToMenu(t *testing.T) {
	for _, page := range []string{pageList, pageAdd, pageEdit} {
		t.Run(page, func(t *testing.T) {
			root, _ := newStubRoot(page)

			next, cmd := root.Update(sessionChangedMsg{authenticated: false})
			r := next.(RootModel)
			assert.Equal(t, pageMenu, r.currentName)
			require.NotNil(t, cmd)

			r2, _ := r.Update(cmd())
			assert.Contains(t, r2.View(), "Сессия завершена")
		})
	}
}

func TestRootModel_SessionEndIgnoredOnAuthPages(t *testing.T) {
	root, _ := newStubRoot(pageRegister)

	next, _ := root.Update(sessionChangedMsg{authenticated: false})
	assert.Equal(t, pageRegister, next.(RootModel).currentName)
}

func TestRootModel_BackgroundMessagesReachList(t *testing.T) {
	root, stubs := newStubRoot(pageAdd)

	root.Update(revealChangedMsg{id: "rec1", visible: false})
	root.Update(listChangedMsg{fresh: false})

	assert.Len(t, stubs[pageList].msgs, 2)
	assert.Empty(t, stubs[pageAdd].msgs)
}

func TestRootModel_NavigateWithPayload(t *testing.T) {
	root, stubs := newStubRoot(pageList)

	next, cmd := root.Update(NavigateTo{Page: pageEdit, Payload: editRecord{record: testRecords[0]}})
	r := next.(RootModel)
	assert.Equal(t, pageEdit, r.currentName)
	require.NotNil(t, cmd)

	r.Update(cmd())
	require.Len(t, stubs[pageEdit].msgs, 1)
	assert.Equal(t, editRecord{record: testRecords[0]}, stubs[pageEdit].msgs[0])

	// unknown pages are ignored
	next, _ = r.Update(NavigateTo{Page: "nope"})
	assert.Equal(t, pageEdit, next.(RootModel).currentName)
}

func TestRootModel_BuildInfoOnMenuOnly(t *testing.T) {
	root, _ := newStubRoot(pageMenu)

	next, _ := root.Update(keyRunes("v"))
	assert.Contains(t, next.View(), "1.0.0")

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, next.View(), "1.0.0")

	list, stubs := newStubRoot(pageList)
	list.Update(keyRunes("v"))
	assert.Len(t, stubs[pageList].msgs, 1)
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	root, _ := newStubRoot(pageMenu)

	next, cmd := root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(RootModel).quitByUser)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// ── errors ───────────────────────────────────────────────────────────────────

func TestHumanizeError(t *testing.T) {
	assert.Empty(t, humanizeError(nil))
	assert.Equal(t, "Сессия завершена, войдите снова", humanizeError(service.ErrNotAuthenticated))
	assert.Equal(t, "User already exists", humanizeError(adapter.NewStatusError(http.StatusConflict, "User already exists")))
	assert.Equal(t, "Отсутствует сеть или Сервер недоступен", humanizeError(errors.New("dial tcp: connection refused")))
}
