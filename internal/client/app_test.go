package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/vault-guard/internal/config"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/mock"
	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/internal/store"
	"github.com/MKhiriev/vault-guard/internal/tui"
	"github.com/MKhiriev/vault-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeUI struct {
	err   error
	calls int
	run   func(ctx context.Context)
}

func (f *fakeUI) Run(ctx context.Context) error {
	f.calls++
	if f.run != nil {
		f.run(ctx)
	}
	return f.err
}

func newServices(t *testing.T, repo store.SessionRepository) *service.ClientServices {
	t.Helper()
	api := mock.NewMockVaultAPI(gomock.NewController(t))
	return service.NewClientServices(api, repo, service.NewRealClock(), time.Second, logger.Nop())
}

func TestNewApp_RequiresServicesAndUI(t *testing.T) {
	_, err := NewApp(nil, &fakeUI{}, config.ClientWorkers{}, nil, logger.Nop())
	assert.Error(t, err)

	_, err = NewApp(newServices(t, nil), nil, config.ClientWorkers{}, nil, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunRestoresSessionAndCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	services := newServices(t, repo)

	repo.EXPECT().Load(gomock.Any()).Return(models.SessionToken{Token: "abc"}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	closed := 0
	ui := &fakeUI{run: func(context.Context) {
		assert.True(t, services.Session.IsAuthenticated(), "session restored before the ui starts")
	}}

	app, err := NewApp(services, ui, config.ClientWorkers{ExpiryCheckInterval: time.Hour}, func() error { closed++; return nil }, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.run(context.Background()))
	assert.Equal(t, 1, ui.calls)
	assert.Equal(t, 1, closed)
}

func TestApp_RunErrors(t *testing.T) {
	tests := []struct {
		name    string
		uiErr   error
		wantErr bool
	}{
		{name: "clean exit", uiErr: nil},
		{name: "user quit", uiErr: tui.ErrUserQuit},
		{name: "signal", uiErr: context.Canceled},
		{name: "program failure", uiErr: errors.New("no tty"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(newServices(t, nil), &fakeUI{err: tt.uiErr}, config.ClientWorkers{}, nil, logger.Nop())
			require.NoError(t, err)

			err = app.run(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.uiErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApp_ClosesOnUIFailure(t *testing.T) {
	closed := 0
	app, err := NewApp(newServices(t, nil), &fakeUI{err: errors.New("boom")}, config.ClientWorkers{}, func() error {
		closed++
		return errors.New("close failed")
	}, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, app.run(context.Background()))
	assert.Equal(t, 1, closed)
}
