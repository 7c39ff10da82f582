package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/aquapure/backoffice/internal/client/api"
	"github.com/aquapure/backoffice/internal/client/credentials"
	"github.com/aquapure/backoffice/internal/client/session"
	"github.com/aquapure/backoffice/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient stubs the parts of api.Client these tests exercise. Calling an
// unstubbed method panics through the embedded nil interface.
type fakeClient struct {
	api.Client

	LoginRet *api.LoginResult
	LoginErr error

	ContactsRet []api.Contact
	ContactsErr error
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Profile(ctx context.Context) (*api.Admin, error) { return nil, nil }

func (f *fakeClient) Logout(ctx context.Context) error { return nil }

func (f *fakeClient) ListContacts(ctx context.Context, opts api.ListOptions) ([]api.Contact, error) {
	return f.ContactsRet, f.ContactsErr
}

func newTestApp(t *testing.T, fake *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer

	app := &App{
		logger:    logger,
		apiClient: fake,
		reader:    bufio.NewReader(strings.NewReader("")),
		out:       &out,
	}
	app.session = session.New(fake, credentials.NewMemoryStore(), logger, session.WithNotifier(app.printNotice))
	return app, &out
}

func stubInput(t *testing.T, text, password string) {
	t.Helper()
	oldText, oldPw := getSimpleText, getPassword
	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) { return text, nil }
	getPassword = func(w io.Writer) (string, error) { return password, nil }
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPw })
}

func TestLogin_Success(t *testing.T) {
	fake := &fakeClient{LoginRet: &api.LoginResult{
		Admin:       &api.Admin{ID: "1", Name: "Priya", Email: "priya@x.com", Role: "admin"},
		AccessToken: "T",
	}}
	app, out := newTestApp(t, fake)
	stubInput(t, "priya@x.com", "pw")

	require.NoError(t, app.Login(context.Background()))
	require.Contains(t, out.String(), "Signed in as Priya")
	require.Equal(t, session.StatusAuthenticated, app.session.State().Status)
}

func TestLogin_FailureShowsReasonAndClears(t *testing.T) {
	fake := &fakeClient{LoginErr: errors.New("invalid credentials")}
	app, out := newTestApp(t, fake)
	stubInput(t, "priya@x.com", "bad")

	require.NoError(t, app.Login(context.Background()))
	require.Contains(t, out.String(), "invalid credentials")
	require.Equal(t, session.StatusUnauthenticated, app.session.State().Status)
}

func TestLogout_PrintsNotice(t *testing.T) {
	app, out := newTestApp(t, &fakeClient{})

	require.NoError(t, app.Logout(context.Background()))
	require.Contains(t, out.String(), "Logged out.")
}

func TestDispatch_Contacts(t *testing.T) {
	fake := &fakeClient{ContactsRet: []api.Contact{{ID: "c1", Name: "Asha", Email: "asha@x.com", Status: "new"}}}
	app, out := newTestApp(t, fake)

	require.NoError(t, app.dispatch(context.Background(), []string{"contacts"}))
	require.Contains(t, out.String(), "Asha")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	app, _ := newTestApp(t, &fakeClient{})

	err := app.dispatch(context.Background(), []string{"frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}
