package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/XXS1337/rentease/internal/client/api"
	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/client/session"
	"github.com/XXS1337/rentease/internal/logging"
	"github.com/XXS1337/rentease/internal/validate"
)

var errNotStubbed = errors.New("not stubbed")

// fakeClient is a scriptable api.Client: only the function fields a test sets
// are callable, everything else fails loudly.
type fakeClient struct {
	loginFn         func(ctx context.Context, email, password string) (*models.User, string, error)
	registerFn      func(ctx context.Context, req api.RegisterRequest) error
	checkEmailFn    func(ctx context.Context, email string) (bool, error)
	forgotFn        func(ctx context.Context, email string) error
	resetFn         func(ctx context.Context, token, password string) error
	meFn            func(ctx context.Context) (*models.User, error)
	updateMeFn      func(ctx context.Context, upd api.ProfileUpdate) (*models.User, error)
	deleteProfileFn func(ctx context.Context, userID string) error
	allUsersFn      func(ctx context.Context) ([]models.User, error)
	userByIDFn      func(ctx context.Context, id string) (*models.User, error)
	editProfileFn   func(ctx context.Context, id string, upd api.ProfileUpdate) (*models.User, error)
	updateRoleFn    func(ctx context.Context, id string, role models.Role) error
	flatsFn         func(ctx context.Context, filter models.FlatFilter) ([]models.Flat, error)
	myFlatsFn       func(ctx context.Context) ([]models.Flat, error)
	flatFn          func(ctx context.Context, id string) (*models.Flat, error)
	createFlatFn    func(ctx context.Context, p api.FlatPayload) (*models.Flat, error)
	updateFlatFn    func(ctx context.Context, id string, p api.FlatPayload) (*models.Flat, error)
	deleteFlatFn    func(ctx context.Context, id string) error
	addFavFn        func(ctx context.Context, flatID string) error
	removeFavFn     func(ctx context.Context, flatID string) error
	messagesFn      func(ctx context.Context, flatID string) ([]models.Message, error)
	sendMessageFn   func(ctx context.Context, flatID, content string) (*models.Message, error)
	chatFn          func(ctx context.Context, turns []models.ChatTurn) (string, error)
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if f.loginFn == nil {
		return nil, "", errNotStubbed
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeClient) Register(ctx context.Context, req api.RegisterRequest) error {
	if f.registerFn == nil {
		return errNotStubbed
	}
	return f.registerFn(ctx, req)
}

func (f *fakeClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	if f.checkEmailFn == nil {
		return false, nil
	}
	return f.checkEmailFn(ctx, email)
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) error {
	if f.forgotFn == nil {
		return errNotStubbed
	}
	return f.forgotFn(ctx, email)
}

func (f *fakeClient) ResetPassword(ctx context.Context, token, password string) error {
	if f.resetFn == nil {
		return errNotStubbed
	}
	return f.resetFn(ctx, token, password)
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	if f.meFn == nil {
		return nil, errNotStubbed
	}
	return f.meFn(ctx)
}

func (f *fakeClient) UpdateMyProfile(ctx context.Context, upd api.ProfileUpdate) (*models.User, error) {
	if f.updateMeFn == nil {
		return nil, errNotStubbed
	}
	return f.updateMeFn(ctx, upd)
}

func (f *fakeClient) DeleteProfile(ctx context.Context, userID string) error {
	if f.deleteProfileFn == nil {
		return errNotStubbed
	}
	return f.deleteProfileFn(ctx, userID)
}

func (f *fakeClient) AllUsers(ctx context.Context) ([]models.User, error) {
	if f.allUsersFn == nil {
		return nil, errNotStubbed
	}
	return f.allUsersFn(ctx)
}

func (f *fakeClient) UserByID(ctx context.Context, id string) (*models.User, error) {
	if f.userByIDFn == nil {
		return nil, errNotStubbed
	}
	return f.userByIDFn(ctx, id)
}

func (f *fakeClient) EditProfile(ctx context.Context, id string, upd api.ProfileUpdate) (*models.User, error) {
	if f.editProfileFn == nil {
		return nil, errNotStubbed
	}
	return f.editProfileFn(ctx, id, upd)
}

func (f *fakeClient) UpdateRole(ctx context.Context, id string, role models.Role) error {
	if f.updateRoleFn == nil {
		return errNotStubbed
	}
	return f.updateRoleFn(ctx, id, role)
}

func (f *fakeClient) Flats(ctx context.Context, filter models.FlatFilter) ([]models.Flat, error) {
	if f.flatsFn == nil {
		return nil, errNotStubbed
	}
	return f.flatsFn(ctx, filter)
}

func (f *fakeClient) MyFlats(ctx context.Context) ([]models.Flat, error) {
	if f.myFlatsFn == nil {
		return nil, errNotStubbed
	}
	return f.myFlatsFn(ctx)
}

func (f *fakeClient) Flat(ctx context.Context, id string) (*models.Flat, error) {
	if f.flatFn == nil {
		return nil, errNotStubbed
	}
	return f.flatFn(ctx, id)
}

func (f *fakeClient) CreateFlat(ctx context.Context, p api.FlatPayload) (*models.Flat, error) {
	if f.createFlatFn == nil {
		return nil, errNotStubbed
	}
	return f.createFlatFn(ctx, p)
}

func (f *fakeClient) UpdateFlat(ctx context.Context, id string, p api.FlatPayload) (*models.Flat, error) {
	if f.updateFlatFn == nil {
		return nil, errNotStubbed
	}
	return f.updateFlatFn(ctx, id, p)
}

func (f *fakeClient) DeleteFlat(ctx context.Context, id string) error {
	if f.deleteFlatFn == nil {
		return errNotStubbed
	}
	return f.deleteFlatFn(ctx, id)
}

func (f *fakeClient) AddToFavorites(ctx context.Context, flatID string) error {
	if f.addFavFn == nil {
		return errNotStubbed
	}
	return f.addFavFn(ctx, flatID)
}

func (f *fakeClient) RemoveFromFavorites(ctx context.Context, flatID string) error {
	if f.removeFavFn == nil {
		return errNotStubbed
	}
	return f.removeFavFn(ctx, flatID)
}

func (f *fakeClient) Messages(ctx context.Context, flatID string) ([]models.Message, error) {
	if f.messagesFn == nil {
		return nil, errNotStubbed
	}
	return f.messagesFn(ctx, flatID)
}

func (f *fakeClient) SendMessage(ctx context.Context, flatID, content string) (*models.Message, error) {
	if f.sendMessageFn == nil {
		return nil, errNotStubbed
	}
	return f.sendMessageFn(ctx, flatID, content)
}

func (f *fakeClient) Chat(ctx context.Context, turns []models.ChatTurn) (string, error) {
	if f.chatFn == nil {
		return "", errNotStubbed
	}
	return f.chatFn(ctx, turns)
}

// memSessionStore is an in-memory session.Store for service tests.
type memSessionStore struct {
	mu    sync.Mutex
	token string
	user  *models.User
}

func (m *memSessionStore) SaveSession(_ context.Context, token string, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = u.Clone()
	return nil
}

func (m *memSessionStore) LoadToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memSessionStore) SaveUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u.Clone()
	return nil
}

func (m *memSessionStore) LoadUser(context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user.Clone(), nil
}

func (m *memSessionStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

// testNow pins the clock to 2026-06-15 for deterministic date windows.
func testNow() time.Time {
	return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestValidator(client *fakeClient) *validate.Validator {
	v := validate.New(client)
	v.Now = testNow
	return v
}

func sessionWithStore(t *testing.T, store session.Store) *session.Manager {
	t.Helper()
	return session.NewManager(store, logging.NewNopLogger())
}

func loggedInSession(t *testing.T, u *models.User) *session.Manager {
	t.Helper()
	m := session.NewManager(&memSessionStore{}, logging.NewNopLogger())
	if u != nil {
		if err := m.Login(context.Background(), u, "test-token"); err != nil {
			t.Fatalf("login: %v", err)
		}
	}
	return m
}
