package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evergreenwebsolutions/onboarding/internal/auth"
	"github.com/evergreenwebsolutions/onboarding/internal/handler"
	"github.com/evergreenwebsolutions/onboarding/internal/middleware"
	"github.com/evergreenwebsolutions/onboarding/internal/models"
	"github.com/evergreenwebsolutions/onboarding/internal/router"
	"github.com/evergreenwebsolutions/onboarding/internal/service"
	"github.com/evergreenwebsolutions/onboarding/internal/storage"
)

const testSecret = "test-secret"

var testOrigins = middleware.Origins{"http://localhost:3000", "https://evergreenwebsolutions.ca"}

type fakeSubmissionStore struct {
	mu          sync.Mutex
	subs        []models.Submission
	createErr   error
	listErr     error
	createCalls int
	listCalls   int
}

func (f *fakeSubmissionStore) Create(ctx context.Context, sub *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	sub.ID = uint(len(f.subs) + 1)
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubmissionStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Submission, len(f.subs))
	copy(out, f.subs)
	return out, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	count int
	last  *models.Submission
}

func (f *fakeNotifier) Enqueue(ctx context.Context, sub *models.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	f.last = sub
}

func (f *fakeNotifier) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[string]models.User
	nextID uint
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users == nil {
		f.users = map[string]models.User{}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

type testServer struct {
	router   *chi.Mux
	store    *fakeSubmissionStore
	notifier *fakeNotifier
	filesDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := zap.NewNop()
	store := &fakeSubmissionStore{}
	notifier := &fakeNotifier{}

	fsStore, err := storage.NewFilesystem(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	authSvc := service.NewAuthService(&fakeUserStore{}, testSecret)
	subSvc := service.NewSubmissionService(store, notifier, log)
	upSvc := service.NewUploadService(fsStore)

	r := router.New(testSecret, testOrigins, log,
		handler.NewAuthHandler(authSvc),
		handler.NewFormHandler(subSvc, log),
		handler.NewSubmissionHandler(subSvc, testOrigins, log),
		handler.NewUploadHandler(upSvc, log),
		handler.NewPageHandler(),
		fsStore.Dir(),
	)

	return &testServer{router: r, store: store, notifier: notifier, filesDir: fsStore.Dir()}
}

func decodeBody(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func testToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, 1, "admin@onboarding.local", "admin")
	require.NoError(t, err)
	return token
}
