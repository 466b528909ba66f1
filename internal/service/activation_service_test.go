package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/activation"
	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// fakeUserRepo keeps accounts in memory, keyed like the real repository.
type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return r.GetByEmail(ctx, identifier)
}

func (r *fakeUserRepo) GetByMatricule(_ context.Context, matricule string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Matricule == matricule {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Actif = active
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

// fakeCodeStore mirrors the Redis store semantics in memory.
type fakeCodeStore struct {
	pending  map[string]activation.PendingCode
	verified map[string]bool
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{pending: map[string]activation.PendingCode{}, verified: map[string]bool{}}
}

func (s *fakeCodeStore) Put(_ context.Context, email string, pending activation.PendingCode) error {
	s.pending[email] = pending
	return nil
}

func (s *fakeCodeStore) Get(_ context.Context, email string) (activation.PendingCode, bool, error) {
	p, ok := s.pending[email]
	return p, ok, nil
}

func (s *fakeCodeStore) MarkVerified(_ context.Context, email string) error {
	s.verified[email] = true
	return nil
}

func (s *fakeCodeStore) IsVerified(_ context.Context, email string) (bool, error) {
	return s.verified[email], nil
}

func (s *fakeCodeStore) Clear(_ context.Context, email string) error {
	delete(s.pending, email)
	delete(s.verified, email)
	return nil
}

// fakeMailer records every send.
type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) SendActivationCode(_ context.Context, email, _ string) error {
	m.sent = append(m.sent, email)
	return nil
}

func newActivationFixture() (*ActivationService, *fakeUserRepo, *fakeCodeStore, *fakeMailer) {
	users := newFakeUserRepo()
	codes := newFakeCodeStore()
	mailer := &fakeMailer{}
	svc := NewActivationService(users, codes, mailer, events.NewInMemoryDispatcher(), 4, zap.NewNop())
	return svc, users, codes, mailer
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, code, de.Code)
}

func TestSendCodeRejectsInvalidInput(t *testing.T) {
	svc, _, codes, mailer := newActivationFixture()
	ctx := context.Background()

	requireDomainCode(t, svc.SendCode(ctx, "XX-1", "marie@simplon.co"), "VALIDATION_FAILED")
	requireDomainCode(t, svc.SendCode(ctx, "MAT-1", "not-an-email"), "VALIDATION_FAILED")

	require.Empty(t, mailer.sent)
	require.Empty(t, codes.pending)
}

func TestSendCodeRejectsExistingAccounts(t *testing.T) {
	svc, users, _, mailer := newActivationFixture()
	ctx := context.Background()

	users.users["u1"] = &domain.User{ID: "u1", Matricule: "MAT-1", Email: "marie@simplon.co"}

	requireDomainCode(t, svc.SendCode(ctx, "MAT-2", "marie@simplon.co"), "CONFLICT")
	requireDomainCode(t, svc.SendCode(ctx, "MAT-1", "paul@simplon.co"), "CONFLICT")
	require.Empty(t, mailer.sent)
}

func TestActivationFlow(t *testing.T) {
	svc, users, codes, mailer := newActivationFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, "mat-7", " Marie@Simplon.CO "))
	require.Equal(t, []string{"marie@simplon.co"}, mailer.sent)

	pending := codes.pending["marie@simplon.co"]
	require.Equal(t, "MAT-7", pending.Matricule)
	require.Len(t, pending.Code, 6)

	// cannot finalize before verifying the code
	_, err := svc.Activate(ctx, "MAT-7", "marie@simplon.co", "marie", "secret1")
	requireDomainCode(t, err, "FORBIDDEN")

	// wrong code keeps the pending entry for a retry
	requireDomainCode(t, svc.VerifyCode(ctx, "marie@simplon.co", "000000"), "VALIDATION_FAILED")
	_, found, _ := codes.Get(ctx, "marie@simplon.co")
	require.True(t, found)

	require.NoError(t, svc.VerifyCode(ctx, "marie@simplon.co", pending.Code))

	user, err := svc.Activate(ctx, "MAT-7", "marie@simplon.co", "marie", "secret1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, user.Role)
	require.True(t, user.Actif)
	require.NoError(t, auth.ComparePassword(user.PasswordHash, "secret1"))

	// pending keys are gone, the code cannot be replayed
	require.Empty(t, codes.pending)
	require.Empty(t, codes.verified)

	stored, err := users.GetByMatricule(ctx, "MAT-7")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)
}

func TestActivateAdminRoleFromMatricule(t *testing.T) {
	svc, _, codes, _ := newActivationFixture()
	ctx := context.Background()

	require.NoError(t, svc.SendCode(ctx, "AD-1", "admin@simplon.co"))
	require.NoError(t, codes.MarkVerified(ctx, "admin@simplon.co"))

	user, err := svc.Activate(ctx, "AD-1", "admin@simplon.co", "chief", "secret1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, user.Role)
}

func TestActivateValidatesPseudoAndPassword(t *testing.T) {
	svc, _, codes, _ := newActivationFixture()
	ctx := context.Background()

	require.NoError(t, codes.MarkVerified(ctx, "marie@simplon.co"))

	_, err := svc.Activate(ctx, "MAT-7", "marie@simplon.co", "ab", "secret1")
	requireDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Activate(ctx, "MAT-7", "marie@simplon.co", "marie", "12345")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}
