package users

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andryushik/MyDiary/apperr"
	"github.com/Andryushik/MyDiary/auth"
	"github.com/Andryushik/MyDiary/store"
)

type fakeImages struct{}

func (fakeImages) Upload(_ context.Context, ownerID, filename string, _ io.Reader) (string, error) {
	return "https://img.example/" + ownerID + "/" + filename, nil
}

func (fakeImages) Delete(context.Context, string) error { return nil }

func newService() (*Service, *store.MemUserStore) {
	userStore := store.NewMemUserStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewService(userStore, tokens, fakeImages{}), userStore
}

func signupRequest() SignupRequest {
	return SignupRequest{
		Email:     "alice@example.com",
		Password:  "hunter22",
		FirstName: "Alice",
		LastName:  "Ng",
		Country:   "NL",
	}
}

func TestSignupAndLogin(t *testing.T) {
	svc, userStore := newService()
	ctx := context.Background()

	result, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.Token)

	stored, err := userStore.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.Password, "credential is stored hashed")

	login, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, result.ID, login.ID)
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "not-an-email", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.NotEmpty(t, apperr.ValidationFields(err))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(ctx, signupRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	wrongPassword := apperr.Message(err)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, wrongPassword, apperr.Message(err), "message does not reveal which field was wrong")
}

func TestFollowUnfollow(t *testing.T) {
	svc, userStore := newService()
	ctx := context.Background()

	alice, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)
	req := signupRequest()
	req.Email = "bob@example.com"
	bob, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID), "follow is idempotent")

	stored, err := userStore.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, stored.Following)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	stored, err = userStore.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Following)
}

func TestFollowSelfRejected(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	alice, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	err = svc.Follow(ctx, alice.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestFollowMissingTarget(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	alice, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	err = svc.Follow(ctx, alice.ID, "652f00000000000000000000")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUploadProfilePicture(t *testing.T) {
	svc, userStore := newService()
	ctx := context.Background()

	alice, err := svc.Signup(ctx, signupRequest())
	require.NoError(t, err)

	url, err := svc.UploadProfilePicture(ctx, alice.ID, "me.jpg", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/"+alice.ID+"/me.jpg", url)

	stored, err := userStore.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.ProfilePicture)
}
