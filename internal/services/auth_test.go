package services

import (
	"context"
	"testing"
	"time"

	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/requestdata"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

func newAuthService(t *testing.T, env *testEnv) AuthService {
	t.Helper()
	return NewAuthService(env.db, env.log, repos.NewUserRepo(env.db, env.log), "test-secret", time.Hour)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	user, token, err := auth.Register(ctx, &types.User{
		Email:    "advisor@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatalf("Register: expected a token")
	}
	if user.Password == "hunter22" {
		t.Fatalf("password must be stored hashed")
	}

	_, loginToken, err := auth.Login(ctx, "advisor@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	authedCtx, err := auth.SetContextFromToken(ctx, loginToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data: want user %s, got %+v", user.ID, rd)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, &types.User{Email: "a@b.c", Password: "correct"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := auth.Login(ctx, "a@b.c", "wrong"); err == nil {
		t.Fatalf("wrong password: expected error")
	}
	if _, _, err := auth.Login(ctx, "missing@b.c", "whatever"); err == nil {
		t.Fatalf("unknown email: expected error")
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	if _, err := auth.SetContextFromToken(context.Background(), "not.a.token"); err == nil {
		t.Fatalf("garbage token: expected error")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := context.Background()

	if _, _, err := auth.Register(ctx, &types.User{Email: "dup@b.c", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := auth.Register(ctx, &types.User{Email: "dup@b.c", Password: "pw"}); err == nil {
		t.Fatalf("duplicate email: expected error")
	}
}
