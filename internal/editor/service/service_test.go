package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsrecord/internal/editor/models"
	"wordsrecord/internal/editor/store"
	"wordsrecord/internal/editor/token"
	dErrors "wordsrecord/pkg/domain-errors"
)

func newTestService() *Service {
	tokens := token.NewService("test-signing-key", "wordsrecord", "wordsrecord-admin")
	return New(store.NewMemory(), tokens)
}

func TestCreateEditorHashesPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ed, err := svc.Create(ctx, &models.CreateEditorRequest{
		Email:    "Editor@Example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", ed.Email)
	assert.Equal(t, models.RoleEditor, ed.Role)
	assert.NotEmpty(t, ed.PasswordHash)
	assert.NotEqual(t, "correct-horse-battery", ed.PasswordHash)
}

func TestCreateEditorShortPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateEditorRequest{
		Email:    "editor@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCreateEditorDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateEditorRequest{
		Email:    "editor@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreateEditorRequest{
		Email:    "editor@example.com",
		Password: "another-long-password",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateEditorRequest{
		Email:    "editor@example.com",
		Password: "correct-horse-battery",
		Role:     "admin",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "editor@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := svc.tokens.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateEditorRequest{
		Email:    "editor@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &models.LoginRequest{
		Email:    "editor@example.com",
		Password: "wrong-password-entirely",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestLoginDeactivatedEditor(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ed, err := svc.Create(ctx, &models.CreateEditorRequest{
		Email:    "editor@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, ed.ID))

	_, err = svc.Login(ctx, &models.LoginRequest{
		Email:    "editor@example.com",
		Password: "correct-horse-battery",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
