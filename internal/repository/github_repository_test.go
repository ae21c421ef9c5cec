package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

func TestGitHubAttachmentRepository_ListNewestFirstAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGitHubAttachmentRepository(db)
	taskID := uuid.New()
	sha := "abc123"
	number := 42

	older := &domain.GitHubAttachment{
		TaskID: taskID, CardID: uuid.New(), BoardID: uuid.New(),
		Kind: domain.GitHubAttachmentCommit, SHA: &sha, CreatedBy: uuid.New(),
		CreatedAt: time.Now().Add(-time.Minute),
	}
	newer := &domain.GitHubAttachment{
		TaskID: taskID, CardID: older.CardID, BoardID: older.BoardID,
		Kind: domain.GitHubAttachmentPullRequest, Number: &number, CreatedBy: older.CreatedBy,
	}
	require.NoError(t, repo.Create(t.Context(), older))
	require.NoError(t, repo.Create(t.Context(), newer))

	list, err := repo.FindByTaskID(t.Context(), taskID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, 42, *list[0].Number)
	assert.Equal(t, "abc123", *list[1].SHA)

	require.NoError(t, repo.Delete(t.Context(), older.ID))
	_, err = repo.FindByID(t.Context(), older.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(t.Context(), older.ID), gorm.ErrRecordNotFound)
}

func TestGitHubRepoRepository_UpsertForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGitHubRepoRepository(db)
	userID := uuid.New()

	first := []*domain.GitHubRepository{
		{UserID: userID, GitHubID: 1, FullName: "octo/alpha", Name: "alpha", Owner: "octo", Stars: 1},
		{UserID: userID, GitHubID: 2, FullName: "octo/beta", Name: "beta", Owner: "octo"},
	}
	require.NoError(t, repo.UpsertForUser(t.Context(), first))
	alphaID := first[0].ID

	refreshed := []*domain.GitHubRepository{
		{UserID: userID, GitHubID: 1, FullName: "octo/alpha", Name: "alpha", Owner: "octo", Stars: 10},
	}
	require.NoError(t, repo.UpsertForUser(t.Context(), refreshed))
	assert.Equal(t, alphaID, refreshed[0].ID, "upsert keeps the cached row id")

	stored, err := repo.FindByUser(t.Context(), userID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 10, stored[0].Stars)

	byID, err := repo.FindByID(t.Context(), alphaID)
	require.NoError(t, err)
	assert.Equal(t, "octo/alpha", byID.FullName)
}
