package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/database"
	"taskboard-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.New(database.Config{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err, "failed to open database")
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()), "failed to migrate")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	user := &domain.User{Email: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createBoard(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *domain.Board {
	board := &domain.Board{Name: name, OwnerID: ownerID}
	require.NoError(t, NewBoardRepository(db).CreateWithOwner(t.Context(), board))
	return board
}

func createCard(t *testing.T, db *gorm.DB, board *domain.Board, ownerID uuid.UUID) *domain.Card {
	card := &domain.Card{BoardID: board.ID, Name: "card", OwnerID: ownerID, ListMember: []uuid.UUID{ownerID}}
	require.NoError(t, NewCardRepository(db).Create(t.Context(), card))
	return card
}

func createTask(t *testing.T, db *gorm.DB, card *domain.Card, ownerID uuid.UUID, assignees ...uuid.UUID) *domain.Task {
	task := &domain.Task{
		CardID:   card.ID,
		BoardID:  card.BoardID,
		Title:    "task",
		Status:   domain.TaskStatusIcebox,
		Priority: domain.TaskPriorityMedium,
		OwnerID:  ownerID,
	}
	for _, id := range assignees {
		task.Assignees = append(task.Assignees, domain.TaskAssignee{UserID: id})
	}
	require.NoError(t, NewTaskRepository(db).Create(t.Context(), task))
	return task
}
