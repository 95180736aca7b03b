package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/models"
)

func TestFeedIsScopedPerUser(t *testing.T) {
	feed := NewNotificationFeedService()

	feed.Create(NotificationInput{UserID: 1, Title: "Estoque baixo", Message: "Shampoo abaixo do mínimo"})
	feed.Create(NotificationInput{UserID: 2, Title: "Novo agendamento", Message: "Manicure amanhã"})
	feed.Create(NotificationInput{UserID: 1, Title: "Backup concluído", Message: "Backup diário finalizado"})

	mine := feed.GetForUser(1)
	require.Len(t, mine, 2)
	assert.Equal(t, "Backup concluído", mine[0].Title)
	assert.Equal(t, "Estoque baixo", mine[1].Title)
	assert.Len(t, feed.GetForUser(2), 1)
	assert.Empty(t, feed.GetForUser(3))
}

func TestFeedDefaultsTypeAndPriority(t *testing.T) {
	feed := NewNotificationFeedService()

	entry := feed.Create(NotificationInput{UserID: 1, Title: "Aviso", Message: "Teste"})
	assert.Equal(t, models.NotificationInfo, entry.Type)
	assert.Equal(t, models.PriorityLow, entry.Priority)
	assert.False(t, entry.Read)
	assert.NotEmpty(t, entry.ID)
}

func TestFeedMarkRead(t *testing.T) {
	feed := NewNotificationFeedService()

	entry := feed.Create(NotificationInput{UserID: 1, Title: "Aviso", Message: "Teste"})
	require.NoError(t, feed.MarkRead(entry.ID, 1))
	assert.True(t, feed.GetForUser(1)[0].Read)

	// Another user cannot touch the entry.
	assert.ErrorIs(t, feed.MarkRead(entry.ID, 2), ErrNotFound)
}

func TestFeedMarkAllRead(t *testing.T) {
	feed := NewNotificationFeedService()

	feed.Create(NotificationInput{UserID: 1, Title: "Um", Message: "x"})
	feed.Create(NotificationInput{UserID: 1, Title: "Dois", Message: "x"})
	feed.Create(NotificationInput{UserID: 2, Title: "Alheio", Message: "x"})

	feed.MarkAllRead(1)
	for _, entry := range feed.GetForUser(1) {
		assert.True(t, entry.Read)
	}
	assert.False(t, feed.GetForUser(2)[0].Read)
}

func TestFeedDelete(t *testing.T) {
	feed := NewNotificationFeedService()

	entry := feed.Create(NotificationInput{UserID: 1, Title: "Aviso", Message: "Teste"})
	assert.ErrorIs(t, feed.Delete(entry.ID, 2), ErrNotFound)
	require.NoError(t, feed.Delete(entry.ID, 1))
	assert.Empty(t, feed.GetForUser(1))
	assert.ErrorIs(t, feed.Delete(entry.ID, 1), ErrNotFound)
}

func TestFeedCapsEntries(t *testing.T) {
	feed := NewNotificationFeedService()

	for i := 0; i < maxFeedEntries+5; i++ {
		feed.Create(NotificationInput{UserID: 1, Title: fmt.Sprintf("n%d", i), Message: "x"})
	}
	entries := feed.GetForUser(1)
	assert.Len(t, entries, maxFeedEntries)
	// Newest first, oldest evicted.
	assert.Equal(t, fmt.Sprintf("n%d", maxFeedEntries+4), entries[0].Title)
}
