package audit

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"sjfs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(entry *models.AuditLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func TestRecord_MapsEntryFields(t *testing.T) {
	repo := new(MockAuditRepo)
	svc := NewService(repo)

	var row *models.AuditLog
	repo.On("Create", mock.Anything).
		Run(func(args mock.Arguments) { row = args.Get(0).(*models.AuditLog) }).
		Return(nil)

	actorID := uint(42)
	merchantID := uint(7)
	err := svc.Record(context.Background(), Entry{
		ActorID:    &actorID,
		MerchantID: &merchantID,
		Action:     "order.status_updated",
		EntityType: "order",
		EntityID:   100,
		Details:    models.JSON{"status": "DELIVERED"},
	})

	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, &actorID, row.ActorID)
	assert.Equal(t, &merchantID, row.MerchantID)
	assert.Equal(t, "order.status_updated", row.Action)
	assert.Equal(t, "order", row.EntityType)
	assert.Equal(t, uint(100), row.EntityID)
	assert.Equal(t, "DELIVERED", row.Details["status"])
}

// A failed write is reported exactly once, by the caller. Record itself must
// stay silent and only return the error.
func TestRecord_ReturnsErrorWithoutLogging(t *testing.T) {
	repo := new(MockAuditRepo)
	svc := NewService(repo)

	repoErr := errors.New("insert failed")
	repo.On("Create", mock.Anything).Return(repoErr)

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	err := svc.Record(context.Background(), Entry{
		Action:     "merchant.deleted",
		EntityType: "merchant",
		EntityID:   7,
	})

	assert.ErrorIs(t, err, repoErr)
	assert.Empty(t, buf.String())
}
