package service

import (
	"testing"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogActionPersistsSerializedDetails(t *testing.T) {
	db := setupTestDB(t)
	user := seedTestUser(t, db, model.RoleAdmin)
	audit := NewAuditService(repository.NewAuditLogRepo(db))

	audit.LogAction(user.ID, "UPDATE", "PRODUCT", "some-id", map[string]interface{}{
		"product_name": "Cola",
		"updates":      map[string]interface{}{"quantity": map[string]interface{}{"old": 10, "new": 4}},
	})

	var entry model.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, user.ID, entry.UserID)
	assert.Equal(t, "UPDATE", entry.Action)
	assert.Equal(t, "PRODUCT", entry.Entity)
	assert.Equal(t, "some-id", entry.EntityID)
	assert.Contains(t, entry.Details, `"product_name":"Cola"`)
}

func TestLogActionWithoutUserIsDropped(t *testing.T) {
	db := setupTestDB(t)
	audit := NewAuditService(repository.NewAuditLogRepo(db))

	audit.LogAction(uuid.Nil, "UPDATE", "PRODUCT", "some-id", nil)

	var count int64
	require.NoError(t, db.Model(&model.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuditListFilters(t *testing.T) {
	db := setupTestDB(t)
	user := seedTestUser(t, db, model.RoleAdmin)
	repo := repository.NewAuditLogRepo(db)
	audit := NewAuditService(repo)

	audit.LogAction(user.ID, "CREATE", "PRODUCT", "p1", map[string]interface{}{"name": "Cola"})
	audit.LogAction(user.ID, "DELETE", "PRODUCT", "p1", nil)
	audit.LogAction(user.ID, "CREATE", "CATEGORY", "c1", nil)

	byAction, total, err := repo.List(repository.AuditListOptions{Action: "CREATE"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byAction, 2)

	bySearch, total, err := repo.List(repository.AuditListOptions{Search: "cola"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bySearch, 1)
	require.NotNil(t, bySearch[0].User)
	assert.Equal(t, user.Email, bySearch[0].User.Email)

	byUser, total, err := repo.List(repository.AuditListOptions{UserID: user.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, byUser, 3)
}
