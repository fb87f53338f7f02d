package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprint/labresolve/internal/common"
	"github.com/pawprint/labresolve/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate_SeedsGlobalCatalog(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	items, err := store.ItemsForScope(ctx, model.GlobalScope)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	byName := make(map[string]model.CanonicalItem, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}

	cre, ok := byName["CRE"]
	require.True(t, ok, "seed catalog missing CRE")
	assert.Equal(t, "Creatinine", cre.DisplayName)
	assert.Equal(t, model.ExamTypeBiochemistry, cre.ExamType)
	assert.Equal(t, "mg/dL", cre.DefaultUnit)
	assert.NotEmpty(t, cre.ID)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	items, err := store.ItemsForScope(ctx, model.GlobalScope)
	require.NoError(t, err)
	assert.Len(t, items, len(seedItems()))
}

func TestSaveItem_UpsertKeepsID(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	item := &model.CanonicalItem{
		Name:        "SDMA",
		DisplayName: "Symmetric Dimethylarginine",
		ExamType:    model.ExamTypeBiochemistry,
		DefaultUnit: "µg/dL",
		Source:      model.ItemSourceAdmin,
	}
	require.NoError(t, store.SaveItem(ctx, item, model.GlobalScope))
	require.NotEmpty(t, item.ID)
	firstID := item.ID

	// Retried identical write updates in place, identifier is immutable.
	update := &model.CanonicalItem{
		Name:        "SDMA",
		DisplayName: "SDMA (renal)",
		ExamType:    model.ExamTypeBiochemistry,
		DefaultUnit: "µg/dL",
	}
	require.NoError(t, store.SaveItem(ctx, update, model.GlobalScope))
	assert.Equal(t, firstID, update.ID)

	got, err := store.GetItemByName(ctx, "SDMA", model.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, firstID, got.ID)
	assert.Equal(t, "SDMA (renal)", got.DisplayName)
}

func TestSaveItem_UserScopeDoesNotTouchGlobal(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	userScope := model.Scope{UserID: "user-1"}

	item := &model.CanonicalItem{
		Name:        "MyOwnMarker",
		DisplayName: "Personal Marker",
		Source:      model.ItemSourceUser,
	}
	require.NoError(t, store.SaveItem(ctx, item, userScope))

	globalItems, err := store.ItemsForScope(ctx, model.GlobalScope)
	require.NoError(t, err)
	for _, gi := range globalItems {
		assert.NotEqual(t, "MyOwnMarker", gi.Name)
	}

	userItems, err := store.ItemsForScope(ctx, userScope)
	require.NoError(t, err)
	require.Len(t, userItems, 1)
	assert.Equal(t, "MyOwnMarker", userItems[0].Name)
}

func TestGetItemByName_OverlayBeforeGlobal(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	userScope := model.Scope{UserID: "user-1"}

	override := &model.CanonicalItem{
		Name:        "GLU",
		DisplayName: "Glucose (my lab)",
		Source:      model.ItemSourceUser,
	}
	require.NoError(t, store.SaveItem(ctx, override, userScope))

	got, err := store.GetItemByName(ctx, "glu", userScope)
	require.NoError(t, err)
	assert.Equal(t, "Glucose (my lab)", got.DisplayName)

	// The global layer is unchanged.
	got, err = store.GetItemByName(ctx, "glu", model.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, "Glucose", got.DisplayName)
}

func TestGetItemByName_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetItemByName(context.Background(), "NoSuchAnalyte", model.GlobalScope)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveAlias_ByCanonicalName(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	alias := &model.Alias{
		Text:       "Cre",
		ItemName:   "CRE",
		SourceHint: "IDEXX Catalyst",
	}
	require.NoError(t, store.SaveAlias(ctx, alias, model.GlobalScope))
	assert.NotEmpty(t, alias.ItemID)

	aliases, err := store.AliasesForScope(ctx, model.GlobalScope)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "Cre", aliases[0].Text)
	assert.Equal(t, "CRE", aliases[0].ItemName)
	assert.Equal(t, "IDEXX Catalyst", aliases[0].SourceHint)
}

func TestSaveAlias_UnknownTargetRejected(t *testing.T) {
	store := createTestStorage(t)

	alias := &model.Alias{Text: "Mystery", ItemName: "NoSuchItem"}
	err := store.SaveAlias(context.Background(), alias, model.GlobalScope)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownItem)

	// No partial write.
	aliases, listErr := store.AliasesForScope(context.Background(), model.GlobalScope)
	require.NoError(t, listErr)
	assert.Empty(t, aliases)
}

func TestSaveAlias_IdempotentUpsert(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	alias := &model.Alias{Text: "Cre", ItemName: "CRE"}
	require.NoError(t, store.SaveAlias(ctx, alias, model.GlobalScope))
	require.NoError(t, store.SaveAlias(ctx, alias, model.GlobalScope))

	aliases, err := store.AliasesForScope(ctx, model.GlobalScope)
	require.NoError(t, err)
	assert.Len(t, aliases, 1)

	// Re-pointing the same normalized spelling replaces the mapping.
	alias2 := &model.Alias{Text: "CRE.", ItemName: "BUN"}
	require.NoError(t, store.SaveAlias(ctx, alias2, model.GlobalScope))

	aliases, err = store.AliasesForScope(ctx, model.GlobalScope)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "BUN", aliases[0].ItemName)
}

func TestDeleteAlias(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	alias := &model.Alias{Text: "Cre", ItemName: "CRE"}
	require.NoError(t, store.SaveAlias(ctx, alias, model.GlobalScope))

	require.NoError(t, store.DeleteAlias(ctx, "cre", model.GlobalScope))

	err := store.DeleteAlias(ctx, "cre", model.GlobalScope)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestScopeIsolation_Aliases(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	userScope := model.Scope{UserID: "user-1"}

	require.NoError(t, store.SaveAlias(ctx, &model.Alias{Text: "Zucker", ItemName: "GLU"}, userScope))

	globalAliases, err := store.AliasesForScope(ctx, model.GlobalScope)
	require.NoError(t, err)
	assert.Empty(t, globalAliases)

	userAliases, err := store.AliasesForScope(ctx, userScope)
	require.NoError(t, err)
	assert.Len(t, userAliases, 1)
}
