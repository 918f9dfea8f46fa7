package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kizuna-core/internal/domain/mocks"
	"github.com/ersonp/kizuna-core/internal/domain/services"
)

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportHandler_JSON(t *testing.T) {
	store := mocks.NewStore()
	handler := NewImportHandler(services.NewPersonService(store))

	path := writeImportFile(t, "people.json", `[
		{"family_name": "佐藤", "given_name": "健", "birth_date": "1990-05", "groups": "work,tennis"},
		{"family_name": "鈴木", "given_name": "花"}
	]`)

	result, err := handler.HandleImport(context.Background(), path, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Len(t, store.People, 2)
}

func TestImportHandler_SkipsInvalidRecords(t *testing.T) {
	store := mocks.NewStore()
	handler := NewImportHandler(services.NewPersonService(store))

	path := writeImportFile(t, "people.csv",
		"family_name,given_name,birth_date\n"+
			"佐藤,健,1990-05\n"+
			"鈴木,,\n"+
			"田中,太郎,garbage\n")

	result, err := handler.HandleImport(context.Background(), path, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].LineNum)
	assert.Equal(t, 4, result.Errors[1].LineNum)
	assert.Len(t, store.People, 1)
}

func TestImportHandler_DryRun(t *testing.T) {
	store := mocks.NewStore()
	handler := NewImportHandler(services.NewPersonService(store))

	path := writeImportFile(t, "people.json", `[{"family_name": "佐藤", "given_name": "健"}]`)

	result, err := handler.HandleImport(context.Background(), path, ImportOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.True(t, result.DryRun)
	assert.Empty(t, store.People)
}

func TestImportHandler_UnsupportedFormat(t *testing.T) {
	store := mocks.NewStore()
	handler := NewImportHandler(services.NewPersonService(store))

	path := writeImportFile(t, "people.xml", "<people/>")

	_, err := handler.HandleImport(context.Background(), path, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported import format")
}
