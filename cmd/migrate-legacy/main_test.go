package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	natservice "wordsrecord/internal/nationality/service"
	natstore "wordsrecord/internal/nationality/store"
	personmodels "wordsrecord/internal/person/models"
	personstore "wordsrecord/internal/person/store"
	id "wordsrecord/pkg/domain"
)

func TestResolveLegacy(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		codes []string
	}{
		{"explicit compound mapping", "Israeli-American", []string{"IL", "US"}},
		{"alias resolution", "British", []string{"GB"}},
		{"separated aliases", "french, israeli", []string{"FR", "IL"}},
		{"hyphenated compound outside mapping", "french-german", []string{"FR", "DE"}},
		{"slash separated", "Irish/Italian", []string{"IE", "IT"}},
		{"unresolvable", "Ruritanian", nil},
		{"empty", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.codes, resolveLegacy(tt.raw))
		})
	}
}

func TestRunBackfill(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	persons := personstore.NewMemory()
	facts := natstore.NewMemory()
	svc := natservice.New(natservice.NewMemoryStoreTx(facts, persons), facts, persons)

	dual, err := personmodels.NewPerson(id.NewPersonID(), "dual-national", "Dual National", "", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, persons.Create(ctx, dual))
	require.NoError(t, persons.SetLegacyNationality(ctx, dual.ID, "Israeli-French"))

	unknown, err := personmodels.NewPerson(id.NewPersonID(), "unknown-national", "Unknown National", "", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, persons.Create(ctx, unknown))
	require.NoError(t, persons.SetLegacyNationality(ctx, unknown.ID, "Ruritanian"))

	migrated, skipped, err := runBackfill(ctx, log, persons, svc)
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)
	assert.Equal(t, 1, skipped)

	got, err := persons.FindByID(ctx, dual.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NationalityPrimaryCode)
	assert.Equal(t, "IL", *got.NationalityPrimaryCode)
	assert.Equal(t, []string{"IL", "FR"}, got.NationalityCodesCached)
	assert.Nil(t, got.LegacyNationality)

	// Legacy value stays on the unresolved person for manual review.
	got, err = persons.FindByID(ctx, unknown.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LegacyNationality)
	assert.Nil(t, got.NationalityPrimaryCode)
}
