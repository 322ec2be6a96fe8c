// Command migrate-legacy backfills nationality facts from the free-text
// nationality column imported from the old system. Every write goes through
// the nationality service so validation and cache recompute apply exactly as
// they do for admin edits.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"wordsrecord/internal/country"
	natmodels "wordsrecord/internal/nationality/models"
	natservice "wordsrecord/internal/nationality/service"
	natstore "wordsrecord/internal/nationality/store"
	personmodels "wordsrecord/internal/person/models"
	personstore "wordsrecord/internal/person/store"
	"wordsrecord/internal/platform/config"
	"wordsrecord/internal/platform/logger"
	"wordsrecord/internal/platform/postgres"
	id "wordsrecord/pkg/domain"
)

// legacyMapping resolves the free-text values the old system actually
// contains. Compound values map to an ordered code list; the first code
// becomes the primary citizenship. Anything not listed here falls through to
// alias resolution, and anything still unresolved is logged and skipped.
var legacyMapping = map[string][]string{
	"israeli-american": {"IL", "US"},
	"american-israeli": {"US", "IL"},
	"french-israeli":   {"FR", "IL"},
	"israeli-french":   {"IL", "FR"},
	"british-american": {"GB", "US"},
	"anglo-american":   {"GB", "US"},
	"dual us/uk":       {"US", "GB"},
	"dual uk/us":       {"GB", "US"},
}

type personBackfillStore interface {
	ListWithLegacyNationality(ctx context.Context) ([]*personmodels.Person, error)
	ClearLegacyNationality(ctx context.Context, personID id.PersonID) error
}

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	persons := personstore.NewPostgres(db)
	facts := natstore.NewPostgres(db)
	svc := natservice.New(newNationalityPostgresTx(db), facts, persons,
		natservice.WithLogger(log),
	)

	migrated, skipped, err := runBackfill(ctx, log, persons, svc)
	if err != nil {
		log.Error("legacy nationality backfill failed", "error", err)
		os.Exit(1)
	}
	log.Info("legacy nationality backfill finished",
		"migrated", migrated,
		"skipped", skipped,
	)
}

func runBackfill(ctx context.Context, log *slog.Logger, persons personBackfillStore, svc *natservice.Service) (migrated, skipped int, err error) {
	pending, err := persons.ListWithLegacyNationality(ctx)
	if err != nil {
		return 0, 0, err
	}
	log.Info("starting legacy nationality backfill", "persons", len(pending))

	for _, p := range pending {
		codes := resolveLegacy(*p.LegacyNationality)
		if len(codes) == 0 {
			// Default case: no mapping and no alias match. Leave the row
			// for manual review rather than guessing.
			log.Warn("unresolved legacy nationality",
				"person_id", p.ID,
				"legacy_value", *p.LegacyNationality,
			)
			skipped++
			continue
		}

		ok := true
		for i, code := range codes {
			_, upsertErr := svc.Upsert(ctx, &natmodels.UpsertFactRequest{
				PersonID:     p.ID.String(),
				Country:      code,
				Type:         string(natmodels.TypeCitizenship),
				IsPrimary:    i == 0,
				DisplayOrder: i,
				Note:         "migrated from legacy nationality field",
			})
			if upsertErr != nil {
				log.Error("failed to write migrated fact",
					"person_id", p.ID,
					"country", code,
					"error", upsertErr,
				)
				ok = false
				break
			}
		}
		if !ok {
			skipped++
			continue
		}
		if clearErr := persons.ClearLegacyNationality(ctx, p.ID); clearErr != nil {
			log.Error("failed to clear legacy nationality", "person_id", p.ID, "error", clearErr)
		}
		migrated++
	}
	return migrated, skipped, nil
}

// resolveLegacy turns a raw legacy value into an ordered list of country
// codes. The explicit mapping wins; otherwise each separator-delimited part
// goes through the country alias table. The old system wrote compounds with
// commas, slashes and hyphens ("Israeli-American"), so all three split here.
func resolveLegacy(raw string) []string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if codes, ok := legacyMapping[key]; ok {
		return codes
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '/' || r == '-'
	})
	return country.NormalizeList(parts)
}
