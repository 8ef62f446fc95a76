package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/iliyamo/olympics-logistics/internal/database"
	"github.com/iliyamo/olympics-logistics/internal/storetest"
)

func TestClaimSeatTx_StopsAtCapacity(t *testing.T) {
	db := storetest.Open(t)
	repo := NewJourneyRepo(db)
	ctx := context.Background()

	var results []bool
	for i := 0; i < 3; i++ {
		err := database.WithTx(ctx, db, nil, func(tx *sql.Tx) error {
			ok, err := repo.ClaimSeatTx(ctx, tx, storetest.JourneyOneLeft)
			results = append(results, ok)
			return err
		})
		if err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
	}

	if !results[0] || results[1] || results[2] {
		t.Errorf("claims = %v, want [true false false]", results)
	}
	if nbooked, _ := storetest.Counts(t, db, storetest.JourneyOneLeft); nbooked != 5 {
		t.Errorf("nbooked = %d, want 5", nbooked)
	}
}

func TestLocateTx(t *testing.T) {
	db := storetest.Open(t)
	repo := NewJourneyRepo(db)
	ctx := context.Background()

	err := database.WithTx(ctx, db, nil, func(tx *sql.Tx) error {
		j, err := repo.LocateTx(ctx, tx, "BUS03", storetest.At(15, 0))
		if err != nil {
			return err
		}
		if j == nil || j.JourneyID != storetest.JourneyFromPort || j.OriginName != "Airport" || j.Capacity != 40 {
			t.Errorf("LocateTx() = %+v", j)
		}
		missing, err := repo.LocateTx(ctx, tx, "BUS03", storetest.At(15, 1))
		if missing != nil {
			t.Errorf("LocateTx(wrong time) = %+v, want nil", missing)
		}
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestMedalCounts(t *testing.T) {
	db := storetest.Open(t)
	repo := NewMemberRepo(db)
	ctx := context.Background()

	ind, err := repo.IndividualMedals(ctx, storetest.Thorpe)
	if err != nil {
		t.Fatal(err)
	}
	team, err := repo.TeamMedals(ctx, storetest.Thorpe)
	if err != nil {
		t.Fatal(err)
	}
	if ind.Gold != 1 || team.Gold != 1 || ind.Silver+ind.Bronze+team.Silver+team.Bronze != 0 {
		t.Errorf("individual=%+v team=%+v", ind, team)
	}
}
