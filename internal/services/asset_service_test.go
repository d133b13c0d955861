package services

import (
	"testing"
	"time"

	"finboard/internal/models"
	"finboard/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	t.Run("records_opening_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		opening := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		asset, err := svc.CreateAsset(user.ID, "Savings", models.AssetTypeSavings, "", "Big Bank", "123-456", 5000, opening)
		testutil.AssertNoError(t, err)

		if asset.ID == 0 {
			t.Fatal("expected non-zero asset ID")
		}
		if len(asset.Balances) != 1 {
			t.Fatalf("expected 1 opening snapshot, got %d", len(asset.Balances))
		}
		testutil.AssertFloatEquals(t, asset.CurrentBalance, 5000)
		if !asset.LastUpdated.Equal(opening) {
			t.Errorf("expected last updated %v, got %v", opening, asset.LastUpdated)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAsset(user.ID, "", models.AssetTypeSavings, "", "", "", 0, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAddBalance(t *testing.T) {
	t.Run("later_snapshot_updates_current", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		asset := testutil.CreateTestAsset(t, db, user.ID, 1000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		updated, err := svc.AddBalance(user.ID, asset.ID, 1500, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		testutil.AssertFloatEquals(t, updated.CurrentBalance, 1500)
		if len(updated.Balances) != 2 {
			t.Errorf("expected 2 snapshots, got %d", len(updated.Balances))
		}
	})

	t.Run("backdated_snapshot_keeps_current", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		asset := testutil.CreateTestAsset(t, db, user.ID, 1000, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

		// Earlier date than the opening snapshot: the derived balance must
		// stay at the max-date snapshot, not the newest insert
		updated, err := svc.AddBalance(user.ID, asset.ID, 700, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		testutil.AssertFloatEquals(t, updated.CurrentBalance, 1000)
	})

	t.Run("unknown_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddBalance(user.ID, 99999, 100, time.Now())
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestDeleteBalance(t *testing.T) {
	t.Run("recomputes_after_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		asset := testutil.CreateTestAsset(t, db, user.ID, 1000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		updated, err := svc.AddBalance(user.ID, asset.ID, 2000, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		// Delete the later snapshot; the derived balance must fall back to
		// the remaining one
		var latest *models.AssetBalance
		for i := range updated.Balances {
			if latest == nil || updated.Balances[i].Date.After(latest.Date) {
				latest = &updated.Balances[i]
			}
		}
		after, err := svc.DeleteBalance(user.ID, asset.ID, latest.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertFloatEquals(t, after.CurrentBalance, 1000)
		if len(after.Balances) != 1 {
			t.Errorf("expected 1 snapshot left, got %d", len(after.Balances))
		}
	})

	t.Run("rejects_last_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		asset := testutil.CreateTestAsset(t, db, user.ID, 1000, time.Now())

		_, err := svc.DeleteBalance(user.ID, asset.ID, asset.Balances[0].ID)
		testutil.AssertAppError(t, err, "LAST_BALANCE")
	})

	t.Run("unknown_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		user := testutil.CreateTestUser(t, db)

		asset := testutil.CreateTestAsset(t, db, user.ID, 1000, time.Now())

		_, err := svc.DeleteBalance(user.ID, asset.ID, 99999)
		testutil.AssertAppError(t, err, "BALANCE_NOT_FOUND")
	})
}

func TestGetUserAssets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAssetService(db)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)

	testutil.CreateTestAsset(t, db, alice.ID, 100, time.Now())
	testutil.CreateTestAsset(t, db, alice.ID, 200, time.Now())
	testutil.CreateTestAsset(t, db, bob.ID, 300, time.Now())

	assets, err := svc.GetUserAssets(alice.ID)
	testutil.AssertNoError(t, err)

	if len(assets) != 2 {
		t.Fatalf("expected 2 assets for alice, got %d", len(assets))
	}
	for _, a := range assets {
		if len(a.Balances) == 0 {
			t.Errorf("expected balance history preloaded for %s", a.Name)
		}
	}
}

func TestDeleteAsset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAssetService(db)
	user := testutil.CreateTestUser(t, db)

	asset := testutil.CreateTestAsset(t, db, user.ID, 1000, time.Now())

	err := svc.DeleteAsset(user.ID, asset.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetAssetByID(user.ID, asset.ID)
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")

	var count int64
	db.Model(&models.AssetBalance{}).Where("asset_id = ?", asset.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected balance history removed, %d rows left", count)
	}
}
