package services

import (
	"testing"

	"finboard/internal/models"
	"finboard/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Groceries", models.CategoryKindExpense, 3)
		testutil.AssertNoError(t, err)

		if cat.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.Kind != models.CategoryKindExpense {
			t.Errorf("expected kind expense, got %s", cat.Kind)
		}
		if cat.SortOrder != 3 {
			t.Errorf("expected sort order 3, got %d", cat.SortOrder)
		}
	})

	t.Run("duplicate_name_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Food", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "FOOD", models.CategoryKindExpense, 0)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(alice.ID, "Food", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(bob.ID, "Food", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "  ", models.CategoryKindExpense, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("ordered_by_sort_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Zebra", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(user.ID, "Apple", models.CategoryKindExpense, 1)
		testutil.AssertNoError(t, err)

		cats, err := svc.GetUserCategories(user.ID, nil)
		testutil.AssertNoError(t, err)

		if len(cats) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(cats))
		}
		if cats[0].Name != "Zebra" || cats[1].Name != "Apple" {
			t.Errorf("expected sort-order ordering, got %s then %s", cats[0].Name, cats[1].Name)
		}
	})

	t.Run("filter_by_kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Salary", models.CategoryKindIncome, 0)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(user.ID, "Rent", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		income := models.CategoryKindIncome
		cats, err := svc.GetUserCategories(user.ID, &income)
		testutil.AssertNoError(t, err)

		if len(cats) != 1 || cats[0].Name != "Salary" {
			t.Errorf("expected only the income category, got %v", cats)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Old", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateCategory(user.ID, cat.ID, "New", nil)
		testutil.AssertNoError(t, err)
		if updated.Name != "New" {
			t.Errorf("expected renamed category, got %s", updated.Name)
		}
	})

	t.Run("rename_collision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Taken", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)
		cat, err := svc.CreateCategory(user.ID, "Other", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(user.ID, cat.ID, "taken", nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateCategory(user.ID, 99999, "Name", nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Temp", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		err = svc.DeleteCategory(user.ID, cat.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(alice.ID, "Private", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		err = svc.DeleteCategory(bob.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestEnsureDefaults(t *testing.T) {
	t.Run("seeds_full_set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cats, err := svc.EnsureDefaults(user.ID)
		testutil.AssertNoError(t, err)

		want := len(models.DefaultExpenseCategories) + len(models.DefaultIncomeCategories)
		if len(cats) != want {
			t.Fatalf("expected %d default categories, got %d", want, len(cats))
		}
		for _, c := range cats {
			if !c.IsDefault {
				t.Errorf("expected %s to be marked as default", c.Name)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.EnsureDefaults(user.ID)
		testutil.AssertNoError(t, err)
		second, err := svc.EnsureDefaults(user.ID)
		testutil.AssertNoError(t, err)

		if len(first) != len(second) {
			t.Errorf("second call must not add categories: %d then %d", len(first), len(second))
		}
	})

	t.Run("skips_when_user_has_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Custom", models.CategoryKindExpense, 0)
		testutil.AssertNoError(t, err)

		cats, err := svc.EnsureDefaults(user.ID)
		testutil.AssertNoError(t, err)
		if len(cats) != 1 {
			t.Errorf("expected existing set untouched, got %d categories", len(cats))
		}
	})
}
