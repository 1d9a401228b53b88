package dao_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/repository/dao"
)

var testDB *gorm.DB

// TestMain spins up a disposable Postgres container. The stock guard
// queries and CHECK constraints only behave like production against a
// real Postgres, so these tests do not run against sqlite or mocks.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("skipping dao integration tests, docker unavailable: %v", err)
		os.Exit(0)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("skipping dao integration tests, docker unavailable: %v", err)
		os.Exit(0)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=heuristiclogix_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=postgres password=secret dbname=heuristiclogix_test sslmode=disable", resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.Ping(); pingErr != nil {
			return pingErr
		}
		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %v", err)
	}

	if err = dao.InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func newStockedItem(t *testing.T, d *dao.InventoryDAO, sku string, onHand int64) dao.Item {
	t.Helper()
	ctx := context.Background()

	category, err := d.InsertCategory(ctx, dao.Category{Name: "cat-" + sku})
	require.NoError(t, err)
	unit, err := d.InsertUnit(ctx, dao.UnitOfMeasure{Symbol: "U-" + sku, Name: "unit " + sku})
	require.NoError(t, err)

	item, err := d.InsertItem(ctx, dao.Item{
		SKU:        sku,
		Name:       "item " + sku,
		CategoryID: category.ID,
		BaseUnitID: unit.ID,
		OnHand:     decimal.NewFromInt(onHand),
	})
	require.NoError(t, err)

	return item
}

func TestInventoryDAO_Reserve(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)
	ctx := context.Background()
	item := newStockedItem(t, d, "RES-500", 500)

	reserved, err := d.Reserve(ctx, item.ID, decimal.NewFromInt(450), "order-1")
	require.NoError(t, err)
	assert.True(t, reserved.Reserved.Equal(decimal.NewFromInt(450)))
	assert.True(t, reserved.OnHand.Equal(decimal.NewFromInt(500)))

	// Only 50 available now; the guarded update must fail and leave the
	// row untouched.
	_, err = d.Reserve(ctx, item.ID, decimal.NewFromInt(100), "order-2")
	assert.ErrorIs(t, err, dao.ErrInsufficientStock)

	current, err := d.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, current.Reserved.Equal(decimal.NewFromInt(450)))
	assert.True(t, current.OnHand.Equal(decimal.NewFromInt(500)))

	movements, err := d.FindMovementsByItemID(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1, "failed reservation must not leave an audit row")
}

func TestInventoryDAO_Reserve_ItemNotFound(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)

	_, err := d.Reserve(context.Background(), 987654, decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, dao.ErrItemNotFound)
}

func TestInventoryDAO_Reserve_Concurrent(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)
	ctx := context.Background()
	item := newStockedItem(t, d, "RES-CONC", 100)

	// 20 workers race to reserve 10 each against 100 on hand. Exactly 10
	// must succeed; over-reservation would violate the row's CHECK anyway.
	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Reserve(ctx, item.ID, decimal.NewFromInt(10), "race")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, dao.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 10, succeeded)

	current, err := d.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, current.Reserved.Equal(decimal.NewFromInt(100)))
}

func TestInventoryDAO_ReleaseAndShip(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)
	ctx := context.Background()
	item := newStockedItem(t, d, "SHIP-100", 100)

	_, err := d.Reserve(ctx, item.ID, decimal.NewFromInt(60), "order-1")
	require.NoError(t, err)

	released, err := d.Release(ctx, item.ID, decimal.NewFromInt(20), "order-1")
	require.NoError(t, err)
	assert.True(t, released.Reserved.Equal(decimal.NewFromInt(40)))

	_, err = d.Release(ctx, item.ID, decimal.NewFromInt(50), "order-1")
	assert.ErrorIs(t, err, dao.ErrInsufficientReserved)

	shipped, err := d.Ship(ctx, item.ID, decimal.NewFromInt(40), "order-1")
	require.NoError(t, err)
	assert.True(t, shipped.OnHand.Equal(decimal.NewFromInt(60)))
	assert.True(t, shipped.Reserved.IsZero())
}

func TestInventoryDAO_StagingFlow(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)
	ctx := context.Background()
	item := newStockedItem(t, d, "STG-0", 0)

	staged, err := d.Receive(ctx, item.ID, decimal.NewFromInt(100), true, "po-1")
	require.NoError(t, err)
	assert.True(t, staged.Staging.Equal(decimal.NewFromInt(100)))
	assert.True(t, staged.OnHand.IsZero())

	verified, err := d.VerifyStaging(ctx, item.ID, decimal.NewFromInt(70), "qc-1")
	require.NoError(t, err)
	assert.True(t, verified.Staging.Equal(decimal.NewFromInt(30)))
	assert.True(t, verified.OnHand.Equal(decimal.NewFromInt(70)))

	_, err = d.VerifyStaging(ctx, item.ID, decimal.NewFromInt(31), "qc-2")
	assert.ErrorIs(t, err, dao.ErrInsufficientStaging)
}

func TestInventoryDAO_DeleteCategory_Restrict(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)
	ctx := context.Background()
	item := newStockedItem(t, d, "DEL-CAT", 0)

	err := d.DeleteCategory(ctx, item.CategoryID)
	assert.ErrorIs(t, err, dao.ErrCategoryInUse)

	require.NoError(t, d.DeleteItem(ctx, item.ID))
	assert.NoError(t, d.DeleteCategory(ctx, item.CategoryID))
}

func TestInventoryDAO_DeleteItem_CascadesConversions(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)
	ctx := context.Background()
	item := newStockedItem(t, d, "DEL-CONV", 0)

	otherUnit, err := d.InsertUnit(ctx, dao.UnitOfMeasure{Symbol: "U2-DEL-CONV", Name: "other"})
	require.NoError(t, err)
	_, err = d.InsertConversion(ctx, dao.ItemUnitConversion{
		ItemID:     item.ID,
		FromUnitID: item.BaseUnitID,
		ToUnitID:   otherUnit.ID,
		Factor:     decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	require.NoError(t, d.DeleteItem(ctx, item.ID))

	conversions, err := d.FindConversionsByItemID(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, conversions)
}

func TestInventoryDAO_InsertUnit_DuplicateSymbol(t *testing.T) {
	if testDB == nil {
		t.Skip("no database available")
	}

	d := dao.NewInventoryDAO(testDB)
	ctx := context.Background()

	_, err := d.InsertUnit(ctx, dao.UnitOfMeasure{Symbol: "DUP", Name: "first"})
	require.NoError(t, err)

	_, err = d.InsertUnit(ctx, dao.UnitOfMeasure{Symbol: "DUP", Name: "second"})
	assert.ErrorIs(t, err, dao.ErrUnitSymbolExists)
}
