package payroll_test

import (
	"context"
	"testing"
	"time"

	"contractor-erp/internal/payroll"
	payrollerrors "contractor-erp/internal/payroll/errors"
	"contractor-erp/internal/period"
	"contractor-erp/internal/shared/dberror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&payroll.EmployeeRef{}, &payroll.PayrollRecord{}))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&payroll.EmployeeRef{ID: id, FullName: "Worker " + id.String()[:4], Role: role}).Error)
	return id
}

func TestRepository_UniqueEmployeePeriod(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := payroll.NewRepository(db)
	ctx := context.Background()
	employeeID := seedEmployee(t, db, "electrician")

	first := existingRecord()
	first.EmployeeID = employeeID
	require.NoError(t, repo.Create(ctx, first))

	second := existingRecord()
	second.EmployeeID = employeeID
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, dberror.IsUniqueViolation(err, "uq_payroll_employee_period"))

	exists, err := repo.ExistsForPeriod(ctx, employeeID.String(), "03-2025", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForPeriod(ctx, employeeID.String(), "03-2025", first.ID.String())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_UpdateKeepsImmutableColumns(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := payroll.NewRepository(db)
	ctx := context.Background()

	record := existingRecord()
	record.EmployeeID = seedEmployee(t, db, "plumber")
	require.NoError(t, repo.Create(ctx, record))

	record.Period = "01-2020"
	record.Overtime = dec("1")
	record.Bonus = dec("75")
	record.Net = record.ComputeNet()
	require.NoError(t, repo.Update(ctx, record))

	got, err := repo.FindByID(ctx, record.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "03-2025", got.Period)
	assert.True(t, got.Overtime.Equal(dec("107.14")))
	assert.True(t, got.Bonus.Equal(dec("75")))
	require.NotNil(t, got.Employee)
	assert.Equal(t, "plumber", got.Employee.Role)
}

func TestRepository_Delete(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := payroll.NewRepository(db)
	ctx := context.Background()

	record := existingRecord()
	record.EmployeeID = seedEmployee(t, db, "mason")
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.Delete(ctx, record.ID.String()))
	assert.ErrorIs(t, repo.Delete(ctx, record.ID.String()), gorm.ErrRecordNotFound)
}

func TestService_Create_TwiceForSamePeriod(t *testing.T) {
	db := setupRepoTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	employeeID := seedEmployee(t, db, "welder")

	d := newDeps(t)
	svc := payroll.NewService(payroll.Deps{
		DB:         sqlDB,
		Repo:       payroll.NewRepository(db),
		Profiles:   d.profiles,
		Calculator: d.calc,
		Resolver:   period.NewResolver(dubai),
		Now:        func() time.Time { return d.now },
	})

	var successes, conflicts int
	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), uuid.New().String(), createRequest(employeeID.String()))
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, payrollerrors.ErrPayrollConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	var count int64
	require.NoError(t, db.Model(&payroll.PayrollRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
