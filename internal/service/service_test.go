package service

import (
	"fmt"
	"strings"
	"testing"

	"casetrack/internal/model"
	"casetrack/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Case{}, &model.Product{}, &model.LedgerEntry{},
		&model.HistoryRecord{}, &model.CaseCount{}, &model.User{},
	))

	nr := &model.Case{
		Code:      model.NewReceiptsCode,
		Name:      model.NewReceiptsName,
		IsVirtual: true,
		IsActive:  true,
	}
	nr.CreatedBy = "system"
	nr.UpdatedBy = "system"
	require.NoError(t, db.Create(nr).Error)

	return db
}

// fixture wires every service against a fresh in-memory database.
type fixture struct {
	db      *gorm.DB
	inv     InventoryService
	cases   CaseService
	history HistoryService
	counts  CountService
	reports ReportService
	auth    AuthService
	users   UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	caseRepo := repository.NewCaseRepo(db)
	productRepo := repository.NewProductRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	countRepo := repository.NewCountRepo(db)
	userRepo := repository.NewUserRepo(db)

	return &fixture{
		db:      db,
		inv:     NewInventoryService(caseRepo, productRepo, ledgerRepo, historyRepo, db, nil),
		cases:   NewCaseService(caseRepo, ledgerRepo, historyRepo, countRepo, db),
		history: NewHistoryService(historyRepo, caseRepo, db),
		counts:  NewCountService(countRepo, caseRepo, ledgerRepo),
		reports: NewReportService(caseRepo, historyRepo, countRepo),
		auth:    NewAuthService(userRepo),
		users:   NewUserService(userRepo, historyRepo, db),
	}
}

func (f *fixture) mustCreateCase(t *testing.T, code, name string) {
	t.Helper()
	_, err := f.cases.Create(code, name, "test-user-id", "tester")
	require.NoError(t, err)
}

func (f *fixture) mustReceive(t *testing.T, caseCode, upc string, qty int, itemType model.ItemType) {
	t.Helper()
	res, err := f.inv.Receive(ReceiveInput{
		CaseCode: caseCode,
		ItemType: itemType,
		Entries:  []ScanEntry{{UPC: upc, Qty: qty}},
	}, "test-user-id", "tester")
	require.NoError(t, err)
	require.Zero(t, res.Failed)
}

func (f *fixture) ledgerQty(t *testing.T, caseCode, upc string) int {
	t.Helper()
	var entry model.LedgerEntry
	err := f.db.Where("case_code = ? AND upc = ?", caseCode, upc).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return entry.Qty
}

func (f *fixture) historyCount(t *testing.T, action model.ActionType) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.HistoryRecord{}).
		Where("action = ?", action).Count(&n).Error)
	return n
}
