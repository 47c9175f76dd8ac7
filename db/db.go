package db

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const batchSize = 1000

// PostgresDbConnect connects to the database according to the passed in parameters
func PostgresDbConnect(host string, port string, database string, user string, password string, level string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable", host, port, database, user, password)
	gormLogLevel := logger.Silent

	if level == "info" {
		gormLogLevel = logger.Info
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel)})
}

// Connect opens the configured database and migrates the models.
func Connect(conf config.Database) (*gorm.DB, error) {
	db, err := PostgresDbConnect(conf.Host, conf.Port, conf.Database, conf.User, conf.Password, conf.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("could not establish connection to the database: %w", err)
	}

	if err := MigrateModels(db); err != nil {
		return nil, fmt.Errorf("error running DB migrations: %w", err)
	}

	return db, nil
}

// MigrateModels runs the gorm automigrations with all the db models. This will migrate as needed and do nothing if nothing has changed.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&ExportRun{},
		&Address{},
		&Entry{},
	)
}

func NewExportRun(fromDate, toDate string, now time.Time) ExportRun {
	return ExportRun{
		ID:        uuid.New(),
		StartedAt: now.UTC(),
		FromDate:  fromDate,
		ToDate:    toDate,
		Status:    RunStatusRunning,
	}
}

func GetAddresses(addressList []string, db *gorm.DB) ([]Address, error) {
	var addresses []Address
	result := db.Where("address IN ?", addressList).Find(&addresses)
	if result.Error != nil {
		config.Log.Error("Error searching DB for addresses.", result.Error)
	}
	return addresses, result.Error
}

// SaveExportRun stores the run and its rows. Rows already stored by an earlier run are left untouched.
func SaveExportRun(db *gorm.DB, run ExportRun, rows []cryptotaxcalculator.Row) error {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, EntryFromRow(row))
	}

	// sort by hash
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryHash < entries[j].EntryHash
	})

	return db.Transaction(func(dbTransaction *gorm.DB) error {
		if err := dbTransaction.Save(&run).Error; err != nil {
			return err
		}

		addresses := map[string]Address{}

		for i := range entries {
			wallet := entries[i].Address.Address
			address, ok := addresses[wallet]
			if !ok {
				address = Address{Address: wallet}
				if err := dbTransaction.Where(&address).FirstOrCreate(&address).Error; err != nil {
					return err
				}
				addresses[wallet] = address
			}
			entries[i].Address = address
			entries[i].AddressID = address.ID
			entries[i].ExportRunID = run.ID
		}

		for i := 0; i < len(entries); i += batchSize {
			batchEnd := i + batchSize
			if batchEnd > len(entries) {
				batchEnd = len(entries)
			}

			if err := dbTransaction.Omit("ExportRun", "Address").Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "entry_hash"}},
				DoNothing: true,
			}).Create(entries[i:batchEnd]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FinishExportRun records the outcome of a run.
func FinishExportRun(db *gorm.DB, run *ExportRun, written, failures int, runErr error, now time.Time) error {
	finished := now.UTC()
	run.FinishedAt = &finished
	run.Written = written
	run.Failures = failures
	run.Status = RunStatusFinished
	if runErr != nil {
		run.Status = RunStatusFailed
	}
	return db.Save(run).Error
}

func GetLatestExportRun(db *gorm.DB) (ExportRun, error) {
	var run ExportRun
	err := db.Order("started_at desc").First(&run).Error
	return run, err
}

// GetEntriesForAddress returns every stored row of the wallet, newest first.
func GetEntriesForAddress(db *gorm.DB, address string) ([]cryptotaxcalculator.Row, error) {
	var entries []Entry

	result := db.Joins("Address").
		Where("LOWER(\"Address\".\"address\") = ?", strings.ToLower(address)).
		Order("date desc").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	rows := make([]cryptotaxcalculator.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entry.Row())
	}
	return rows, nil
}

func EntryFromRow(row cryptotaxcalculator.Row) Entry {
	return Entry{
		Address:                Address{Address: row.WalletExchange},
		EntryHash:              EntryHash(row),
		Date:                   row.Date.UTC(),
		Type:                   row.Type.String(),
		BaseCurrency:           row.BaseCurrency,
		BaseAmount:             row.BaseAmount,
		QuoteCurrency:          row.QuoteCurrency,
		QuoteAmount:            row.QuoteAmount,
		FeeCurrency:            row.FeeCurrency,
		FeeAmount:              row.FeeAmount,
		FromAddress:            row.From,
		ToAddress:              row.To,
		Blockchain:             row.Blockchain,
		EntryID:                row.ID,
		Description:            row.Description,
		ReferencePricePerUnit:  row.ReferencePricePerUnit,
		ReferencePriceCurrency: row.ReferencePriceCurrency,
	}
}

func (e Entry) Row() cryptotaxcalculator.Row {
	return cryptotaxcalculator.Row{
		WalletExchange:         e.Address.Address,
		Date:                   e.Date.UTC(),
		Type:                   cryptotaxcalculator.Type(e.Type),
		BaseCurrency:           e.BaseCurrency,
		BaseAmount:             e.BaseAmount,
		QuoteCurrency:          e.QuoteCurrency,
		QuoteAmount:            e.QuoteAmount,
		FeeCurrency:            e.FeeCurrency,
		FeeAmount:              e.FeeAmount,
		From:                   e.FromAddress,
		To:                     e.ToAddress,
		Blockchain:             e.Blockchain,
		ID:                     e.EntryID,
		Description:            e.Description,
		ReferencePricePerUnit:  e.ReferencePricePerUnit,
		ReferencePriceCurrency: e.ReferencePriceCurrency,
	}
}

// EntryHash identifies a row by wallet, time and content. Ids are excluded since the CSV writer rewrites them.
func EntryHash(row cryptotaxcalculator.Row) string {
	hash := sha256.New()
	hash.Write([]byte(fmt.Sprint(
		row.WalletExchange, row.Date.UTC().UnixMilli(), row.Type,
		row.BaseCurrency, row.BaseAmount, row.QuoteCurrency, row.QuoteAmount,
		row.FeeCurrency, row.FeeAmount, row.From, row.To, row.Description,
	)))
	return fmt.Sprintf("%x", hash.Sum(nil))
}

// Store serves stored rows to the API.
type Store struct {
	DB *gorm.DB
}

func (s Store) GetEntriesForAddress(address string) ([]cryptotaxcalculator.Row, error) {
	return GetEntriesForAddress(s.DB, address)
}

// Recorder stores each finished export run with its rows.
type Recorder struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (r Recorder) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r Recorder) Record(conf config.TaxConfig, rows []cryptotaxcalculator.Row, written, failures int, runErr error) error {
	run := NewExportRun(conf.FromDate, conf.ToDate, r.now())

	if runErr == nil {
		if err := SaveExportRun(r.DB, run, rows); err != nil {
			return err
		}
	}

	return FinishExportRun(r.DB, &run, written, failures, runErr, r.now())
}
