package db

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusRunning  = "running"
	RunStatusFinished = "finished"
	RunStatusFailed   = "failed"
)

// ExportRun is one execution of the export pipeline.
type ExportRun struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartedAt  time.Time
	FinishedAt *time.Time
	FromDate   string
	ToDate     string
	Status     string
	Written    int
	Failures   int
}

type Address struct {
	ID      uint
	Address string `gorm:"uniqueIndex"`
}

// Entry is a stored CryptoTaxCalculator row. EntryHash identifies the row across runs.
type Entry struct {
	ID                     uint
	ExportRunID            uuid.UUID `gorm:"type:uuid;index"`
	ExportRun              ExportRun
	AddressID              uint
	Address                Address
	EntryHash              string    `gorm:"uniqueIndex"`
	Date                   time.Time `gorm:"index"`
	Type                   string
	BaseCurrency           string
	BaseAmount             string
	QuoteCurrency          string
	QuoteAmount            string
	FeeCurrency            string
	FeeAmount              string
	FromAddress            string
	ToAddress              string
	Blockchain             string
	EntryID                string
	Description            string
	ReferencePricePerUnit  string
	ReferencePriceCurrency string
}
