// Package client serves stored export entries and wallet reports over HTTP.
package client

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/util"
)

// EntryStore returns the stored rows of a wallet, newest first.
type EntryStore interface {
	GetEntriesForAddress(address string) ([]cryptotaxcalculator.Row, error)
}

type server struct {
	store      EntryStore
	reportsDir string
}

func NewRouter(store EntryStore, reportsDir string) *gin.Engine {
	s := server{store: store, reportsDir: reportsDir}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())

	r.GET("/healthz", s.healthz)
	r.POST("/events.csv", s.getEntriesCSV)
	r.GET("/reports/:address", s.getReport)

	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type EntriesCSVRequest struct {
	Address   string  `json:"address"`
	StartDate *string `json:"startDate"` // can be null
	EndDate   *string `json:"endDate"`   // can be null
}

func (s server) getEntriesCSV(c *gin.Context) {
	var requestBody EntriesCSVRequest
	if err := c.BindJSON(&requestBody); err != nil {
		config.Log.Error("Error processing request body", err)
		return
	}

	if requestBody.Address == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Address is required"})
		return
	}

	dateRange, err := requestRange(requestBody)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	rows, err := s.store.GetEntriesForAddress(requestBody.Address)
	if err != nil {
		config.Log.Error("Error getting rows for address", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error getting rows for address"})
		return
	}

	var selected []cryptotaxcalculator.Row
	for _, row := range rows {
		if dateRange.Contains(row.Date) {
			selected = append(selected, row)
		}
	}

	if len(selected) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No transactions for given address"})
		return
	}

	cryptotaxcalculator.SortDesc(selected)

	buffer, err := csv.ToCsv(cryptotaxcalculator.ToCsvRows(selected), cryptotaxcalculator.GetHeaders())
	if err != nil {
		config.Log.Error("Error writing csv", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error writing csv"})
		return
	}

	c.Data(http.StatusOK, "text/csv", buffer.Bytes())
}

// requestRange turns the optional request dates into an inclusive day range.
func requestRange(request EntriesCSVRequest) (util.DateRange, error) {
	dateRange := util.DateRange{From: "0000-01-01", To: "9999-12-31"}

	if request.StartDate != nil && *request.StartDate != "" {
		if _, err := time.Parse(util.DateLayout, *request.StartDate); err != nil {
			return dateRange, errors.New("startDate must be YYYY-MM-DD")
		}
		dateRange.From = *request.StartDate
	}

	if request.EndDate != nil && *request.EndDate != "" {
		if _, err := time.Parse(util.DateLayout, *request.EndDate); err != nil {
			return dateRange, errors.New("endDate must be YYYY-MM-DD")
		}
		dateRange.To = *request.EndDate
	}

	return dateRange, nil
}

func (s server) getReport(c *gin.Context) {
	address := c.Param("address")
	if address == "" || strings.ContainsAny(address, `/\`) || strings.Contains(address, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address"})
		return
	}

	filename := filepath.Join(s.reportsDir, address+".html")
	if _, err := os.Stat(filename); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No report for given address"})
		return
	}

	c.File(filename)
}
