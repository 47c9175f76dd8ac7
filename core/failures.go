package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/koitsu/thorchain-cryptotax/events"
)

const failureTimeLayout = "2006-01-02_1504_05"

// FailureFilename is <yyyy-MM-dd_HHmm_ssSSS>.json of the event time.
func FailureFilename(date time.Time) string {
	date = date.UTC()
	return fmt.Sprintf("%s%03d.json", date.Format(failureTimeLayout), date.Nanosecond()/int(time.Millisecond))
}

// SaveFailure keeps a copy of an input that could not be mapped under
// <outputPath>/failures/<wallet>/<source>/, with the error message merged into the payload.
func SaveFailure(outputPath, walletAddress string, source events.Source, date time.Time, data any, failure error) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", err
	}

	message := "unknown error"
	if failure != nil {
		message = failure.Error()
	}
	payload["ERROR_MESSAGE"] = message

	content, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return "", err
	}

	dir := filepath.Join(outputPath, "failures", walletAddress, string(source))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := filepath.Join(dir, FailureFilename(date))
	return filename, os.WriteFile(filename, content, 0o644)
}
