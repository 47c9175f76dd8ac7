// Package report renders an HTML page per wallet listing every event and the rows derived from it.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/koitsu/thorchain-cryptotax/config"
	"github.com/koitsu/thorchain-cryptotax/csv/parsers/cryptotaxcalculator"
	"github.com/koitsu/thorchain-cryptotax/events"
	"github.com/koitsu/thorchain-cryptotax/midgard"
	"github.com/koitsu/thorchain-cryptotax/viewblock"
)

const (
	ViewblockTxURL = "https://viewblock.io/thorchain/tx/"
	MidgardTxURL   = "https://thorchain.net/tx/"

	dateLayout = "02/01/2006 03:04:05 PM"
)

var page = template.Must(template.New("report").Parse(`<html lang="en">
<head>
<title>Report</title>
<style>
body {
  font-family: sans-serif;
  font-size: small;
}

table, th, td {
  border-collapse: collapse;
  border: 1px solid black;
  font-size: small;
  padding: 4px;
}
</style>
</head>
<body>
<h1>{{.Address}}</h1>
{{range .Events}}
<h2>{{.Date}}</h2>
<p>{{.Index}} / {{$.Total}}</p>
<p>{{.Kind}}</p>
{{if .Link}}<p><a href="{{.Link}}" target="_blank">{{.LinkTitle}}</a></p>{{else}}<p>No txID from {{.Source}}</p>{{end}}
{{if .Raw}}<details><summary>{{.Source}}</summary><pre>{{.Raw}}</pre></details>{{end}}
{{if .Rows}}<details><summary>CTC</summary>
<table>
<tr><th>Wallet/Exchange</th>{{range $.Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</details>{{end}}
{{end}}
</body>
</html>
`))

type eventView struct {
	Date      string
	Index     int
	Kind      string
	Source    string
	Link      string
	LinkTitle string
	Raw       string
	Rows      [][]string
}

type pageView struct {
	Address string
	Total   int
	Headers []string
	Events  []eventView
}

// Generate writes <outputPath>/<address>.html for the events of wallet.
func Generate(all *events.TaxEvents, wallet config.Wallet, outputPath string) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, all.FilterByWallet(wallet), wallet); err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return "", err
	}

	filename := filepath.Join(outputPath, wallet.Address+".html")
	if err := os.WriteFile(filename, buf.Bytes(), 0o600); err != nil {
		return "", err
	}

	return filename, nil
}

// Render writes the report page for the given events.
func Render(w io.Writer, walletEvents []*events.TaxEvent, wallet config.Wallet) error {
	view := pageView{
		Address: wallet.Address,
		Total:   len(walletEvents),
		Headers: cryptotaxcalculator.GetHeaders(),
	}

	for i, event := range walletEvents {
		ev, err := toView(event)
		if err != nil {
			return err
		}
		ev.Index = i + 1
		view.Events = append(view.Events, ev)
	}

	return page.Execute(w, view)
}

func toView(event *events.TaxEvent) (eventView, error) {
	ev := eventView{Date: strings.ToUpper(event.Datetime.UTC().Format(dateLayout))}

	switch input := event.Input.(type) {
	case viewblock.Tx:
		ev.Source = "Viewblock"
		ev.Kind = strings.Join(input.Types, ", ")
		if input.Hash != "" {
			ev.Link, ev.LinkTitle = ViewblockTxURL+input.Hash, "Viewblock TX"
		}
	case midgard.Action:
		ev.Source = "Midgard"
		ev.Kind = input.Type
		if txID := input.FirstInTxID(); txID != "" {
			ev.Link, ev.LinkTitle = MidgardTxURL+txID, "Midgard TX"
		}
	case midgard.TcyDistributionItem:
		ev.Source = "TCY"
		ev.Kind = "tcy distribution"
	default:
		ev.Source = string(event.Source)
	}

	raw, err := json.MarshalIndent(event.Input, "", "    ")
	if err != nil {
		return ev, fmt.Errorf("error encoding %s event: %w", event.Source, err)
	}
	ev.Raw = string(raw)

	for _, row := range event.Output {
		ev.Rows = append(ev.Rows, append([]string{row.WalletExchange}, row.GetRowForCsv()...))
	}

	return ev, nil
}
