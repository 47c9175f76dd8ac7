package viewblock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/koitsu/thorchain-cryptotax/rest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTxs(n int) []Tx {
	txs := make([]Tx, n)
	for i := range txs {
		txs[i] = Tx{Hash: fmt.Sprintf("HASH%02d", i), Timestamp: 1609419600000, Types: []string{"send"}}
	}
	return txs
}

func pagedServer(t *testing.T, all []Tx, perPage, total int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/thorchain/addresses/thor1abc/txs", r.URL.Path)
		assert.Equal(t, "mainnet", r.URL.Query().Get("network"))
		assert.Equal(t, "secret", r.Header.Get("X-APIKEY"))
		assert.Equal(t, Origin, r.Header.Get("Origin"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		start := (page - 1) * perPage
		end := start + perPage
		if end > len(all) {
			end = len(all)
		}
		pages := (len(all) + perPage - 1) / perPage

		_ = json.NewEncoder(w).Encode(TxsPage{Docs: all[start:end], Pages: pages, Total: total, Limit: perPage})
	}))
}

func newTestClient(url string) *Client {
	restClient := rest.NewClient(url, rest.Options{RequestsPerSecond: 1000, Headers: Headers("secret")}, zerolog.Nop())
	return NewClient(restClient, nil, zerolog.Nop())
}

func TestGetAllTxs(t *testing.T) {
	server := pagedServer(t, mkTxs(55), 25, 55)
	defer server.Close()

	txs, err := newTestClient(server.URL).GetAllTxs(context.Background(), "thor1abc")
	require.NoError(t, err)
	assert.Len(t, txs, 55)
	assert.Equal(t, "HASH54", txs[54].Hash)
}

func TestGetAllTxsTotalMismatch(t *testing.T) {
	server := pagedServer(t, mkTxs(30), 25, 31)
	defer server.Close()

	_, err := newTestClient(server.URL).GetAllTxs(context.Background(), "thor1abc")
	assert.EqualError(t, err, "num results is 30 but total should be 31")
}

func TestGetAllTxsEmpty(t *testing.T) {
	server := pagedServer(t, nil, 25, 0)
	defer server.Close()

	txs, err := newTestClient(server.URL).GetAllTxs(context.Background(), "thor1abc")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTxHelpers(t *testing.T) {
	tx := Tx{
		Timestamp: 1609419600000,
		Types:     []string{"network", "send", "main"},
		Msgs: []Msg{
			{Type: "/types.MsgDeposit"},
			{Type: TypeMsgSend, FromAddress: "thor1a", ToAddress: "thor1b"},
		},
	}

	assert.Equal(t, "2020-12-31T13:00:00Z", tx.Time().Format("2006-01-02T15:04:05Z07:00"))
	assert.True(t, tx.HasType("send"))
	assert.False(t, tx.HasType("swap"))
	require.Len(t, tx.SendMsgs(), 1)
	assert.Equal(t, "thor1b", tx.SendMsgs()[0].ToAddress)
}
