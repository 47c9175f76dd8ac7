package thornode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/koitsu/thorchain-cryptotax/cache"
	"github.com/koitsu/thorchain-cryptotax/rest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusWithTx = `{"tx":{"id":"ABC","chain":"GAIA","from_address":"cosmos1user","to_address":"cosmos1vault","coins":[{"asset":"GAIA.KUJI","amount":"100000000","decimals":6}],"gas":[{"asset":"GAIA.ATOM","amount":"69600","decimals":6}],"memo":"switch:thor1user"}}`

func restClient(url string) *rest.Client {
	return rest.NewClient(url, rest.Options{RequestsPerSecond: 1000}, zerolog.Nop())
}

func TestGetTxStatus(t *testing.T) {
	var calls int32
	current := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/thorchain/tx/status/ABC", r.URL.Path)
		_, _ = w.Write([]byte(statusWithTx))
	}))
	defer current.Close()

	client := NewClient(restClient(current.URL), nil, cache.NewFileStore(t.TempDir()), zerolog.Nop())

	status, err := client.GetTxStatus(context.Background(), "ABC")
	require.NoError(t, err)
	require.NotNil(t, status.Tx)
	assert.Equal(t, "GAIA.ATOM", status.Tx.Gas[0].Asset)
	assert.EqualValues(t, 6, status.Tx.Coins[0].Decimals)

	_, err = client.GetTxStatus(context.Background(), "ABC")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGetTxStatusFallsBackToArchive(t *testing.T) {
	current := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"stages":{}}`))
	}))
	defer current.Close()

	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(statusWithTx))
	}))
	defer archive.Close()

	client := NewClient(restClient(current.URL), restClient(archive.URL), nil, zerolog.Nop())

	status, err := client.GetTxStatus(context.Background(), "ABC")
	require.NoError(t, err)
	require.NotNil(t, status.Tx)
	assert.Equal(t, "ABC", status.Tx.ID)
}

func TestGetTxStatusRequiresHash(t *testing.T) {
	client := NewClient(restClient("http://127.0.0.1:0"), nil, nil, zerolog.Nop())
	_, err := client.GetTxStatus(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoHash)
}
