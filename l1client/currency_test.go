package l1client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/constellationnetwork/metagraph-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewCurrencyL1ClientRequiresL1URL(t *testing.T) {
	_, err := NewCurrencyL1Client(NetworkConfig{})
	assert.ErrorIs(t, err, ErrL1URLRequired)

	_, err = NewCurrencyL1Client(NetworkConfig{DataL1URL: "http://localhost:8080"})
	assert.ErrorIs(t, err, ErrL1URLRequired, "a data l1 url does not satisfy the currency client")
}

func TestNewCurrencyL1ClientWithValidConfig(t *testing.T) {
	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: "http://localhost:9010"})
	assert.Nil(t, err)
	assert.NotNil(t, client)

	client, err = NewCurrencyL1Client(NetworkConfig{
		L1URL:   "http://localhost:9010",
		Timeout: 5 * time.Second,
	})
	assert.Nil(t, err)
	assert.NotNil(t, client)
}

func TestConfigWithBothURLsServesBothClients(t *testing.T) {
	config := NetworkConfig{
		L1URL:     "http://localhost:9010",
		DataL1URL: "http://localhost:8080",
	}

	currency, err := NewCurrencyL1Client(config)
	assert.Nil(t, err)
	assert.NotNil(t, currency)

	data, err := NewDataL1Client(config)
	assert.Nil(t, err)
	assert.NotNil(t, data)
}

func TestGetLastReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transactions/last-reference/DAG7Ghth1WhWK83SB3MtXnnHYZbCsmiRTwJrgaW1", r.URL.Path)
		_, _ = w.Write([]byte(`{"hash":"abc","ordinal":5}`))
	}))
	defer srv.Close()

	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: srv.URL})
	assert.Nil(t, err)

	ref, err := client.GetLastReference("DAG7Ghth1WhWK83SB3MtXnnHYZbCsmiRTwJrgaW1")
	assert.Nil(t, err)
	assert.Equal(t, "abc", ref.Hash)
	assert.Equal(t, uint64(5), ref.Ordinal)
}

func TestPostTransactionWireShape(t *testing.T) {
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"hash":"deadbeef"}`))
	}))
	defer srv.Close()

	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: srv.URL})
	assert.Nil(t, err)

	rsp, err := client.PostTransaction(&CurrencyTransaction{
		Value: TransactionValue{
			Source:      "DAG7Ghth1WhWK83SB3MtXnnHYZbCsmiRTwJrgaW1",
			Destination: "DAG0abcdefghijkmnopqrstuvwxyzABCDEFGHJKL",
			Amount:      100,
			Fee:         1,
			Parent:      TransactionReference{Hash: "abc", Ordinal: 5},
			Salt:        7,
		},
		Proofs: []SignatureProof{{ID: "aa", Signature: "bb"}},
	})
	assert.Nil(t, err)
	assert.Equal(t, "deadbeef", rsp.Hash)

	assert.Equal(t,
		`{"value":{"source":"DAG7Ghth1WhWK83SB3MtXnnHYZbCsmiRTwJrgaW1",`+
			`"destination":"DAG0abcdefghijkmnopqrstuvwxyzABCDEFGHJKL",`+
			`"amount":100,"fee":1,"parent":{"hash":"abc","ordinal":5},"salt":7},`+
			`"proofs":[{"id":"aa","signature":"bb"}]}`,
		gotBody)
}

func TestPostTransactionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid"}`))
	}))
	defer srv.Close()

	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: srv.URL})
	assert.Nil(t, err)

	_, err = client.PostTransaction(&CurrencyTransaction{})
	assert.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusBadRequest, netErr.StatusCode)
	assert.Equal(t, `{"error":"invalid"}`, netErr.Response)
}

func TestGetPendingTransactionFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/deadbeef", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"hash": "deadbeef",
			"status": "InProgress",
			"transaction": {
				"value": {
					"source": "DAG7Ghth1WhWK83SB3MtXnnHYZbCsmiRTwJrgaW1",
					"destination": "DAG0abcdefghijkmnopqrstuvwxyzABCDEFGHJKL",
					"amount": 100,
					"fee": 1,
					"parent": {"hash": "abc", "ordinal": 5},
					"salt": 7
				},
				"proofs": [{"id": "aa", "signature": "bb"}]
			}
		}`))
	}))
	defer srv.Close()

	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: srv.URL})
	assert.Nil(t, err)

	pending, err := client.GetPendingTransaction("deadbeef")
	assert.Nil(t, err)
	assert.NotNil(t, pending)
	assert.Equal(t, "deadbeef", pending.Hash)
	assert.Equal(t, StatusInProgress, pending.Status)
	assert.Equal(t, uint64(100), pending.Transaction.Value.Amount)
}

func TestGetPendingTransactionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: srv.URL})
	assert.Nil(t, err)

	pending, err := client.GetPendingTransaction("deadbeef")
	assert.Nil(t, err, "a 404 is absence, not an error")
	assert.Nil(t, pending)
}

func TestGetPendingTransactionOtherErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: srv.URL})
	assert.Nil(t, err)

	pending, err := client.GetPendingTransaction("deadbeef")
	assert.Error(t, err)
	assert.Nil(t, pending)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cluster/info", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"node1","state":"Ready"}]`))
	}))

	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: srv.URL})
	assert.Nil(t, err)
	assert.True(t, client.CheckHealth())

	srv.Close()
	assert.False(t, client.CheckHealth(), "connectivity failure is absorbed")

	errorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer errorSrv.Close()

	client, err = NewCurrencyL1Client(NetworkConfig{L1URL: errorSrv.URL})
	assert.Nil(t, err)
	assert.False(t, client.CheckHealth(), "bad status is absorbed")

	slowSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer slowSrv.Close()

	client, err = NewCurrencyL1Client(NetworkConfig{L1URL: slowSrv.URL})
	assert.Nil(t, err)
	assert.False(t, client.CheckHealth(&RequestOptions{Timeout: 50 * time.Millisecond}),
		"timeout is absorbed")
}
