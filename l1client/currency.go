package l1client

import (
	"fmt"
	"net/http"

	. "github.com/constellationnetwork/metagraph-go"
	"github.com/pkg/errors"
)

// CurrencyL1Client talks to a Currency L1 node.
//
// Example:
//
//	client, err := NewCurrencyL1Client(NetworkConfig{L1URL: "http://localhost:9010"})
//	if err != nil {
//	    return err
//	}
//
//	lastRef, err := client.GetLastReference("DAG...")
//	result, err := client.PostTransaction(signedTx)
//	pending, err := client.GetPendingTransaction(result.Hash)
type CurrencyL1Client struct {
	client *HttpClient
}

// NewCurrencyL1Client fails with ErrL1URLRequired before any network
// activity when the config has no Currency L1 endpoint.
func NewCurrencyL1Client(config NetworkConfig) (client *CurrencyL1Client, err error) {
	if config.L1URL == "" {
		err = errors.WithStack(ErrL1URLRequired)
		return
	}

	client = &CurrencyL1Client{client: NewHttpClient(config.L1URL, config.Timeout)}
	return
}

// GetLastReference returns the last accepted transaction reference for an
// address, the parent link a new transaction chains from.
func (c *CurrencyL1Client) GetLastReference(address string, opts ...*RequestOptions) (out *TransactionReference, err error) {
	out = &TransactionReference{}
	err = c.client.Get(fmt.Sprintf("/transactions/last-reference/%s", address), out, first(opts))
	return
}

// PostTransaction submits a signed currency transaction.
func (c *CurrencyL1Client) PostTransaction(transaction *CurrencyTransaction, opts ...*RequestOptions) (out *PostTransactionResponse, err error) {
	out = &PostTransactionResponse{}
	err = c.client.Post("/transactions", transaction, out, first(opts))
	return
}

// GetPendingTransaction polls a submitted transaction by hash. Absence is
// not an error: a 404 from the node means the transaction was already
// finalized and evicted (or never existed) and yields (nil, nil).
func (c *CurrencyL1Client) GetPendingTransaction(hash string, opts ...*RequestOptions) (out *PendingTransaction, err error) {
	out = &PendingTransaction{}
	err = c.client.Get(fmt.Sprintf("/transactions/%s", hash), out, first(opts))
	if err != nil {
		out = nil

		var netErr *NetworkError
		if errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound {
			err = nil
		}
	}
	return
}

// CheckHealth reports whether the node answers on /cluster/info. It never
// returns an error; failures of any kind are absorbed into false (and
// logged at debug level).
func (c *CurrencyL1Client) CheckHealth(opts ...*RequestOptions) bool {
	if err := c.client.Get("/cluster/info", nil, first(opts)); err != nil {
		Log().Debug().Msgf("currency l1 health check failed: %v", err)
		return false
	}
	return true
}
