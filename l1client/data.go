package l1client

import (
	. "github.com/constellationnetwork/metagraph-go"
	"github.com/pkg/errors"
)

// DataL1Client talks to a Data L1 node (the endpoint a metagraph exposes
// for its own data schema).
//
// Example:
//
//	client, err := NewDataL1Client(NetworkConfig{DataL1URL: "http://localhost:8080"})
//	if err != nil {
//	    return err
//	}
//
//	feeInfo, err := client.EstimateFee(signedData)
//	result, err := client.PostData(signedData)
type DataL1Client struct {
	client *HttpClient
}

// NewDataL1Client fails with ErrDataL1URLRequired before any network
// activity when the config has no Data L1 endpoint.
func NewDataL1Client(config NetworkConfig) (client *DataL1Client, err error) {
	if config.DataL1URL == "" {
		err = errors.WithStack(ErrDataL1URLRequired)
		return
	}

	client = &DataL1Client{client: NewHttpClient(config.DataL1URL, config.Timeout)}
	return
}

// EstimateFee asks the node what a submission of the given envelope would
// cost. Metagraphs that charge for data expect this before PostData. The
// data argument must be a Signed envelope (constellation.Signed[T] with a
// value that marshals to a plain JSON mapping).
func (c *DataL1Client) EstimateFee(data any, opts ...*RequestOptions) (out *EstimateFeeResponse, err error) {
	out = &EstimateFeeResponse{}
	err = c.client.Post("/data/estimate-fee", data, out, first(opts))
	return
}

// PostData submits a Signed data envelope to the node.
func (c *DataL1Client) PostData(data any, opts ...*RequestOptions) (out *PostDataResponse, err error) {
	out = &PostDataResponse{}
	err = c.client.Post("/data", data, out, first(opts))
	return
}

// CheckHealth reports whether the node answers on /cluster/info, absorbing
// every failure into false. Same contract as the currency client.
func (c *DataL1Client) CheckHealth(opts ...*RequestOptions) bool {
	if err := c.client.Get("/cluster/info", nil, first(opts)); err != nil {
		Log().Debug().Msgf("data l1 health check failed: %v", err)
		return false
	}
	return true
}
