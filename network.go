package constellation

import "github.com/pkg/errors"

func init() {
	MainNetParams.Name = NetworkMainNet
	MainNetParams.L1URL = "https://l1-lb-mainnet.constellationnetwork.io"

	TestNetParams.Name = NetworkTestNet
	TestNetParams.L1URL = "https://l1-lb-testnet.constellationnetwork.io"

	IntegrationNetParams.Name = NetworkIntegrationNet
	IntegrationNetParams.L1URL = "https://l1-lb-integrationnet.constellationnetwork.io"
}

// NetworkParams names the well-known endpoints for a public network. Data
// L1 endpoints are metagraph-specific and therefore never preset.
type NetworkParams struct {
	Name  Network
	L1URL string
}

// Config returns a NetworkConfig pointing at the network's public
// Currency L1 load balancer.
func (p *NetworkParams) Config() NetworkConfig {
	return NetworkConfig{L1URL: p.L1URL}
}

var MainNetParams = NetworkParams{}
var TestNetParams = NetworkParams{}
var IntegrationNetParams = NetworkParams{}

const (
	NetworkMainNet        Network = "mainnet"
	NetworkTestNet        Network = "testnet"
	NetworkIntegrationNet Network = "integrationnet"
)

type Network string

func (n Network) Valid() bool {
	return n == NetworkMainNet || n == NetworkTestNet || n == NetworkIntegrationNet
}

func (n Network) Validate() (err error) {
	if !n.Valid() {
		err = errors.Errorf("invalid network: '%s'", n)
	}
	return
}

func (n Network) Params() (params *NetworkParams, err error) {
	if err = n.Validate(); err != nil {
		return
	}

	switch n {
	case NetworkMainNet:
		return &MainNetParams, nil
	case NetworkTestNet:
		return &TestNetParams, nil
	case NetworkIntegrationNet:
		return &IntegrationNetParams, nil
	}

	return
}
