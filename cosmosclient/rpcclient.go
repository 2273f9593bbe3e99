package cosmosclient

import "github.com/cometbft/cometbft/rpc/client/http"

// NewRpcClient can be used to query Block, Validators, and other data from the axelar node.
func NewRpcClient(address string) (*http.HTTP, error) {
	return http.New(address, "/websocket")
}
