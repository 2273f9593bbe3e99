package cosmosclient

import (
	"context"
	"fmt"

	rpcclient "github.com/cometbft/cometbft/rpc/client"
	"github.com/cometbft/cometbft/rpc/client/http"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"

	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

// QueryByKey queries a raw store value by key, e.g.:
// storeKey: "wasm",
// dataKey: contract-state prefix bytes
func QueryByKey(rpcClient *http.HTTP, storeKey string, dataKey []byte, blockHeight int64, withProof bool) (*coretypes.ResultABCIQuery, error) {
	logging.Debug("Querying store", logging.Queries, "storeKey", storeKey)

	path := fmt.Sprintf("store/%s/key", storeKey)

	return rpcClient.ABCIQueryWithOptions(context.Background(), path, dataKey, rpcclient.ABCIQueryOptions{Height: blockHeight, Prove: withProof})
}
