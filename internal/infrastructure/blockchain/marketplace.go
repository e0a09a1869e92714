package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// MarketplaceABI covers the marketplace contract surface the backend uses.
var MarketplaceABI = mustParseABI(`[
	{"inputs":[{"internalType":"string","name":"image","type":"string"},{"internalType":"string","name":"title","type":"string"}],"name":"createPrompt","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"buyPrompt","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"},{"internalType":"uint256","name":"price","type":"uint256"}],"name":"listPromptForSale","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`)

// MarketplaceReader performs read-only calls against the marketplace contract.
type MarketplaceReader struct {
	factory         *ClientFactory
	rpcURL          string
	contractAddress string
}

func NewMarketplaceReader(factory *ClientFactory, rpcURL, contractAddress string) *MarketplaceReader {
	return &MarketplaceReader{
		factory:         factory,
		rpcURL:          rpcURL,
		contractAddress: contractAddress,
	}
}

// OwnerOf returns the current on-chain owner of a token as a lowercase hex
// address.
func (r *MarketplaceReader) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	client, err := r.factory.GetEVMClient(r.rpcURL)
	if err != nil {
		return "", err
	}
	owner, err := callTypedView[common.Address](ctx, client, r.contractAddress, MarketplaceABI, "ownerOf", big.NewInt(tokenID))
	if err != nil {
		return "", err
	}
	return strings.ToLower(owner.Hex()), nil
}

func callTypedView[T any](
	ctx context.Context,
	client *EVMClient,
	contractAddress string,
	parsedABI abi.ABI,
	method string,
	args ...interface{},
) (T, error) {
	var zero T

	data, err := parsedABI.Pack(method, args...)
	if err != nil {
		return zero, err
	}
	out, err := client.CallView(ctx, contractAddress, data)
	if err != nil {
		return zero, err
	}
	vals, err := parsedABI.Unpack(method, out)
	if err != nil || len(vals) == 0 {
		return zero, fmt.Errorf("failed to decode %s", method)
	}
	value, ok := vals[0].(T)
	if !ok {
		return zero, fmt.Errorf("invalid %s return type", method)
	}
	return value, nil
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
