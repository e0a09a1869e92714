package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	domainerrors "prompthash.backend/internal/domain/errors"
)

// ContractCall describes a single state-changing contract invocation.
type ContractCall struct {
	Method string
	Args   []interface{}
	// Value is the native amount attached to the call, nil for nonpayable
	// methods.
	Value *big.Int
}

// TxHandle identifies a transaction that has been submitted but not yet
// confirmed.
type TxHandle struct {
	Hash string
}

// SigningSession is the single funnel for on-chain writes. Callers must not
// touch the database between SendTransaction and a successful
// AwaitConfirmation.
type SigningSession interface {
	Address() (string, error)
	SendTransaction(ctx context.Context, call ContractCall) (*TxHandle, error)
	AwaitConfirmation(ctx context.Context, handle *TxHandle) (*types.Receipt, error)
}

var performContractTransact = func(client *ethclient.Client, contractAddress string, parsedABI abi.ABI, auth *bind.TransactOpts, method string, args ...interface{}) (string, error) {
	contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsedABI, client, client, client)
	tx, err := contract.Transact(auth, method, args...)
	if err != nil {
		return "", err
	}
	return tx.Hash().Hex(), nil
}

// OperatorSession signs marketplace transactions with the operator key.
type OperatorSession struct {
	factory         *ClientFactory
	rpcURL          string
	contractAddress string
	privateKeyHex   string
	parsedABI       abi.ABI
	confirmInterval time.Duration
	confirmTimeout  time.Duration
}

func NewOperatorSession(
	factory *ClientFactory,
	rpcURL string,
	contractAddress string,
	privateKeyHex string,
	confirmInterval time.Duration,
	confirmTimeout time.Duration,
) *OperatorSession {
	return &OperatorSession{
		factory:         factory,
		rpcURL:          rpcURL,
		contractAddress: contractAddress,
		privateKeyHex:   privateKeyHex,
		parsedABI:       MarketplaceABI,
		confirmInterval: confirmInterval,
		confirmTimeout:  confirmTimeout,
	}
}

// Address returns the operator address derived from the configured key.
func (s *OperatorSession) Address() (string, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(s.privateKeyHex, "0x"))
	if err != nil {
		return "", domainerrors.BadRequest("invalid operator private key")
	}
	return strings.ToLower(crypto.PubkeyToAddress(privateKey.PublicKey).Hex()), nil
}

// SendTransaction submits a signed contract call and returns its hash without
// waiting for inclusion.
func (s *OperatorSession) SendTransaction(ctx context.Context, call ContractCall) (*TxHandle, error) {
	client, err := ethclient.DialContext(ctx, s.rpcURL)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(s.privateKeyHex, "0x"))
	if err != nil {
		return nil, domainerrors.BadRequest("invalid operator private key")
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	if chainID == nil {
		return nil, fmt.Errorf("chain id is nil")
	}
	auth, err := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
	if err != nil {
		return nil, err
	}
	auth.Context = ctx
	if call.Value != nil {
		auth.Value = call.Value
	}

	hash, err := performContractTransact(client, s.contractAddress, s.parsedABI, auth, call.Method, call.Args...)
	if err != nil {
		return nil, err
	}
	return &TxHandle{Hash: hash}, nil
}

// AwaitConfirmation polls for the transaction receipt until it lands, the
// timeout elapses, or the context is cancelled.
func (s *OperatorSession) AwaitConfirmation(ctx context.Context, handle *TxHandle) (*types.Receipt, error) {
	if handle == nil || handle.Hash == "" {
		return nil, domainerrors.BadRequest("missing transaction handle")
	}

	client, err := s.factory.GetEVMClient(s.rpcURL)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(s.confirmTimeout)
	ticker := time.NewTicker(s.confirmInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.GetTransactionReceipt(ctx, handle.Hash)
		if err == nil && receipt != nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("transaction %s reverted", handle.Hash)
			}
			return receipt, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for transaction %s", handle.Hash)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
