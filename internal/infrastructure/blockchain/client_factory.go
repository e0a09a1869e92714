package blockchain

import (
	"fmt"
	"sync"
)

// ClientFactory creates and caches blockchain clients
type ClientFactory struct {
	evmClients map[string]*EVMClient
	mu         sync.RWMutex
}

// NewClientFactory creates a new client factory
func NewClientFactory() *ClientFactory {
	return &ClientFactory{
		evmClients: make(map[string]*EVMClient),
	}
}

// GetEVMClient gets or creates an EVM client for the given RPC URL
func (f *ClientFactory) GetEVMClient(rpcURL string) (*EVMClient, error) {
	f.mu.RLock()
	client, exists := f.evmClients[rpcURL]
	f.mu.RUnlock()

	if exists {
		return client, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if client, exists := f.evmClients[rpcURL]; exists {
		return client, nil
	}

	client, err := NewEVMClient(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", rpcURL, err)
	}

	f.evmClients[rpcURL] = client
	return client, nil
}

// RegisterEVMClient registers a pre-built client for an RPC URL. Tests use
// this to avoid dialing real endpoints.
func (f *ClientFactory) RegisterEVMClient(rpcURL string, client *EVMClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evmClients[rpcURL] = client
}

// Close closes all cached clients
func (f *ClientFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, client := range f.evmClients {
		client.Close()
	}
	f.evmClients = make(map[string]*EVMClient)
}
