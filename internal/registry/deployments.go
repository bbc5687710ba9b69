// Package registry loads the static JSON registry of known pool contract
// deployments. The registry is the source of truth for which contracts a
// client should treat as official on each network.
package registry

import (
	"fmt"
	"strings"

	"github.com/shieldpool/subgraph-go/internal/adapter"
	"github.com/shieldpool/subgraph-go/internal/domain"
)

// DeploymentRegistry defines the interface for deployment lookups
type DeploymentRegistry interface {
	// IsTrusted checks if a contract address is a known deployment on a network
	IsTrusted(network domain.Network, contractAddress string) bool

	// IsTrustedPool checks if a composite pool ID belongs to a known deployment
	IsTrustedPool(poolID string) bool

	// LookupByContract returns deployment details for a contract, nil when unknown
	LookupByContract(network domain.Network, contractAddress string) *DeploymentInfo

	// MinBlock returns the deployment block hint for a network, if configured
	MinBlock(network domain.Network) (uint64, bool)
}

// DeploymentNetworkConfig represents network-specific addresses of a deployment
type DeploymentNetworkConfig struct {
	ContractAddresses []string `json:"contract_addresses"`
	Assets            []string `json:"assets,omitempty"`
}

// DeploymentInfo represents one deployment entry in the registry
type DeploymentInfo struct {
	Name     string                             `json:"name"`
	URL      string                             `json:"url,omitempty"`
	Networks map[string]DeploymentNetworkConfig `json:"networks"` // key is a network name like "ethereum" or "sepolia"
}

// DeploymentRegistryData represents the structure of the registry JSON file
type DeploymentRegistryData struct {
	Version     int               `json:"version"`
	MinBlocks   map[string]uint64 `json:"min_blocks,omitempty"` // Optional: deployment block per network
	Deployments []DeploymentInfo  `json:"deployments"`
}

// deploymentRegistry is the internal implementation of DeploymentRegistry
type deploymentRegistry struct {
	data *DeploymentRegistryData
	// Fast lookup map: "network:contract" -> deployment
	contractToDeployment map[string]*DeploymentInfo
}

// DeploymentRegistryLoader defines the interface for loading deployment
// registries from files
type DeploymentRegistryLoader interface {
	// Load loads the deployment registry from a JSON file
	Load(filePath string) (DeploymentRegistry, error)
}

// deploymentRegistryLoader is the internal implementation of DeploymentRegistryLoader
type deploymentRegistryLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewDeploymentRegistryLoader creates a new DeploymentRegistryLoader with
// injected dependencies
func NewDeploymentRegistryLoader(fs adapter.FileSystem, json adapter.JSON) DeploymentRegistryLoader {
	return &deploymentRegistryLoader{
		fs:   fs,
		json: json,
	}
}

// Load loads the deployment registry from a JSON file
func (l *deploymentRegistryLoader) Load(filePath string) (DeploymentRegistry, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var registryData DeploymentRegistryData
	if err := l.json.Unmarshal(data, &registryData); err != nil {
		return nil, fmt.Errorf("failed to parse registry JSON: %w", err)
	}

	reg := &deploymentRegistry{
		data:                 &registryData,
		contractToDeployment: make(map[string]*DeploymentInfo),
	}

	for i := range registryData.Deployments {
		deployment := &registryData.Deployments[i]
		for networkName, networkConfig := range deployment.Networks {
			normalizedNetwork := strings.ToLower(networkName)
			for _, addr := range networkConfig.ContractAddresses {
				key := fmt.Sprintf("%s:%s", normalizedNetwork, domain.NormalizeAddress(addr))
				reg.contractToDeployment[key] = deployment
			}
		}
	}

	return reg, nil
}

// IsTrusted checks if a contract address is a known deployment on a network
func (r *deploymentRegistry) IsTrusted(network domain.Network, contractAddress string) bool {
	return r.LookupByContract(network, contractAddress) != nil
}

// IsTrustedPool checks if a composite pool ID belongs to a known deployment.
// Malformed IDs are never trusted.
func (r *deploymentRegistry) IsTrustedPool(poolID string) bool {
	network, parts, err := domain.ParseCompositeID(poolID)
	if err != nil || len(parts) < 1 {
		return false
	}
	return r.IsTrusted(network, parts[0])
}

// LookupByContract returns deployment details for a contract, nil when unknown
func (r *deploymentRegistry) LookupByContract(network domain.Network, contractAddress string) *DeploymentInfo {
	if r == nil {
		return nil
	}
	key := fmt.Sprintf("%s:%s", strings.ToLower(string(network)), domain.NormalizeAddress(contractAddress))
	return r.contractToDeployment[key]
}

// MinBlock returns the deployment block hint for a network, if configured
func (r *deploymentRegistry) MinBlock(network domain.Network) (uint64, bool) {
	if r == nil || r.data == nil || r.data.MinBlocks == nil {
		return 0, false
	}
	block, ok := r.data.MinBlocks[strings.ToLower(string(network))]
	return block, ok
}
