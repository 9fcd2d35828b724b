// Copyright 2023 The enoki-defi Authors
// This file is part of the enoki-defi library.
//
// The enoki-defi library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The enoki-defi library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the enoki-defi library. If not, see <http://www.gnu.org/licenses/>.

package mushroom

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	mushcontract "github.com/rootdraws/enoki-defi-v2/contracts/mushroom"
)

// DefaultMineTimeout bounds how long the chain adapters wait for a
// transaction receipt.
const DefaultMineTimeout = 5 * time.Minute

// ChainRegistry implements TokenRegistry against a deployed registry
// contract.  Mint blocks until the transaction is mined so the token ID can
// be recovered from the receipt; a failed or timed-out transaction surfaces
// as an error and aborts the factory's whole batch.
type ChainRegistry struct {
	registry *mushcontract.MushroomRegistry
	backend  bind.DeployBackend
	timeout  time.Duration
}

// NewChainRegistry wires the adapter to a registry wrapper and the backend
// used for receipt polling.  A zero timeout selects DefaultMineTimeout.
func NewChainRegistry(registry *mushcontract.MushroomRegistry, backend bind.DeployBackend, timeout time.Duration) *ChainRegistry {
	if timeout <= 0 {
		timeout = DefaultMineTimeout
	}
	return &ChainRegistry{registry: registry, backend: backend, timeout: timeout}
}

// Mint implements TokenRegistry.
func (r *ChainRegistry) Mint(recipient common.Address, species SpeciesID, lifespan uint64) (uint64, error) {
	tx, err := r.registry.Mint(recipient, new(big.Int).SetUint64(uint64(species)), new(big.Int).SetUint64(lifespan))
	if err != nil {
		return 0, err
	}
	receipt, err := r.waitMined(tx)
	if err != nil {
		return 0, err
	}
	id, err := r.registry.MintedTokenID(receipt)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// SpeciesAt implements TokenRegistry.
func (r *ChainRegistry) SpeciesAt(species SpeciesID) (Species, error) {
	min, max, err := r.registry.GetSpecies(new(big.Int).SetUint64(uint64(species)))
	if err != nil {
		return Species{}, err
	}
	return Species{MinLifespan: min.Uint64(), MaxLifespan: max.Uint64()}, nil
}

// RemainingMintableForSpecies implements TokenRegistry.
func (r *ChainRegistry) RemainingMintableForSpecies(species SpeciesID) (uint64, error) {
	remaining, err := r.registry.GetRemainingMintableForSpecies(new(big.Int).SetUint64(uint64(species)))
	if err != nil {
		return 0, err
	}
	return remaining.Uint64(), nil
}

func (r *ChainRegistry) waitMined(tx *types.Transaction) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	receipt, err := bind.WaitMined(ctx, r.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("mushroom: tx %s not mined: %v", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("mushroom: tx %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// ChainToken implements Token against a deployed ERC-20 contract, bound to
// the transactor account inside the wrapper.  Transfer waits for the receipt
// and maps its status onto the ERC-20 bool, so an on-chain revert shows up
// as a false result rather than silence.
type ChainToken struct {
	token   *mushcontract.SporeToken
	backend bind.DeployBackend
	timeout time.Duration
}

// NewChainToken wires the adapter to a token wrapper.  A zero timeout
// selects DefaultMineTimeout.
func NewChainToken(token *mushcontract.SporeToken, backend bind.DeployBackend, timeout time.Duration) *ChainToken {
	if timeout <= 0 {
		timeout = DefaultMineTimeout
	}
	return &ChainToken{token: token, backend: backend, timeout: timeout}
}

// Address implements Token.
func (t *ChainToken) Address() common.Address {
	return t.token.Address()
}

// BalanceOf implements Token.
func (t *ChainToken) BalanceOf(owner common.Address) (*big.Int, error) {
	return t.token.BalanceOf(owner)
}

// Transfer implements Token.
func (t *ChainToken) Transfer(to common.Address, amount *big.Int) (bool, error) {
	tx, err := t.token.Transfer(to, amount)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	receipt, err := bind.WaitMined(ctx, t.backend, tx)
	if err != nil {
		return false, fmt.Errorf("mushroom: tx %s not mined: %v", tx.Hash().Hex(), err)
	}
	return receipt.Status == types.ReceiptStatusSuccessful, nil
}
