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

// Package mushroom provides high-level Go bindings for the on-chain mushroom
// registry and the spore ERC-20 token.  The factory core consumes these
// through the adapters in the domain package; nothing here knows about grow
// semantics.
package mushroom

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/rootdraws/enoki-defi-v2/contracts/mushroom/contract"
)

// ErrNoMintedEvent is returned when a mint receipt carries no Minted log
// from the registry, which means the token ID cannot be recovered.
var ErrNoMintedEvent = errors.New("contracts: receipt has no Minted event")

// MushroomRegistry is a high-level wrapper around the deployed registry
// contract.
type MushroomRegistry struct {
	abi      abi.ABI
	address  common.Address
	contract *bind.BoundContract
	opts     *bind.TransactOpts
}

// NewMushroomRegistry connects to an already-deployed registry contract.
func NewMushroomRegistry(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*MushroomRegistry, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.MushroomRegistryABI))
	if err != nil {
		return nil, err
	}
	return &MushroomRegistry{
		abi:      parsed,
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
		opts:     opts,
	}, nil
}

// Address returns the registry contract's address.
func (r *MushroomRegistry) Address() common.Address {
	return r.address
}

// Mint submits a mint transaction for (recipient, species, lifespan).  The
// resulting token ID is only known once the transaction is mined; recover it
// from the receipt with MintedTokenID.
func (r *MushroomRegistry) Mint(recipient common.Address, species, lifespan *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(r.opts, "mint", recipient, species, lifespan)
}

// GetSpecies reads a species' lifespan bounds.
func (r *MushroomRegistry) GetSpecies(species *big.Int) (minLifespan, maxLifespan *big.Int, err error) {
	var out []interface{}
	err = r.contract.Call(&bind.CallOpts{}, &out, "getSpecies", species)
	if err != nil {
		return nil, nil, err
	}
	return out[0].(*big.Int), out[1].(*big.Int), nil
}

// GetRemainingMintableForSpecies reads a species' remaining supply.
func (r *MushroomRegistry) GetRemainingMintableForSpecies(species *big.Int) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{}, &out, "getRemainingMintableForSpecies", species)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// MintedTokenID extracts the token ID from the Minted event in a mined mint
// receipt.
func (r *MushroomRegistry) MintedTokenID(receipt *types.Receipt) (*big.Int, error) {
	minted := r.abi.Events["Minted"]
	for _, lg := range receipt.Logs {
		if lg.Address != r.address || len(lg.Topics) == 0 || lg.Topics[0] != minted.ID {
			continue
		}
		var ev struct {
			TokenId  *big.Int
			Lifespan *big.Int
		}
		if err := r.contract.UnpackLog(&ev, "Minted", *lg); err != nil {
			return nil, err
		}
		return ev.TokenId, nil
	}
	return nil, ErrNoMintedEvent
}

// SporeToken is a high-level wrapper around an ERC-20 token contract,
// restricted to the surface dust recovery needs.
type SporeToken struct {
	address  common.Address
	contract *bind.BoundContract
	opts     *bind.TransactOpts
}

// NewSporeToken connects to a deployed ERC-20 token contract.
func NewSporeToken(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*SporeToken, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.SporeTokenABI))
	if err != nil {
		return nil, err
	}
	return &SporeToken{
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
		opts:     opts,
	}, nil
}

// Address returns the token contract's address.
func (t *SporeToken) Address() common.Address {
	return t.address
}

// BalanceOf reads an account's token balance.
func (t *SporeToken) BalanceOf(owner common.Address) (*big.Int, error) {
	var out []interface{}
	err := t.contract.Call(&bind.CallOpts{}, &out, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Transfer submits a transfer from the bound transactor account.
func (t *SporeToken) Transfer(to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(t.opts, "transfer", to, amount)
}
