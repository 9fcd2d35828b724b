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
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TokenRegistry is the collaborator that owns all mushroom token state.  The
// factory consumes exactly these three operations and never assumes anything
// about the registry's storage layout.  Mint is the only mutating call.
type TokenRegistry interface {
	// Mint issues one mushroom of the given species and lifespan to the
	// recipient and returns the new token's identifier.
	Mint(recipient common.Address, species SpeciesID, lifespan uint64) (uint64, error)

	// SpeciesAt returns the lifespan descriptor for a species.
	SpeciesAt(species SpeciesID) (Species, error)

	// RemainingMintableForSpecies returns how many more tokens of the
	// species may still be minted under its global cap.
	RemainingMintableForSpecies(species SpeciesID) (uint64, error)
}

// Snapshotter is an optional registry capability.  Registries that can roll
// back expose the go-ethereum StateDB snapshot pair; the factory uses it to
// keep a partially failed grow batch from leaving any minted tokens behind.
type Snapshotter interface {
	Snapshot() int
	RevertToSnapshot(id int)
}

// Token is a fungible-token collaborator bound to the account whose balance
// it spends — for this factory, the pool account.  Transfer mirrors the
// ERC-20 surface: the bool result must be checked, and an ambiguous result
// counts as failure.
type Token interface {
	// Address returns the token contract's address, used to tell the
	// protected spore token apart from recoverable dust.
	Address() common.Address

	BalanceOf(owner common.Address) (*big.Int, error)
	Transfer(to common.Address, amount *big.Int) (bool, error)
}

// BlockClock supplies the block-timestamp half of the lifespan draw input.
// It exists as a seam so tests can pin the timestamp; production code uses
// the system clock, which plays the block timestamp's role off-chain.
type BlockClock interface {
	Timestamp() uint64
}

type systemClock struct{}

func (systemClock) Timestamp() uint64 { return uint64(time.Now().Unix()) }
