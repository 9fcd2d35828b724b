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

// Package mushroom implements the spore-pool mint factory.  A Factory turns
// spore-pool grow requests into collectible mushroom tokens of one fixed
// species, delegating supply accounting and token issuance to an external
// registry collaborator.  All heavy state — ownership, per-species supply,
// lifespan storage — lives in the registry; this package only manages the
// grow workflow, the lifespan draw, and the owner/reentrancy gate around it.
package mushroom

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SpeciesID identifies one mushroom species in the registry.
type SpeciesID uint64

// Species is the registry's descriptor for a species, read once per grow
// batch.  Lifespans are drawn from the half-open range
// [MinLifespan, MaxLifespan).
type Species struct {
	MinLifespan uint64 `json:"min_lifespan"`
	MaxLifespan uint64 `json:"max_lifespan"`
}

// FactoryConfig carries the construction-time parameters of a Factory.
// Every field is fixed for the factory's lifetime.
type FactoryConfig struct {
	// Owner is the only identity allowed to invoke mutating entry points,
	// normally the spore pool.
	Owner common.Address

	// Species is the single species this factory may mint.
	Species SpeciesID

	// CostPerSpore is the per-mushroom price in the smallest spore-token
	// unit.  It is quoted to callers but not collected by the factory;
	// payment settles upstream in the spore pool.
	CostPerSpore *big.Int
}

// GrownEvent is emitted once per successful grow batch, after every unit has
// been minted.  TokenIDs preserves mint order and has exactly the requested
// length.
type GrownEvent struct {
	Recipient common.Address `json:"recipient"`
	TokenIDs  []uint64       `json:"token_ids"`
	Species   SpeciesID      `json:"species"`
}
