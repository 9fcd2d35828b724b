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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SimulatedRegistry is an in-memory TokenRegistry for tests and the CLI's
// dry-run mode.  It keeps per-species caps and minted counts, supports the
// Snapshotter capability through an undo journal, and exposes a couple of
// extra reads the real registry contract also has.
type SimulatedRegistry struct {
	species map[SpeciesID]Species
	caps    map[SpeciesID]uint64
	minted  map[SpeciesID]uint64
	tokens  map[uint64]simMushroom
	nextID  uint64
	journal []uint64 // token IDs in mint order, popped on revert
}

type simMushroom struct {
	owner    common.Address
	species  SpeciesID
	lifespan uint64
}

// NewSimulatedRegistry returns an empty registry.  Register at least one
// species before minting.
func NewSimulatedRegistry() *SimulatedRegistry {
	return &SimulatedRegistry{
		species: make(map[SpeciesID]Species),
		caps:    make(map[SpeciesID]uint64),
		minted:  make(map[SpeciesID]uint64),
		tokens:  make(map[uint64]simMushroom),
		nextID:  1,
	}
}

// RegisterSpecies installs a species descriptor and its global supply cap.
// The descriptor is not validated here; the registry owns it and the factory
// defends against malformed ranges on its own.
func (r *SimulatedRegistry) RegisterSpecies(id SpeciesID, species Species, supplyCap uint64) {
	r.species[id] = species
	r.caps[id] = supplyCap
}

// Mint implements TokenRegistry.
func (r *SimulatedRegistry) Mint(recipient common.Address, species SpeciesID, lifespan uint64) (uint64, error) {
	if _, ok := r.species[species]; !ok {
		return 0, fmt.Errorf("mushroom: unknown species %d", species)
	}
	if r.minted[species] >= r.caps[species] {
		return 0, fmt.Errorf("mushroom: species %d supply exhausted", species)
	}
	id := r.nextID
	r.nextID++
	r.minted[species]++
	r.tokens[id] = simMushroom{owner: recipient, species: species, lifespan: lifespan}
	r.journal = append(r.journal, id)
	return id, nil
}

// SpeciesAt implements TokenRegistry.
func (r *SimulatedRegistry) SpeciesAt(species SpeciesID) (Species, error) {
	s, ok := r.species[species]
	if !ok {
		return Species{}, fmt.Errorf("mushroom: unknown species %d", species)
	}
	return s, nil
}

// RemainingMintableForSpecies implements TokenRegistry.
func (r *SimulatedRegistry) RemainingMintableForSpecies(species SpeciesID) (uint64, error) {
	if _, ok := r.species[species]; !ok {
		return 0, fmt.Errorf("mushroom: unknown species %d", species)
	}
	return r.caps[species] - r.minted[species], nil
}

// Snapshot implements Snapshotter.  The returned id is a journal position.
func (r *SimulatedRegistry) Snapshot() int {
	return len(r.journal)
}

// RevertToSnapshot undoes every mint recorded after the snapshot was taken,
// newest first, so token IDs are reissued in the same order afterwards.
func (r *SimulatedRegistry) RevertToSnapshot(id int) {
	if id < 0 || id > len(r.journal) {
		return
	}
	for i := len(r.journal) - 1; i >= id; i-- {
		tokenID := r.journal[i]
		tok := r.tokens[tokenID]
		r.minted[tok.species]--
		delete(r.tokens, tokenID)
		r.nextID = tokenID
	}
	r.journal = r.journal[:id]
}

// OwnerOf returns the recipient a token was minted to.
func (r *SimulatedRegistry) OwnerOf(tokenID uint64) (common.Address, error) {
	tok, ok := r.tokens[tokenID]
	if !ok {
		return common.Address{}, fmt.Errorf("mushroom: unknown token %d", tokenID)
	}
	return tok.owner, nil
}

// LifespanOf returns the lifespan a token was minted with.
func (r *SimulatedRegistry) LifespanOf(tokenID uint64) (uint64, error) {
	tok, ok := r.tokens[tokenID]
	if !ok {
		return 0, fmt.Errorf("mushroom: unknown token %d", tokenID)
	}
	return tok.lifespan, nil
}

// SimulatedToken is an in-memory ERC-20 shaped Token bound to a holder
// account, whose balance Transfer spends.
type SimulatedToken struct {
	addr     common.Address
	holder   common.Address
	balances map[common.Address]*big.Int
}

// NewSimulatedToken creates a token contract at addr whose transfers spend
// from holder.
func NewSimulatedToken(addr, holder common.Address) *SimulatedToken {
	return &SimulatedToken{
		addr:     addr,
		holder:   holder,
		balances: make(map[common.Address]*big.Int),
	}
}

// Fund credits an account out of thin air.
func (t *SimulatedToken) Fund(owner common.Address, amount *big.Int) {
	t.credit(owner, amount)
}

// Address implements Token.
func (t *SimulatedToken) Address() common.Address { return t.addr }

// BalanceOf implements Token.
func (t *SimulatedToken) BalanceOf(owner common.Address) (*big.Int, error) {
	if bal, ok := t.balances[owner]; ok {
		return new(big.Int).Set(bal), nil
	}
	return new(big.Int), nil
}

// Transfer implements Token, moving amount from the bound holder to the
// recipient.  An insufficient balance yields (false, nil), mimicking a
// non-reverting ERC-20.
func (t *SimulatedToken) Transfer(to common.Address, amount *big.Int) (bool, error) {
	if amount == nil || amount.Sign() < 0 {
		return false, fmt.Errorf("mushroom: invalid transfer amount")
	}
	bal, ok := t.balances[t.holder]
	if !ok || bal.Cmp(amount) < 0 {
		return false, nil
	}
	bal.Sub(bal, amount)
	t.credit(to, amount)
	return true, nil
}

func (t *SimulatedToken) credit(owner common.Address, amount *big.Int) {
	if bal, ok := t.balances[owner]; ok {
		bal.Add(bal, amount)
		return
	}
	t.balances[owner] = new(big.Int).Set(amount)
}

// SimulatedClock pins the block timestamp for deterministic draws.
type SimulatedClock struct {
	Now uint64
}

// Timestamp implements BlockClock.
func (c *SimulatedClock) Timestamp() uint64 { return c.Now }

// Advance moves the clock forward, the dry-run stand-in for a new block.
func (c *SimulatedClock) Advance(seconds uint64) { c.Now += seconds }
