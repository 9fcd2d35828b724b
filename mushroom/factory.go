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
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
)

// Factory is the mint factory for one mushroom species:
//  1. Validate a grow request from the spore pool
//  2. Check the species' remaining supply against the registry
//  3. Draw a pseudo-random lifespan per unit
//  4. Delegate each mint to the registry, collecting token IDs
//  5. Emit one GrownEvent for the whole batch
//
// The Factory holds no token state of its own; the spawn counter is its only
// mutable field, and that is written exclusively on the guarded grow path.
type Factory struct {
	registry TokenRegistry
	spore    Token
	species  SpeciesID
	costs    *CostSchedule
	guard    guard
	spawn    lifespanSource

	feed  event.Feed
	scope event.SubscriptionScope
}

// NewFactory wires a factory to its registry and spore-token collaborators.
// Both references must be non-nil; every configuration value is fixed for
// the factory's lifetime.  A nil clock selects the system clock.
func NewFactory(cfg FactoryConfig, registry TokenRegistry, spore Token, clock BlockClock) (*Factory, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if spore == nil {
		return nil, ErrNilSporeToken
	}
	costs, err := NewCostSchedule(cfg.CostPerSpore)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Factory{
		registry: registry,
		spore:    spore,
		species:  cfg.Species,
		costs:    costs,
		guard:    guard{owner: cfg.Owner},
		spawn:    lifespanSource{clock: clock},
	}, nil
}

// ──────────────────────────────────────────────
//  Growing
// ──────────────────────────────────────────────

// GrowMushrooms mints quantity mushrooms of the factory's species to
// recipient and returns the new token IDs in mint order.  Owner-only and
// reentrancy-guarded.  The batch is all-or-nothing: any failure reverts the
// registry (when it can snapshot) and the spawn counter, so callers never
// observe a partial grow.
func (f *Factory) GrowMushrooms(caller, recipient common.Address, quantity uint64) ([]uint64, error) {
	if err := f.guard.enter(caller); err != nil {
		return nil, err
	}
	defer f.guard.exit()

	if recipient == (common.Address{}) {
		return nil, ErrZeroRecipient
	}
	if quantity == 0 {
		return nil, ErrZeroQuantity
	}

	remaining, err := f.registry.RemainingMintableForSpecies(f.species)
	if err != nil {
		return nil, fmt.Errorf("mushroom: supply query failed: %v", err)
	}
	if quantity > remaining {
		return nil, &SupplyError{Requested: quantity, Remaining: remaining}
	}

	// One descriptor fetch per batch, not per unit.
	species, err := f.registry.SpeciesAt(f.species)
	if err != nil {
		return nil, fmt.Errorf("mushroom: species lookup failed: %v", err)
	}

	revert := f.begin()
	ids := make([]uint64, quantity)
	for i := uint64(0); i < quantity; i++ {
		lifespan, err := f.spawn.next(species.MinLifespan, species.MaxLifespan)
		if err != nil {
			revert()
			return nil, err
		}
		id, err := f.registry.Mint(recipient, f.species, lifespan)
		if err != nil {
			revert()
			return nil, fmt.Errorf("mushroom: mint %d of %d failed: %v", i+1, quantity, err)
		}
		ids[i] = id
	}

	f.feed.Send(GrownEvent{Recipient: recipient, TokenIDs: ids, Species: f.species})
	log.Info("Mushrooms grown", "recipient", recipient, "quantity", quantity, "species", f.species, "remaining", remaining-quantity)
	return ids, nil
}

// begin captures the state a failed batch must restore: the registry
// snapshot (when supported) and the spawn counter.
func (f *Factory) begin() (revert func()) {
	count := f.spawn.count
	if snap, ok := f.registry.(Snapshotter); ok {
		id := snap.Snapshot()
		return func() {
			snap.RevertToSnapshot(id)
			f.spawn.count = count
		}
	}
	return func() { f.spawn.count = count }
}

// ──────────────────────────────────────────────
//  Dust recovery
// ──────────────────────────────────────────────

// CollectDust sweeps amount of an unrelated token from the pool account to
// the owner.  The spore payment token is protected and can never be swept.
// The transfer result is verified: an error or a false return fails the
// whole call.
func (f *Factory) CollectDust(caller common.Address, token Token, amount *big.Int) error {
	if err := f.guard.enter(caller); err != nil {
		return err
	}
	defer f.guard.exit()

	if token == nil {
		return ErrNilDustToken
	}
	if token.Address() == f.spore.Address() {
		return ErrProtectedToken
	}
	ok, err := token.Transfer(f.guard.owner, amount)
	if err != nil {
		return fmt.Errorf("mushroom: dust transfer failed: %v", err)
	}
	if !ok {
		return ErrTransferFailed
	}
	log.Info("Dust collected", "token", token.Address(), "amount", amount, "owner", f.guard.owner)
	return nil
}

// ──────────────────────────────────────────────
//  Reads
// ──────────────────────────────────────────────

// RemainingMintable returns the registry's current remaining supply for the
// factory's species.  Public and uncached: every call reflects the
// registry's live view.
func (f *Factory) RemainingMintable() (uint64, error) {
	return f.registry.RemainingMintableForSpecies(f.species)
}

// FactorySpecies returns the species this factory is bound to.
func (f *Factory) FactorySpecies() SpeciesID {
	return f.species
}

// SpawnCount returns how many lifespans have been drawn so far.
func (f *Factory) SpawnCount() uint64 {
	return f.spawn.count
}

// Owner returns the configured owner identity.
func (f *Factory) Owner() common.Address {
	return f.guard.owner
}

// Costs returns the factory's cost schedule.
func (f *Factory) Costs() *CostSchedule {
	return f.costs
}

// SubscribeGrown delivers one GrownEvent per successful grow batch to ch.
func (f *Factory) SubscribeGrown(ch chan<- GrownEvent) event.Subscription {
	return f.scope.Track(f.feed.Subscribe(ch))
}

// Close terminates all grown-event subscriptions.
func (f *Factory) Close() {
	f.scope.Close()
}
