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
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	testOwner     = common.HexToAddress("0x0000000000000000000000000000000000000001")
	testRecipient = common.HexToAddress("0x0000000000000000000000000000000000000002")
	testStranger  = common.HexToAddress("0x0000000000000000000000000000000000000003")
	testVault     = common.HexToAddress("0x0000000000000000000000000000000000000004")
	sporeAddr     = common.HexToAddress("0x0000000000000000000000000000000000000100")
	dustAddr      = common.HexToAddress("0x0000000000000000000000000000000000000200")
)

const testSpecies = SpeciesID(7)

// newTestFactory builds a factory over a simulated registry holding species
// 7 with lifespan range [10, 20) and a supply cap of 5.
func newTestFactory(t *testing.T) (*Factory, *SimulatedRegistry, *SimulatedToken) {
	t.Helper()
	registry := NewSimulatedRegistry()
	registry.RegisterSpecies(testSpecies, Species{MinLifespan: 10, MaxLifespan: 20}, 5)
	spore := NewSimulatedToken(sporeAddr, testVault)
	factory, err := NewFactory(FactoryConfig{
		Owner:        testOwner,
		Species:      testSpecies,
		CostPerSpore: big.NewInt(1),
	}, registry, spore, &SimulatedClock{Now: 1700000000})
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return factory, registry, spore
}

func TestNewFactoryValidation(t *testing.T) {
	registry := NewSimulatedRegistry()
	spore := NewSimulatedToken(sporeAddr, testVault)
	cfg := FactoryConfig{Owner: testOwner, Species: testSpecies}

	if _, err := NewFactory(cfg, nil, spore, nil); err != ErrNilRegistry {
		t.Errorf("nil registry: have %v, want %v", err, ErrNilRegistry)
	}
	if _, err := NewFactory(cfg, registry, nil, nil); err != ErrNilSporeToken {
		t.Errorf("nil spore token: have %v, want %v", err, ErrNilSporeToken)
	}
	cfg.CostPerSpore = big.NewInt(-1)
	if _, err := NewFactory(cfg, registry, spore, nil); err != ErrNegativeCost {
		t.Errorf("negative cost: have %v, want %v", err, ErrNegativeCost)
	}
}

func TestGrowMushrooms(t *testing.T) {
	factory, registry, _ := newTestFactory(t)

	ids, err := factory.GrowMushrooms(testOwner, testRecipient, 3)
	if err != nil {
		t.Fatalf("GrowMushrooms: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("token count: have %d, want 3", len(ids))
	}
	for i, id := range ids {
		owner, err := registry.OwnerOf(id)
		if err != nil {
			t.Fatalf("OwnerOf(%d): %v", id, err)
		}
		if owner != testRecipient {
			t.Errorf("token %d owner: have %s, want %s", id, owner.Hex(), testRecipient.Hex())
		}
		lifespan, err := registry.LifespanOf(id)
		if err != nil {
			t.Fatalf("LifespanOf(%d): %v", id, err)
		}
		if lifespan < 10 || lifespan >= 20 {
			t.Errorf("token %d (unit %d) lifespan %d outside [10, 20)", id, i, lifespan)
		}
	}
	if have := factory.SpawnCount(); have != 3 {
		t.Errorf("spawn count: have %d, want 3", have)
	}
	remaining, err := factory.RemainingMintable()
	if err != nil {
		t.Fatalf("RemainingMintable: %v", err)
	}
	if remaining != 2 {
		t.Errorf("remaining: have %d, want 2", remaining)
	}
}

func TestGrowMushroomsRejects(t *testing.T) {
	tests := []struct {
		name      string
		caller    common.Address
		recipient common.Address
		quantity  uint64
		want      error
	}{
		{"non-owner caller", testStranger, testRecipient, 1, ErrNotOwner},
		{"zero recipient", testOwner, common.Address{}, 1, ErrZeroRecipient},
		{"zero quantity", testOwner, testRecipient, 0, ErrZeroQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, _, _ := newTestFactory(t)
			_, err := factory.GrowMushrooms(tt.caller, tt.recipient, tt.quantity)
			if err != tt.want {
				t.Errorf("have %v, want %v", err, tt.want)
			}
			if have := factory.SpawnCount(); have != 0 {
				t.Errorf("spawn count moved: have %d, want 0", have)
			}
		})
	}
}

func TestGrowMushroomsSupplyExceeded(t *testing.T) {
	factory, _, _ := newTestFactory(t)

	_, err := factory.GrowMushrooms(testOwner, testRecipient, 6)
	var supplyErr *SupplyError
	if !errors.As(err, &supplyErr) {
		t.Fatalf("have %v, want *SupplyError", err)
	}
	if supplyErr.Requested != 6 || supplyErr.Remaining != 5 {
		t.Errorf("carried values: have (%d, %d), want (6, 5)", supplyErr.Requested, supplyErr.Remaining)
	}
	if have := factory.SpawnCount(); have != 0 {
		t.Errorf("spawn count moved: have %d, want 0", have)
	}
	remaining, _ := factory.RemainingMintable()
	if remaining != 5 {
		t.Errorf("registry mutated: remaining %d, want 5", remaining)
	}
}

func TestGrowMushroomsInvalidRange(t *testing.T) {
	factory, registry, _ := newTestFactory(t)
	registry.RegisterSpecies(testSpecies, Species{MinLifespan: 30, MaxLifespan: 30}, 5)

	_, err := factory.GrowMushrooms(testOwner, testRecipient, 1)
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("have %v, want *RangeError", err)
	}
	if rangeErr.Min != 30 || rangeErr.Max != 30 {
		t.Errorf("carried values: have (%d, %d), want (30, 30)", rangeErr.Min, rangeErr.Max)
	}
	if have := factory.SpawnCount(); have != 0 {
		t.Errorf("spawn count moved: have %d, want 0", have)
	}
	remaining, _ := factory.RemainingMintable()
	if remaining != 5 {
		t.Errorf("registry mutated: remaining %d, want 5", remaining)
	}
}

func TestGrowMushroomsEvent(t *testing.T) {
	factory, _, _ := newTestFactory(t)

	ch := make(chan GrownEvent, 1)
	sub := factory.SubscribeGrown(ch)
	defer sub.Unsubscribe()

	ids, err := factory.GrowMushrooms(testOwner, testRecipient, 2)
	if err != nil {
		t.Fatalf("GrowMushrooms: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Recipient != testRecipient {
			t.Errorf("event recipient: have %s, want %s", ev.Recipient.Hex(), testRecipient.Hex())
		}
		if ev.Species != testSpecies {
			t.Errorf("event species: have %d, want %d", ev.Species, testSpecies)
		}
		if len(ev.TokenIDs) != len(ids) {
			t.Fatalf("event token count: have %d, want %d", len(ev.TokenIDs), len(ids))
		}
		for i := range ids {
			if ev.TokenIDs[i] != ids[i] {
				t.Errorf("event token %d: have %d, want %d", i, ev.TokenIDs[i], ids[i])
			}
		}
	default:
		t.Fatal("no event delivered")
	}
}

// failingRegistry lets the first failAt-1 mints through and errors on the
// next one, to exercise the mid-batch revert path.
type failingRegistry struct {
	*SimulatedRegistry
	failAt int
	mints  int
}

func (r *failingRegistry) Mint(recipient common.Address, species SpeciesID, lifespan uint64) (uint64, error) {
	r.mints++
	if r.mints == r.failAt {
		return 0, errors.New("registry unavailable")
	}
	return r.SimulatedRegistry.Mint(recipient, species, lifespan)
}

func TestGrowMushroomsMidBatchRevert(t *testing.T) {
	inner := NewSimulatedRegistry()
	inner.RegisterSpecies(testSpecies, Species{MinLifespan: 10, MaxLifespan: 20}, 5)
	registry := &failingRegistry{SimulatedRegistry: inner, failAt: 3}
	spore := NewSimulatedToken(sporeAddr, testVault)

	factory, err := NewFactory(FactoryConfig{Owner: testOwner, Species: testSpecies}, registry, spore, &SimulatedClock{Now: 1700000000})
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}

	if _, err := factory.GrowMushrooms(testOwner, testRecipient, 4); err == nil {
		t.Fatal("expected mid-batch failure")
	}
	remaining, err := inner.RemainingMintableForSpecies(testSpecies)
	if err != nil {
		t.Fatalf("RemainingMintableForSpecies: %v", err)
	}
	if remaining != 5 {
		t.Errorf("partial mints survived revert: remaining %d, want 5", remaining)
	}
	if have := factory.SpawnCount(); have != 0 {
		t.Errorf("spawn count not restored: have %d, want 0", have)
	}
}

// reentrantRegistry calls back into the factory from inside Mint, the way a
// malicious collaborator would.
type reentrantRegistry struct {
	*SimulatedRegistry
	factory *Factory
	inner   error
}

func (r *reentrantRegistry) Mint(recipient common.Address, species SpeciesID, lifespan uint64) (uint64, error) {
	_, r.inner = r.factory.GrowMushrooms(testOwner, testRecipient, 1)
	if r.inner != nil {
		return 0, r.inner
	}
	return r.SimulatedRegistry.Mint(recipient, species, lifespan)
}

func TestGrowMushroomsReentrancy(t *testing.T) {
	inner := NewSimulatedRegistry()
	inner.RegisterSpecies(testSpecies, Species{MinLifespan: 10, MaxLifespan: 20}, 5)
	registry := &reentrantRegistry{SimulatedRegistry: inner}
	spore := NewSimulatedToken(sporeAddr, testVault)

	factory, err := NewFactory(FactoryConfig{Owner: testOwner, Species: testSpecies}, registry, spore, &SimulatedClock{Now: 1700000000})
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	registry.factory = factory

	if _, err := factory.GrowMushrooms(testOwner, testRecipient, 1); err == nil {
		t.Fatal("expected reentrant grow to fail")
	}
	if !errors.Is(registry.inner, ErrReentrantCall) {
		t.Errorf("inner call: have %v, want %v", registry.inner, ErrReentrantCall)
	}
	remaining, _ := inner.RemainingMintableForSpecies(testSpecies)
	if remaining != 5 {
		t.Errorf("registry mutated: remaining %d, want 5", remaining)
	}
}

func TestCollectDust(t *testing.T) {
	factory, _, _ := newTestFactory(t)

	dust := NewSimulatedToken(dustAddr, testVault)
	dust.Fund(testVault, big.NewInt(100))

	if err := factory.CollectDust(testOwner, dust, big.NewInt(100)); err != nil {
		t.Fatalf("CollectDust: %v", err)
	}
	ownerBal, _ := dust.BalanceOf(testOwner)
	if ownerBal.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("owner balance: have %s, want 100", ownerBal)
	}
	vaultBal, _ := dust.BalanceOf(testVault)
	if vaultBal.Sign() != 0 {
		t.Errorf("vault balance: have %s, want 0", vaultBal)
	}
}

func TestCollectDustRejects(t *testing.T) {
	factory, _, spore := newTestFactory(t)

	dust := NewSimulatedToken(dustAddr, testVault)
	dust.Fund(testVault, big.NewInt(10))

	if err := factory.CollectDust(testStranger, dust, big.NewInt(1)); err != ErrNotOwner {
		t.Errorf("non-owner: have %v, want %v", err, ErrNotOwner)
	}
	if err := factory.CollectDust(testOwner, nil, big.NewInt(1)); err != ErrNilDustToken {
		t.Errorf("nil token: have %v, want %v", err, ErrNilDustToken)
	}
	if err := factory.CollectDust(testOwner, spore, big.NewInt(1)); err != ErrProtectedToken {
		t.Errorf("spore token: have %v, want %v", err, ErrProtectedToken)
	}
	if err := factory.CollectDust(testOwner, dust, big.NewInt(999)); err != ErrTransferFailed {
		t.Errorf("insufficient balance: have %v, want %v", err, ErrTransferFailed)
	}
}
