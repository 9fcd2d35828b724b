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

// TokenResolver maps a token contract address to a Token collaborator bound
// to the pool account.  The API uses it to resolve dust-collection targets.
type TokenResolver func(common.Address) (Token, error)

// API exposes the factory over JSON-RPC when registered with a node.
// Method namespace: "mushroom".
type API struct {
	factory *Factory
	tokens  TokenResolver
}

// NewAPI creates a JSON-RPC API backed by the given factory.  The resolver
// may be nil when dust collection is not exposed.
func NewAPI(factory *Factory, tokens TokenResolver) *API {
	return &API{factory: factory, tokens: tokens}
}

// GrowMushrooms handles "mushroom_growMushrooms" RPC calls.
func (api *API) GrowMushrooms(caller, recipient common.Address, quantity uint64) ([]uint64, error) {
	return api.factory.GrowMushrooms(caller, recipient, quantity)
}

// RemainingMintable handles "mushroom_remainingMintable" RPC calls.
func (api *API) RemainingMintable() (uint64, error) {
	return api.factory.RemainingMintable()
}

// FactorySpecies handles "mushroom_factorySpecies" RPC calls.
func (api *API) FactorySpecies() SpeciesID {
	return api.factory.FactorySpecies()
}

// SpawnCount handles "mushroom_spawnCount" RPC calls.
func (api *API) SpawnCount() uint64 {
	return api.factory.SpawnCount()
}

// QuoteGrow handles "mushroom_quoteGrow" RPC calls, returning the total
// spore cost as a decimal string.
func (api *API) QuoteGrow(quantity uint64) string {
	return api.factory.Costs().QuoteGrow(quantity).String()
}

// CollectDust handles "mushroom_collectDust" RPC calls.  The amount is a
// decimal string in the token's smallest unit.
func (api *API) CollectDust(caller, token common.Address, amount string) error {
	if api.tokens == nil {
		return fmt.Errorf("mushroom: dust collection not available over RPC")
	}
	amt, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fmt.Errorf("mushroom: invalid amount: %s", amount)
	}
	tok, err := api.tokens(token)
	if err != nil {
		return err
	}
	return api.factory.CollectDust(caller, tok, amt)
}
