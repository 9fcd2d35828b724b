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
)

// DefaultCostPerSpore is 0.1 SPORE expressed in the token's smallest unit
// (18 decimals).
var DefaultCostPerSpore = new(big.Int).Exp(big.NewInt(10), big.NewInt(17), nil)

// ErrNegativeCost rejects a negative per-mushroom cost at construction.
var ErrNegativeCost = errors.New("mushroom: cost per spore cannot be negative")

// CostSchedule holds the factory's per-mushroom price in spore tokens.  The
// factory quotes it but never collects it; settlement happens upstream in
// the spore pool before the grow call is made.
type CostSchedule struct {
	CostPerSpore *big.Int
}

// NewCostSchedule validates and copies the per-mushroom cost.  A nil cost
// selects DefaultCostPerSpore.
func NewCostSchedule(cost *big.Int) (*CostSchedule, error) {
	if cost == nil {
		cost = DefaultCostPerSpore
	}
	if cost.Sign() < 0 {
		return nil, ErrNegativeCost
	}
	return &CostSchedule{CostPerSpore: new(big.Int).Set(cost)}, nil
}

// QuoteGrow returns the total spore cost of growing quantity mushrooms.
func (cs *CostSchedule) QuoteGrow(quantity uint64) *big.Int {
	total := new(big.Int).SetUint64(quantity)
	return total.Mul(total, cs.CostPerSpore)
}
