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
	"fmt"
)

// Errors returned by factory construction and entry points.  Every failure
// aborts the whole invocation; nothing is retried or partially applied.
var (
	ErrNilRegistry    = errors.New("mushroom: registry reference is nil")
	ErrNilSporeToken  = errors.New("mushroom: spore token reference is nil")
	ErrNilDustToken   = errors.New("mushroom: dust token reference is nil")
	ErrZeroRecipient  = errors.New("mushroom: recipient is the zero address")
	ErrZeroQuantity   = errors.New("mushroom: quantity must be greater than zero")
	ErrNotOwner       = errors.New("mushroom: caller is not the factory owner")
	ErrReentrantCall  = errors.New("mushroom: reentrant call")
	ErrProtectedToken = errors.New("mushroom: cannot collect the spore payment token")
	ErrTransferFailed = errors.New("mushroom: token transfer returned false")
)

// SupplyError reports a grow request that exceeds the species' remaining
// mintable supply.  Both values are carried for caller diagnostics.
type SupplyError struct {
	Requested uint64
	Remaining uint64
}

func (e *SupplyError) Error() string {
	return fmt.Sprintf("mushroom: species supply exceeded: requested %d, remaining %d", e.Requested, e.Remaining)
}

// RangeError reports a malformed species lifespan range (max not strictly
// greater than min).
type RangeError struct {
	Min uint64
	Max uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("mushroom: invalid lifespan range [%d, %d)", e.Min, e.Max)
}
