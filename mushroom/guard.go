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
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
)

// guard wraps every mutating factory entry point with two orthogonal checks,
// both evaluated before any state change: the caller must equal the stored
// owner, and no guarded call may begin while another is in flight.  The
// in-flight flag is a compare-and-swap rather than a lock so a collaborator
// calling back into the factory fails fast with ErrReentrantCall instead of
// deadlocking.
type guard struct {
	owner   common.Address
	entered uint32
}

func (g *guard) enter(caller common.Address) error {
	if caller != g.owner {
		return ErrNotOwner
	}
	if !atomic.CompareAndSwapUint32(&g.entered, 0, 1) {
		return ErrReentrantCall
	}
	return nil
}

func (g *guard) exit() {
	atomic.StoreUint32(&g.entered, 0)
}
