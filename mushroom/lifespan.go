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
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

// lifespanSource draws pseudo-random lifespans from keccak256 over the block
// timestamp and a monotonic spawn counter.  This is deliberately NOT secure
// randomness: the timestamp is validator-influenceable and the counter is
// public, so anyone watching pending calls can predict the draw.  Lifespan
// is a cosmetic gameplay attribute, which makes that an acceptable trade.
//
// The counter advances once per draw so that units minted within the same
// batch (and therefore the same timestamp) receive independent draws.  It
// wraps on overflow; uniqueness of the hash input only matters within one
// block, so a wrap is harmless.
type lifespanSource struct {
	clock BlockClock
	count uint64
}

// next returns a lifespan in [min, max) and advances the spawn counter.
// The counter is untouched when the range is malformed.
func (s *lifespanSource) next(min, max uint64) (uint64, error) {
	if max <= min {
		return 0, &RangeError{Min: min, Max: max}
	}
	var seed [16]byte
	binary.BigEndian.PutUint64(seed[:8], s.clock.Timestamp())
	binary.BigEndian.PutUint64(seed[8:], s.count)
	s.count++

	// Reduce the full 256-bit digest modulo the span, matching the
	// uint256 arithmetic of the on-chain ancestor.
	digest := new(big.Int).SetBytes(crypto.Keccak256(seed[:]))
	span := new(big.Int).SetUint64(max - min)
	return min + digest.Mod(digest, span).Uint64(), nil
}
