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

// Package contract contains the ABI constants for the mushroom registry and
// the spore ERC-20 token.  Once solc is available, regenerate with:
//   abigen --sol contract/registry.sol --pkg contract --out contract/registry_gen.go
package contract

// MushroomRegistryABI is the ABI of the registry contract the factory mints
// against.
const MushroomRegistryABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "_recipient", "type": "address"},
			{"name": "_species",   "type": "uint256"},
			{"name": "_lifespan",  "type": "uint256"}
		],
		"name": "mint",
		"outputs": [{"name": "tokenId", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_species", "type": "uint256"}],
		"name": "getSpecies",
		"outputs": [
			{"name": "minLifespan", "type": "uint256"},
			{"name": "maxLifespan", "type": "uint256"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_species", "type": "uint256"}],
		"name": "getRemainingMintableForSpecies",
		"outputs": [{"name": "remaining", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "recipient", "type": "address"},
			{"indexed": true,  "name": "species",   "type": "uint256"},
			{"indexed": false, "name": "tokenId",   "type": "uint256"},
			{"indexed": false, "name": "lifespan",  "type": "uint256"}
		],
		"name": "Minted",
		"type": "event"
	}
]`

// SporeTokenABI is the minimal ERC-20 surface the factory touches: balance
// reads and the checked transfer used by dust recovery.
const SporeTokenABI = `[
	{
		"constant": true,
		"inputs": [{"name": "_owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "balance", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_to",    "type": "address"},
			{"name": "_value", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "success", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "from",  "type": "address"},
			{"indexed": true,  "name": "to",    "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	}
]`
