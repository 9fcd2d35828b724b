// Copyright 2023 The enoki-defi Authors
// This file is part of enoki-defi.
//
// enoki-defi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// enoki-defi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with enoki-defi. If not, see <http://www.gnu.org/licenses/>.

// sporepool drives a mushroom mint factory from the command line.
//
// It connects to an Ethereum node, wires the factory to the deployed
// registry and spore-token contracts, and exposes grow, info, and
// dust-collection commands.  With --simulate everything runs against an
// in-memory registry instead of a node.
//
// Usage:
//   sporepool [--rpc <endpoint> --registry <address> --sporetoken <address> --keyfile <path>] <command>
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"

	mushcontract "github.com/rootdraws/enoki-defi-v2/contracts/mushroom"
	"github.com/rootdraws/enoki-defi-v2/mushroom"
)

var (
	app = cli.NewApp()

	// Flags
	rpcFlag = cli.StringFlag{
		Name:  "rpc",
		Usage: "Ethereum JSON-RPC endpoint (e.g. http://localhost:8545)",
		Value: "http://localhost:8545",
	}
	registryFlag = cli.StringFlag{
		Name:  "registry",
		Usage: "Deployed mushroom registry contract address",
	}
	sporeTokenFlag = cli.StringFlag{
		Name:  "sporetoken",
		Usage: "Deployed spore ERC-20 token address",
	}
	keyfileFlag = cli.StringFlag{
		Name:  "keyfile",
		Usage: "Path to the JSON keyfile for the pool wallet",
	}
	passwordFlag = cli.StringFlag{
		Name:  "password",
		Usage: "Passphrase unlocking the keyfile",
	}
	speciesFlag = cli.Uint64Flag{
		Name:  "species",
		Usage: "Species identifier this factory mints",
	}
	costFlag = cli.StringFlag{
		Name:  "cost",
		Usage: "Per-mushroom cost in the smallest spore unit (default: 0.1 SPORE)",
	}
	simulateFlag = cli.BoolFlag{
		Name:  "simulate",
		Usage: "Run against an in-memory registry instead of a node",
	}
	minLifespanFlag = cli.Uint64Flag{
		Name:  "minlifespan",
		Usage: "Species minimum lifespan for --simulate runs",
		Value: 86400,
	}
	maxLifespanFlag = cli.Uint64Flag{
		Name:  "maxlifespan",
		Usage: "Species maximum lifespan for --simulate runs",
		Value: 2592000,
	}
	capFlag = cli.Uint64Flag{
		Name:  "cap",
		Usage: "Species supply cap for --simulate runs",
		Value: 100,
	}
	recipientFlag = cli.StringFlag{
		Name:  "recipient",
		Usage: "Address receiving the grown mushrooms",
	}
	quantityFlag = cli.Uint64Flag{
		Name:  "quantity",
		Usage: "Number of mushrooms to grow",
		Value: 1,
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "Dust token contract address",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "Dust amount in the token's smallest unit",
	}
)

func init() {
	app.Name = "sporepool"
	app.Usage = "Mushroom mint factory driver"
	app.Version = "0.2.0"
	app.Flags = []cli.Flag{
		rpcFlag,
		registryFlag,
		sporeTokenFlag,
		keyfileFlag,
		passwordFlag,
		speciesFlag,
		costFlag,
		simulateFlag,
		minLifespanFlag,
		maxLifespanFlag,
		capFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:   "grow",
			Usage:  "Grow mushrooms to a recipient",
			Action: growCmd,
			Flags:  []cli.Flag{recipientFlag, quantityFlag},
		},
		{
			Name:   "info",
			Usage:  "Print species, supply, and cost information",
			Action: infoCmd,
		},
		{
			Name:   "collect",
			Usage:  "Sweep a non-spore token balance to the owner",
			Action: collectCmd,
			Flags:  []cli.Flag{tokenFlag, amountFlag},
		},
	}
}

func main() {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StreamHandler(os.Stderr, log.TerminalFormat(true))))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildFactory assembles the factory from the global flags, either against
// in-memory collaborators or a live node.
func buildFactory(ctx *cli.Context) (*mushroom.Factory, common.Address, error) {
	if ctx.GlobalBool("simulate") {
		return buildSimulated(ctx)
	}
	return buildOnChain(ctx)
}

func buildSimulated(ctx *cli.Context) (*mushroom.Factory, common.Address, error) {
	owner := common.HexToAddress("0x0000000000000000000000000000000000000101")
	species := mushroom.SpeciesID(ctx.GlobalUint64("species"))

	registry := mushroom.NewSimulatedRegistry()
	registry.RegisterSpecies(species, mushroom.Species{
		MinLifespan: ctx.GlobalUint64("minlifespan"),
		MaxLifespan: ctx.GlobalUint64("maxlifespan"),
	}, ctx.GlobalUint64("cap"))

	spore := mushroom.NewSimulatedToken(common.HexToAddress("0x0000000000000000000000000000000000000102"), owner)

	factory, err := mushroom.NewFactory(mushroom.FactoryConfig{
		Owner:        owner,
		Species:      species,
		CostPerSpore: parseCost(ctx),
	}, registry, spore, nil)
	if err != nil {
		return nil, common.Address{}, err
	}
	log.Info("Simulated factory ready", "species", species, "cap", ctx.GlobalUint64("cap"))
	return factory, owner, nil
}

// dialTransactor connects to the node and unlocks the pool wallet.  The
// transactor is shared by every on-chain wrapper the command builds.
func dialTransactor(ctx *cli.Context) (*ethclient.Client, *bind.TransactOpts, error) {
	client, err := ethclient.Dial(ctx.GlobalString("rpc"))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %v", ctx.GlobalString("rpc"), err)
	}
	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("read chain id: %v", err)
	}

	keyjson, err := os.ReadFile(ctx.GlobalString("keyfile"))
	if err != nil {
		return nil, nil, err
	}
	key, err := keystore.DecryptKey(keyjson, ctx.GlobalString("password"))
	if err != nil {
		return nil, nil, fmt.Errorf("decrypt keyfile: %v", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key.PrivateKey, chainID)
	if err != nil {
		return nil, nil, err
	}
	return client, opts, nil
}

func buildOnChain(ctx *cli.Context) (*mushroom.Factory, common.Address, error) {
	for _, flag := range []string{"registry", "sporetoken", "keyfile"} {
		if !ctx.GlobalIsSet(flag) {
			return nil, common.Address{}, fmt.Errorf("--%s flag is required", flag)
		}
	}

	client, opts, err := dialTransactor(ctx)
	if err != nil {
		return nil, common.Address{}, err
	}

	registryWrapper, err := mushcontract.NewMushroomRegistry(opts, common.HexToAddress(ctx.GlobalString("registry")), client)
	if err != nil {
		return nil, common.Address{}, err
	}
	sporeWrapper, err := mushcontract.NewSporeToken(opts, common.HexToAddress(ctx.GlobalString("sporetoken")), client)
	if err != nil {
		return nil, common.Address{}, err
	}

	factory, err := mushroom.NewFactory(mushroom.FactoryConfig{
		Owner:        opts.From,
		Species:      mushroom.SpeciesID(ctx.GlobalUint64("species")),
		CostPerSpore: parseCost(ctx),
	}, mushroom.NewChainRegistry(registryWrapper, client, 0), mushroom.NewChainToken(sporeWrapper, client, 0), nil)
	if err != nil {
		return nil, common.Address{}, err
	}
	log.Info("Factory connected", "registry", registryWrapper.Address(), "sporeToken", sporeWrapper.Address(), "owner", opts.From)
	return factory, opts.From, nil
}

func parseCost(ctx *cli.Context) *big.Int {
	if !ctx.GlobalIsSet("cost") {
		return nil // NewCostSchedule applies the default
	}
	cost, ok := new(big.Int).SetString(ctx.GlobalString("cost"), 10)
	if !ok {
		log.Crit("Invalid --cost value", "cost", ctx.GlobalString("cost"))
	}
	return cost
}

func growCmd(ctx *cli.Context) error {
	if !ctx.IsSet("recipient") {
		return fmt.Errorf("--recipient flag is required")
	}
	factory, owner, err := buildFactory(ctx)
	if err != nil {
		return err
	}
	defer factory.Close()

	ids, err := factory.GrowMushrooms(owner, common.HexToAddress(ctx.String("recipient")), ctx.Uint64("quantity"))
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Printf("minted token %d\n", id)
	}
	return nil
}

func infoCmd(ctx *cli.Context) error {
	factory, _, err := buildFactory(ctx)
	if err != nil {
		return err
	}
	defer factory.Close()

	remaining, err := factory.RemainingMintable()
	if err != nil {
		return err
	}
	log.Info("Factory info",
		"species", factory.FactorySpecies(),
		"remaining", remaining,
		"spawnCount", factory.SpawnCount(),
		"costPerSpore", factory.Costs().CostPerSpore,
		"quote10", factory.Costs().QuoteGrow(10),
	)
	return nil
}

func collectCmd(ctx *cli.Context) error {
	if ctx.GlobalBool("simulate") {
		return fmt.Errorf("collect is not available in --simulate mode")
	}
	for _, flag := range []string{"token", "amount"} {
		if !ctx.IsSet(flag) {
			return fmt.Errorf("--%s flag is required", flag)
		}
	}
	amount, ok := new(big.Int).SetString(ctx.String("amount"), 10)
	if !ok {
		return fmt.Errorf("invalid --amount value: %s", ctx.String("amount"))
	}

	factory, owner, err := buildFactory(ctx)
	if err != nil {
		return err
	}
	defer factory.Close()

	// The dust token needs its own wrapper bound to the same wallet.
	client, opts, err := dialTransactor(ctx)
	if err != nil {
		return err
	}
	dustWrapper, err := mushcontract.NewSporeToken(opts, common.HexToAddress(ctx.String("token")), client)
	if err != nil {
		return err
	}

	if err := factory.CollectDust(owner, mushroom.NewChainToken(dustWrapper, client, 0), amount); err != nil {
		return err
	}
	log.Info("Dust swept", "token", ctx.String("token"), "amount", amount)
	return nil
}
