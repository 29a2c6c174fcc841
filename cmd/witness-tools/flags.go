// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import "github.com/urfave/cli/v2"

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagProfile  = "profile"
	flagHex      = "hex"
	flagInputs   = "inputs"
	flagOutputs  = "outputs"
	flagFormat   = "format"
	flagFile     = "file"
	flagHash     = "hash"
	flagIndex    = "index"
	flagClassic  = "classic"
	flagProofRaw = "proof-raw"
)

const (
	formatSpew = "spew"
	formatYAML = "yaml"
)

var standardFlags = map[string]cli.Flag{
	flagConfig: &cli.StringFlag{
		Name:    flagConfig,
		Aliases: []string{"c"},
		EnvVars: []string{"WITNESS_TOOLS_CONFIG"},
		Usage:   "path to yaml configuration, defaults are used if not set",
	},
	flagLogLevel: &cli.StringFlag{
		Name:    flagLogLevel,
		Aliases: []string{"l"},
		EnvVars: []string{"WITNESS_TOOLS_LOG_LEVEL"},
		Usage:   "log level (trace, debug, info, warn, error), will override value from config file",
	},
	flagProfile: &cli.StringFlag{
		Name:    flagProfile,
		Aliases: []string{"p"},
		Usage:   "consensus profile (pow, pos), will override value from config file",
	},
	flagHex: &cli.StringFlag{
		Name:     flagHex,
		Aliases:  []string{"x"},
		Usage:    "hex-encoded witness record",
		Required: true,
	},
	flagInputs: &cli.UintFlag{
		Name:    flagInputs,
		Aliases: []string{"i"},
		Usage:   "number of inputs of the transaction",
	},
	flagOutputs: &cli.UintFlag{
		Name:    flagOutputs,
		Aliases: []string{"o"},
		Usage:   "number of outputs of the transaction",
	},
	flagFormat: &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"f"},
		Value:   formatSpew,
		Usage:   "output format: spew or yaml",
	},
	flagFile: &cli.StringFlag{
		Name:     flagFile,
		Usage:    "path to yaml witness description",
		Required: true,
	},
	flagHash: &cli.StringSliceFlag{
		Name:     flagHash,
		Usage:    "hash in byte-reversed hex, repeat for every leaf in order",
		Required: true,
	},
	flagIndex: &cli.IntFlag{
		Name:     flagIndex,
		Usage:    "position of the leaf to prove",
		Required: true,
	},
	flagClassic: &cli.BoolFlag{
		Name:  flagClassic,
		Usage: "also use the duplicate-padding merkle tree, proofs only cover index 0",
	},
	flagProofRaw: &cli.StringFlag{
		Name:     flagProofRaw,
		Usage:    "varint prefixed hash array as printed by merkle-proof",
		Required: true,
	},
}
