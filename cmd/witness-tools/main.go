// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gitlab.com/jaxnet/ctwitness/corelog"
	"gitlab.com/jaxnet/ctwitness/types/consensus"
	"gitlab.com/jaxnet/ctwitness/types/wire"
)

func main() {
	err := newCliApp(&App{}).Run(os.Args)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func newCliApp(app *App) *cli.App {
	return &cli.App{
		Name:     "witness-tools",
		Usage:    "inspect confidential witness records and fast merkle roots",
		Flags:    app.InitFlags(),
		Before:   app.InitCfg,
		Commands: app.getCommands(),
	}
}

type App struct {
	config Config
	params *consensus.Params
	log    zerolog.Logger
}

func (app *App) InitFlags() []cli.Flag {
	return []cli.Flag{
		standardFlags[flagConfig],
		standardFlags[flagLogLevel],
		standardFlags[flagProfile],
	}
}

func (app *App) InitCfg(c *cli.Context) error {
	var err error
	app.config, err = parseConfig(c.String(flagConfig))
	if err != nil {
		return cli.Exit(err, 1)
	}

	if lvl := c.String(flagLogLevel); lvl != "" {
		app.config.LogLevel = lvl
	}
	if profile := c.String(flagProfile); profile != "" {
		app.config.Profile = profile
	}

	app.params, err = app.config.Params()
	if err != nil {
		return cli.Exit(err, 1)
	}

	level, err := corelog.ParseLevel(app.config.LogLevel)
	if err != nil {
		return cli.Exit(err, 1)
	}

	app.log = corelog.New("WTLS", level, app.config.Log)
	wire.UseLogger(app.log.With().Str("pkg", "wire").Logger())

	app.log.Debug().
		Str("profile", app.params.Name).
		Uint32("maxBlockSerializedSize", app.params.MaxBlockSerializedSize).
		Msg("configuration loaded")
	return nil
}

func (app *App) getCommands() cli.Commands {
	return []*cli.Command{
		{
			Name:  "decode",
			Usage: "decode hex encoded witness record of a transaction",
			Flags: []cli.Flag{
				standardFlags[flagHex],
				standardFlags[flagInputs],
				standardFlags[flagOutputs],
				standardFlags[flagFormat],
			},
			Action: app.DecodeCmd,
		},
		{
			Name:   "encode",
			Usage:  "encode witness record described in yaml file",
			Flags:  []cli.Flag{standardFlags[flagFile]},
			Action: app.EncodeCmd,
		},
		{
			Name:  "merkle-root",
			Usage: "compute the fast merkle root of the hashes",
			Flags: []cli.Flag{
				standardFlags[flagHash],
				standardFlags[flagClassic],
			},
			Action: app.MerkleRootCmd,
		},
		{
			Name:  "merkle-proof",
			Usage: "build and verify the fast merkle proof of one leaf",
			Flags: []cli.Flag{
				standardFlags[flagHash],
				standardFlags[flagIndex],
				standardFlags[flagClassic],
			},
			Action: app.MerkleProofCmd,
		},
		{
			Name:  "merkle-verify",
			Usage: "verify a serialized merkle proof of one leaf against the hashes",
			Flags: []cli.Flag{
				standardFlags[flagHash],
				standardFlags[flagIndex],
				standardFlags[flagProofRaw],
				standardFlags[flagClassic],
			},
			Action: app.MerkleVerifyCmd,
		},
	}
}

func exitErr(err error, msg string) error {
	return cli.Exit(errors.Wrap(err, msg), 1)
}
