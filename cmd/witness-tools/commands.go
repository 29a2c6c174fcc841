// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/jaxnet/ctwitness/types/chainhash"
	"gitlab.com/jaxnet/ctwitness/types/wire"
	"gopkg.in/yaml.v3"
)

func (app *App) DecodeCmd(c *cli.Context) error {
	raw, err := hex.DecodeString(c.String(flagHex))
	if err != nil {
		return exitErr(err, "invalid hex")
	}
	if err = app.params.CheckSerializedSize(len(raw)); err != nil {
		return cli.Exit(err, 1)
	}

	numIn, numOut := c.Uint(flagInputs), c.Uint(flagOutputs)
	if err = checkEntryCounts(numIn, numOut, len(raw)); err != nil {
		return cli.Exit(err, 1)
	}
	witness := wire.NewTxWitness(int(numIn), int(numOut))

	r := bytes.NewReader(raw)
	err = witness.Deserialize(r)
	if errors.Is(err, wire.ErrSuperfluousWitness) {
		app.log.Warn().Uint("inputs", numIn).Uint("outputs", numOut).
			Msg("witness record rejected: all entries are null")
		return exitErr(err, "witness record rejected")
	}
	if err != nil {
		return exitErr(err, "unable to decode witness record")
	}
	if r.Len() != 0 {
		return cli.Exit(fmt.Sprintf("%d trailing bytes after witness record", r.Len()), 1)
	}

	out := c.App.Writer
	switch c.String(flagFormat) {
	case formatYAML:
		data, err := yaml.Marshal(witnessFileFromWire(witness))
		if err != nil {
			return exitErr(err, "unable to encode yaml")
		}
		fmt.Fprint(out, string(data))
	case formatSpew:
		spew.Fdump(out, witness.Inputs, witness.Outputs)
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", c.String(flagFormat)), 1)
	}

	fmt.Fprintf(out, "commitment_root: %s\n", witness.CommitmentRoot())
	return nil
}

// Every input witness takes at least three bytes on the wire and every
// output witness two, one empty length prefix per field.
const (
	minInWitnessSize  = 3
	minOutWitnessSize = 2
)

// checkEntryCounts rejects entry counts that cannot fit into size bytes.
func checkEntryCounts(numIn, numOut uint, size int) error {
	limit := uint(size)
	if numIn > limit || numOut > limit ||
		minInWitnessSize*numIn+minOutWitnessSize*numOut > limit {
		return errors.Errorf("%d inputs and %d outputs need more than %d bytes",
			numIn, numOut, size)
	}
	return nil
}

func (app *App) EncodeCmd(c *cli.Context) error {
	file, err := readWitnessFile(c.String(flagFile))
	if err != nil {
		return cli.Exit(err, 1)
	}

	witness, err := file.ToWire()
	if err != nil {
		return cli.Exit(err, 1)
	}

	raw, err := witness.Bytes()
	if err != nil {
		return exitErr(err, "unable to encode witness record")
	}
	if err = app.params.CheckSerializedSize(len(raw)); err != nil {
		return cli.Exit(err, 1)
	}

	app.log.Debug().Int("size", len(raw)).Msg("witness record encoded")
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(raw))
	return nil
}

func parseHashes(values []string) ([]chainhash.Hash, error) {
	hashes := make([]chainhash.Hash, len(values))
	for i, value := range values {
		if err := chainhash.Decode(&hashes[i], value); err != nil {
			return nil, errors.Wrapf(err, "invalid hash #%d", i)
		}
	}
	return hashes, nil
}

func (app *App) MerkleRootCmd(c *cli.Context) error {
	hashes, err := parseHashes(c.StringSlice(flagHash))
	if err != nil {
		return cli.Exit(err, 1)
	}

	out := c.App.Writer
	fmt.Fprintf(out, "fast_root: %s\n", chainhash.FastMerkleRoot(hashes))
	if c.Bool(flagClassic) {
		fmt.Fprintf(out, "classic_root: %s\n", chainhash.MerkleTreeRoot(hashes))
	}
	return nil
}

func (app *App) MerkleProofCmd(c *cli.Context) error {
	hashes, err := parseHashes(c.StringSlice(flagHash))
	if err != nil {
		return cli.Exit(err, 1)
	}

	index := c.Int(flagIndex)
	root, proof, err := buildProof(hashes, index, c.Bool(flagClassic))
	if err != nil {
		return exitErr(err, "unable to build proof")
	}
	if !validateProof(hashes[index], proof, index, len(hashes), root, c.Bool(flagClassic)) {
		return cli.Exit("proof does not match the root", 1)
	}

	buf := bytes.NewBuffer(nil)
	if err = wire.WriteHashArray(buf, proof); err != nil {
		return exitErr(err, "unable to serialize proof")
	}

	out := c.App.Writer
	fmt.Fprintf(out, "root: %s\n", root)
	for i, h := range proof {
		fmt.Fprintf(out, "proof[%d]: %s\n", i, h)
	}
	fmt.Fprintf(out, "proof_raw: %s\n", hex.EncodeToString(buf.Bytes()))
	return nil
}

func (app *App) MerkleVerifyCmd(c *cli.Context) error {
	hashes, err := parseHashes(c.StringSlice(flagHash))
	if err != nil {
		return cli.Exit(err, 1)
	}

	index := c.Int(flagIndex)
	if index < 0 || index >= len(hashes) {
		return exitErr(chainhash.ErrProofIndexOutOfRange, "unable to verify proof")
	}

	raw, err := hex.DecodeString(c.String(flagProofRaw))
	if err != nil {
		return exitErr(err, "invalid proof hex")
	}

	r := bytes.NewReader(raw)
	proof, err := wire.ReadHashArray(r)
	if err != nil {
		return exitErr(err, "unable to decode proof")
	}
	if r.Len() != 0 {
		return cli.Exit(fmt.Sprintf("%d trailing bytes after proof", r.Len()), 1)
	}

	classic := c.Bool(flagClassic)
	root := chainhash.FastMerkleRoot(hashes)
	if classic {
		root = chainhash.MerkleTreeRoot(hashes)
	}

	if !validateProof(hashes[index], proof, index, len(hashes), root, classic) {
		app.log.Warn().Int("index", index).Int("leaves", len(hashes)).
			Msg("merkle proof rejected")
		return cli.Exit("proof does not match the root", 1)
	}

	fmt.Fprintf(c.App.Writer, "valid: %s\n", root)
	return nil
}

// buildProof returns the root of hashes and the proof of hashes[index].  The
// duplicate-padding tree only proves the first leaf.
func buildProof(hashes []chainhash.Hash, index int, classic bool) (chainhash.Hash, []chainhash.Hash, error) {
	if !classic {
		proof, err := chainhash.BuildFastMerkleProof(hashes, index)
		if err != nil {
			return chainhash.ZeroHash, nil, err
		}
		return chainhash.FastMerkleRoot(hashes), proof, nil
	}

	if len(hashes) == 0 || index != 0 {
		return chainhash.ZeroHash, nil, chainhash.ErrProofIndexOutOfRange
	}
	return chainhash.MerkleTreeRoot(hashes), chainhash.BuildMerkleTreeProof(hashes), nil
}

func validateProof(leaf chainhash.Hash, proof []chainhash.Hash, index, count int,
	root chainhash.Hash, classic bool) bool {
	if classic {
		return index == 0 && chainhash.ValidateMerkleTreeProof(leaf, proof, root)
	}
	return chainhash.ValidateFastMerkleProof(leaf, proof, index, count, root)
}
