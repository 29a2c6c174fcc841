// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gitlab.com/jaxnet/ctwitness/types/chainhash"
	"gitlab.com/jaxnet/ctwitness/types/wire"
)

const sampleWitnessHex = "0101000102aabb00020203"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer wire.DisableLog()

	out := bytes.NewBuffer(nil)
	app := newCliApp(&App{})
	app.Writer = out
	app.ErrWriter = out
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"witness-tools", "--log-level", "error"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDecodeCmd(t *testing.T) {
	out, err := runApp(t, "decode", "--hex", sampleWitnessHex,
		"--inputs", "1", "--outputs", "1", "--format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "issuance_amount_range_proof:")
	assert.Contains(t, out, "aabb")
	assert.Contains(t, out, "0203")
	assert.NotContains(t, out, "inflation_keys_range_proof")
	assert.Contains(t, out, "commitment_root: ")
}

func TestDecodeCmdSpew(t *testing.T) {
	out, err := runApp(t, "decode", "--hex", sampleWitnessHex,
		"--inputs", "1", "--outputs", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "TxInWitness")
	assert.Contains(t, out, "commitment_root: ")
}

func TestDecodeCmdRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{
			name: "empty list",
			args: []string{"--hex", "", "--inputs", "0", "--outputs", "0"},
			msg:  "superfluous witness record",
		},
		{
			name: "all null entries",
			args: []string{"--hex", "0000000000", "--inputs", "1", "--outputs", "1"},
			msg:  "superfluous witness record",
		},
		{
			name: "trailing bytes",
			args: []string{"--hex", sampleWitnessHex + "ff", "--inputs", "1", "--outputs", "1"},
			msg:  "trailing bytes",
		},
		{
			name: "truncated",
			args: []string{"--hex", "0101000000", "--inputs", "1", "--outputs", "1"},
			msg:  "unable to decode witness record",
		},
		{
			name: "counts larger than the input",
			args: []string{"--hex", "00", "--inputs", "100000000000", "--outputs", "0"},
			msg:  "need more than 1 bytes",
		},
		{
			name: "outputs larger than the input",
			args: []string{"--hex", "01010001", "--inputs", "1", "--outputs", "1"},
			msg:  "need more than 4 bytes",
		},
		{
			name: "bad hex",
			args: []string{"--hex", "zz", "--inputs", "1", "--outputs", "1"},
			msg:  "invalid hex",
		},
		{
			name: "unknown format",
			args: []string{"--hex", sampleWitnessHex, "--inputs", "1", "--outputs", "1", "--format", "xml"},
			msg:  "unknown format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, append([]string{"decode"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestEncodeCmd(t *testing.T) {
	path := writeFile(t, "witness.yaml", `
inputs:
  - issuance_amount_range_proof: "01"
    script_witness: ["aabb"]
outputs:
  - range_proof: "0203"
`)

	out, err := runApp(t, "encode", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, sampleWitnessHex, strings.TrimSpace(out))
}

func TestEncodeCmdRefusesNullRecord(t *testing.T) {
	path := writeFile(t, "witness.yaml", `
inputs:
  - {}
outputs:
  - {}
`)

	out, err := runApp(t, "encode", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "superfluous witness record")
	assert.Empty(t, strings.TrimSpace(out))
}

func TestEncodeCmdBadHex(t *testing.T) {
	path := writeFile(t, "witness.yaml", `
outputs:
  - surjection_proof: "0g"
`)

	_, err := runApp(t, "encode", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surjection_proof")
}

func hashArgs(hashes []chainhash.Hash) []string {
	var args []string
	for _, h := range hashes {
		args = append(args, "--hash", h.String())
	}
	return args
}

func testHashes(n int) []chainhash.Hash {
	hashes := make([]chainhash.Hash, n)
	for i := range hashes {
		hashes[i] = chainhash.HashH([]byte{byte(i)})
	}
	return hashes
}

func TestMerkleRootCmd(t *testing.T) {
	hashes := testHashes(3)

	out, err := runApp(t, append([]string{"merkle-root", "--classic"}, hashArgs(hashes)...)...)
	require.NoError(t, err)

	fast := chainhash.FastMerkleRoot(hashes)
	classic := chainhash.MerkleTreeRoot(hashes)
	assert.Contains(t, out, "fast_root: "+fast.String())
	assert.Contains(t, out, "classic_root: "+classic.String())
}

func TestMerkleRootCmdInvalidHash(t *testing.T) {
	_, err := runApp(t, "merkle-root", "--hash", "xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hash #0")
}

func TestMerkleProofCmd(t *testing.T) {
	hashes := testHashes(5)

	args := append([]string{"merkle-proof", "--index", "4"}, hashArgs(hashes)...)
	out, err := runApp(t, args...)
	require.NoError(t, err)

	proof, err := chainhash.BuildFastMerkleProof(hashes, 4)
	require.NoError(t, err)

	root := chainhash.FastMerkleRoot(hashes)
	assert.Contains(t, out, "root: "+root.String())
	for _, h := range proof {
		assert.Contains(t, out, h.String())
	}
	assert.Contains(t, out, "proof_raw: ")
}

func TestMerkleProofCmdIndexOutOfRange(t *testing.T) {
	args := append([]string{"merkle-proof", "--index", "3"}, hashArgs(testHashes(3))...)
	_, err := runApp(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to build proof")
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
profile: pos
log_level: warn
log:
  disable_console_log: true
`)

	cfg, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "pos", cfg.Profile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Log.DisableConsoleLog)
	assert.Equal(t, "logs", cfg.Log.Directory)

	params, err := cfg.Params()
	require.NoError(t, err)
	assert.True(t, params.IsPoS())
}

func TestUnknownProfile(t *testing.T) {
	_, err := runApp(t, "--profile", "dpos", "merkle-root", "--hash", chainhash.ZeroHash.String())
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "merkle-root", "--hash", chainhash.ZeroHash.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestCheckEntryCounts(t *testing.T) {
	assert.NoError(t, checkEntryCounts(1, 1, 5))
	assert.NoError(t, checkEntryCounts(0, 0, 0))
	assert.Error(t, checkEntryCounts(1, 1, 4))
	assert.Error(t, checkEntryCounts(0, 3, 5))
	assert.Error(t, checkEntryCounts(^uint(0), 0, 10))
	assert.Error(t, checkEntryCounts(0, ^uint(0)/2+1, 10))
}

func proofRaw(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "proof_raw: ") {
			return strings.TrimPrefix(line, "proof_raw: ")
		}
	}
	t.Fatalf("no proof_raw in output:\n%s", out)
	return ""
}

func TestMerkleVerifyCmd(t *testing.T) {
	hashes := testHashes(6)

	out, err := runApp(t, append([]string{"merkle-proof", "--index", "4"}, hashArgs(hashes)...)...)
	require.NoError(t, err)
	raw := proofRaw(t, out)

	args := append([]string{"merkle-verify", "--index", "4", "--proof-raw", raw}, hashArgs(hashes)...)
	out, err = runApp(t, args...)
	require.NoError(t, err)
	root := chainhash.FastMerkleRoot(hashes)
	assert.Contains(t, out, "valid: "+root.String())

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{
			name: "wrong leaf",
			args: append([]string{"--index", "3", "--proof-raw", raw}, hashArgs(hashes)...),
			msg:  "proof does not match the root",
		},
		{
			name: "wrong leaf count",
			args: append([]string{"--index", "4", "--proof-raw", raw}, hashArgs(hashes[:5])...),
			msg:  "proof does not match the root",
		},
		{
			name: "trailing bytes",
			args: append([]string{"--index", "4", "--proof-raw", raw + "00"}, hashArgs(hashes)...),
			msg:  "trailing bytes after proof",
		},
		{
			name: "truncated",
			args: append([]string{"--index", "4", "--proof-raw", raw[:len(raw)-2]}, hashArgs(hashes)...),
			msg:  "unable to decode proof",
		},
		{
			name: "index out of range",
			args: append([]string{"--index", "6", "--proof-raw", raw}, hashArgs(hashes)...),
			msg:  "unable to verify proof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, append([]string{"merkle-verify"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestMerkleVerifyCmdClassic(t *testing.T) {
	hashes := testHashes(5)

	out, err := runApp(t, append([]string{"merkle-proof", "--classic", "--index", "0"}, hashArgs(hashes)...)...)
	require.NoError(t, err)
	classic := chainhash.MerkleTreeRoot(hashes)
	assert.Contains(t, out, "root: "+classic.String())
	raw := proofRaw(t, out)

	args := append([]string{"merkle-verify", "--classic", "--index", "0", "--proof-raw", raw}, hashArgs(hashes)...)
	out, err = runApp(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "valid: "+classic.String())

	// the classic proof does not verify against the fast root
	args = append([]string{"merkle-verify", "--index", "0", "--proof-raw", raw}, hashArgs(hashes)...)
	_, err = runApp(t, args...)
	require.Error(t, err)

	_, err = runApp(t, append([]string{"merkle-proof", "--classic", "--index", "1"}, hashArgs(hashes)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to build proof")
}
