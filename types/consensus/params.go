// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consensus holds the network rule limits consumed by the codec and
// tooling.  Nothing here is derived at runtime; the values are fixed per
// profile.
package consensus

import (
	"sort"

	"github.com/pkg/errors"
)

const (
	// WitnessScaleFactor determines the level of "discount" witness data
	// receives compared to "base" block data.
	WitnessScaleFactor = 4

	// MaxWitnessItemsPerInput is the maximum number of witness items to be
	// read for the script witness of a single input.
	MaxWitnessItemsPerInput = 500000
)

// Flags for sequence and lock time locks.
const (
	// LocktimeVerifySequence interprets sequence numbers as relative
	// lock-time constraints.
	LocktimeVerifySequence uint32 = 1 << 0

	// LocktimeMedianTimePast uses the median time past instead of the block
	// time as the end point timestamp.
	LocktimeMedianTimePast uint32 = 1 << 1
)

// ErrUnknownProfile is returned when no profile is registered for a name.
var ErrUnknownProfile = errors.New("unknown consensus profile")

// Params is a set of block and transaction size limits.
type Params struct {
	Name string

	// MaxBlockSerializedSize is the maximum allowed size for a serialized
	// block, in bytes (only for buffer size limits).
	MaxBlockSerializedSize uint32

	// MaxBlockWeight is the maximum allowed weight for a block (BIP 141).
	MaxBlockWeight uint32

	// MaxBlockSigOpsCost is the maximum allowed number of signature check
	// operations in a block.
	MaxBlockSigOpsCost int64

	// CoinbaseMaturity is the number of blocks after which coinbase outputs
	// can be spent.
	CoinbaseMaturity int

	WitnessScaleFactor int

	// MinTransactionWeight is the lower bound for the weight of a valid
	// transaction.
	MinTransactionWeight int

	// MinSerializableTransactionWeight is the lower bound for the weight of
	// anything that can be decoded as a transaction.
	MinSerializableTransactionWeight int

	// GovernanceVote is the number of votes every stakeholder can cast.
	// Zero for profiles without governance.
	GovernanceVote int

	// ValidationBlockInterval is the distance between blocks that are fully
	// validated by proof of work.  Zero for pure proof of work.
	ValidationBlockInterval int
}

// ProofOfWorkParams is the bitcoin derived profile.
var ProofOfWorkParams = Params{
	Name:                             "pow",
	MaxBlockSerializedSize:           4000000,
	MaxBlockWeight:                   4000000,
	MaxBlockSigOpsCost:               80000,
	CoinbaseMaturity:                 100,
	WitnessScaleFactor:               WitnessScaleFactor,
	MinTransactionWeight:             WitnessScaleFactor * 60,
	MinSerializableTransactionWeight: WitnessScaleFactor * 10,
}

// ProofOfStakeParams is the hybrid proof of stake profile.
var ProofOfStakeParams = Params{
	Name:                             "pos",
	MaxBlockSerializedSize:           6000000,
	MaxBlockWeight:                   4000000,
	MaxBlockSigOpsCost:               90000,
	CoinbaseMaturity:                 200,
	WitnessScaleFactor:               WitnessScaleFactor,
	MinTransactionWeight:             WitnessScaleFactor * 80,
	MinSerializableTransactionWeight: WitnessScaleFactor * 20,
	GovernanceVote:                   1,
	ValidationBlockInterval:          6,
}

// MaxBlockSerializedSize is the largest block size accepted by any profile.
// Decoders use it as an upper bound for a single length prefixed field.
const MaxBlockSerializedSize = 6000000

var profiles = map[string]*Params{
	ProofOfWorkParams.Name:  &ProofOfWorkParams,
	ProofOfStakeParams.Name: &ProofOfStakeParams,
}

// ParamsByName returns the profile registered under name.
func ParamsByName(name string) (*Params, error) {
	params, ok := profiles[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProfile, "%q", name)
	}
	return params, nil
}

// ProfileNames returns the sorted names of all registered profiles.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPoS returns true for profiles with stake based block production.
func (p *Params) IsPoS() bool {
	return p.ValidationBlockInterval > 0
}

// IsValidationBlock returns true if the block at height must be validated by
// proof of work under this profile.  Every block is for pure proof of work.
func (p *Params) IsValidationBlock(height int32) bool {
	if !p.IsPoS() {
		return true
	}
	return height%int32(p.ValidationBlockInterval) == 0
}

// CheckSerializedSize returns an error if size exceeds the block size limit
// of the profile.
func (p *Params) CheckSerializedSize(size int) error {
	if size > int(p.MaxBlockSerializedSize) {
		return errors.Errorf("serialized size %d exceeds %s limit %d",
			size, p.Name, p.MaxBlockSerializedSize)
	}
	return nil
}
