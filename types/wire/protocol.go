// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"gitlab.com/jaxnet/ctwitness/types/consensus"
)

const (
	// ProtocolVersion is the latest protocol version this package supports.
	ProtocolVersion uint32 = 1

	// MaxBlockPayload is the maximum bytes a block message can be.
	MaxBlockPayload = consensus.MaxBlockSerializedSize

	// MaxWitnessItemSize is the maximum allowed size for a single proof or
	// script witness item.  Range proofs and peg-in witnesses can be large,
	// so the only sane upper bound is the block payload.
	MaxWitnessItemSize = MaxBlockPayload

	// MaxWitnessItemsPerInput is the maximum number of items in the script
	// witness stack of a single input.
	MaxWitnessItemsPerInput = consensus.MaxWitnessItemsPerInput

	// MaxHashArrayLength is the maximum number of hashes in a length
	// prefixed hash array.
	MaxHashArrayLength = MaxBlockPayload / 32
)
