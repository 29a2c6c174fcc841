// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"math/bits"

	"github.com/pkg/errors"
)

var (
	ErrProofIndexOutOfRange = errors.New("leaf index is out of range")
	ErrInvalidProofLength   = errors.New("proof length does not match leaf position")
)

// FastMerkleRoot computes the root of the hashes with the fast merkle
// construction:
//
//   - an empty list yields ZeroHash;
//   - a single hash is returned as is, it is never hashed with itself;
//   - otherwise adjacent pairs are replaced with DoubleHashH(left || right)
//     and a trailing odd node moves to the next level unmodified, until one
//     node remains.
//
// The result differs from MerkleTreeRoot as soon as any level has an odd
// count.  The passed slice is not modified.
func FastMerkleRoot(hashes []Hash) Hash {
	switch len(hashes) {
	case 0:
		return ZeroHash
	case 1:
		return hashes[0]
	}

	level := make([]Hash, len(hashes))
	copy(level, hashes)

	for len(level) > 1 {
		level = nextFastLevel(level)
	}

	return level[0]
}

// nextFastLevel reduces level in place and returns the parent level.  The
// write position i/2 never passes the read position i.
func nextFastLevel(level []Hash) []Hash {
	n := len(level)
	next := level[:0]
	for i := 0; i+1 < n; i += 2 {
		next = append(next, hashPair(&level[i], &level[i+1]))
	}
	if n%2 != 0 {
		next = append(next, level[n-1])
	}
	return next
}

// isCarried reports whether the node at index is the unpaired trailing node
// of a level of n nodes.
func isCarried(index, n int) bool {
	return n%2 != 0 && index == n-1
}

// BuildFastMerkleProof returns the sibling hashes linking hashes[index] to
// FastMerkleRoot(hashes), ordered from the leaf level upwards.  Levels where
// the tracked node is carried up unpaired contribute nothing to the proof.
func BuildFastMerkleProof(hashes []Hash, index int) ([]Hash, error) {
	if index < 0 || index >= len(hashes) {
		return nil, ErrProofIndexOutOfRange
	}

	proof := make([]Hash, 0, bits.Len(uint(len(hashes))))
	level := make([]Hash, len(hashes))
	copy(level, hashes)

	for len(level) > 1 {
		if !isCarried(index, len(level)) {
			proof = append(proof, level[index^1])
		}
		level = nextFastLevel(level)
		index /= 2
	}

	return proof, nil
}

// FastMerkleProofRoot folds proof over leaf, which sits at position index of
// a list of count hashes, and returns the implied fast merkle root.  It walks
// the levels exactly as FastMerkleRoot does.
func FastMerkleProofRoot(leaf Hash, proof []Hash, index, count int) (Hash, error) {
	if count <= 0 || index < 0 || index >= count {
		return ZeroHash, ErrProofIndexOutOfRange
	}

	root := leaf
	used := 0
	for n := count; n > 1; n = (n + 1) / 2 {
		if isCarried(index, n) {
			index /= 2
			continue
		}
		if used == len(proof) {
			return ZeroHash, ErrInvalidProofLength
		}

		sibling := proof[used]
		used++
		if index%2 == 0 {
			root = hashPair(&root, &sibling)
		} else {
			root = hashPair(&sibling, &root)
		}
		index /= 2
	}

	if used != len(proof) {
		return ZeroHash, ErrInvalidProofLength
	}
	return root, nil
}

// ValidateFastMerkleProof checks that proof links leaf at position index of
// a list of count hashes to root.  The proof does not commit to count: lists
// of different sizes that walk index through the same levels accept the same
// proof.
func ValidateFastMerkleProof(leaf Hash, proof []Hash, index, count int, root Hash) bool {
	got, err := FastMerkleProofRoot(leaf, proof, index, count)
	if err != nil {
		return false
	}
	return got == root
}
