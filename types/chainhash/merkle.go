// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

// hashPair returns the double sha256 of left || right.
func hashPair(left, right *Hash) Hash {
	var buf [HashSize * 2]byte
	copy(buf[:HashSize], left[:])
	copy(buf[HashSize:], right[:])
	return DoubleHashH(buf[:])
}

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation.  This is a helper
// function used to aid in the generation of a merkle tree.
func HashMerkleBranches(left, right *Hash) *Hash {
	newHash := hashPair(left, right)
	return &newHash
}

// MerkleTreeRoot calculates the classic bitcoin merkle root of the hashes.
// Whenever a level has an odd number of nodes the last one is hashed with
// itself, so the result matches the block header merkle root.
//
// An empty list yields ZeroHash and a single hash is returned as is.
func MerkleTreeRoot(hashes []Hash) Hash {
	switch len(hashes) {
	case 0:
		return ZeroHash
	case 1:
		return hashes[0]
	}

	level := make([]Hash, len(hashes), len(hashes)+1)
	copy(level, hashes)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([]Hash, 0, len(level)/2+1)
		for i := 0; i < len(level); i += 2 {
			next = append(next, hashPair(&level[i], &level[i+1]))
		}
		level = next
	}

	return level[0]
}

// BuildMerkleTreeProof returns the branch that links the first hash of the
// list (the coinbase) to the classic merkle root.
func BuildMerkleTreeProof(hashes []Hash) []Hash {
	proof := make([]Hash, 0)
	if len(hashes) < 2 {
		return proof
	}

	level := make([]Hash, len(hashes), len(hashes)+1)
	copy(level, hashes)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		proof = append(proof, level[1])

		next := make([]Hash, 0, len(level)/2+1)
		for i := 0; i < len(level); i += 2 {
			next = append(next, hashPair(&level[i], &level[i+1]))
		}
		level = next
	}

	return proof
}

// MerkleTreeProofRoot folds the branch produced by BuildMerkleTreeProof
// starting from the first leaf of the tree.
func MerkleTreeProofRoot(leaf Hash, proof []Hash) Hash {
	root := leaf
	for i := range proof {
		root = hashPair(&root, &proof[i])
	}
	return root
}

// ValidateMerkleTreeProof checks that the branch links leaf to root.
func ValidateMerkleTreeProof(leaf Hash, proof []Hash, root Hash) bool {
	return MerkleTreeProofRoot(leaf, proof) == root
}
