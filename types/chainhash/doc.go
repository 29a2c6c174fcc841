// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides abstracted hash functionality.
//
// This package provides a generic hash type and associated functions that
// allows the specific hash algorithm to be abstracted.
//
// Two Merkle constructions live here and they are NOT interchangeable:
//
//   - MerkleTreeRoot pads odd levels by hashing the last node with itself.
//     Appending a copy of the last leaf to an odd-length list leaves the root
//     unchanged.
//   - FastMerkleRoot carries the odd trailing node up to the next level
//     unmodified, so the duplicate-leaf trick produces a different root.
//
// Proofs built for one family must be verified with the same family.
package chainhash
