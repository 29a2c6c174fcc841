// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/ctwitness/types/chainhash"
)

// noCopy may be embedded into structs which must not be copied after the
// first use.  go vet -copylocks reports value copies of such structs.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ScriptWitness is the script witness stack of a transaction input.
type ScriptWitness [][]byte

// IsNull returns true if the stack has no items.  A stack holding a single
// empty item is not null.
func (s ScriptWitness) IsNull() bool {
	return len(s) == 0
}

// SerializeSize returns the number of bytes it would take to serialize the
// stack.
func (s ScriptWitness) SerializeSize() int {
	n := VarIntSerializeSize(uint64(len(s)))
	for _, item := range s {
		n += VarBytesSerializeSize(item)
	}
	return n
}

func (s ScriptWitness) copyStack() ScriptWitness {
	if s == nil {
		return nil
	}
	stack := make(ScriptWitness, len(s))
	for i, item := range s {
		stack[i] = copyBytes(item)
	}
	return stack
}

func writeScriptWitness(w io.Writer, pver uint32, s ScriptWitness) error {
	err := WriteVarInt(w, uint64(len(s)))
	if err != nil {
		return err
	}
	for _, item := range s {
		if err = WriteVarBytes(w, pver, item); err != nil {
			return err
		}
	}
	return nil
}

func readScriptWitness(r io.Reader, pver uint32) (ScriptWitness, error) {
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return nil, err
	}

	// Prevent a possible memory exhaustion attack by limiting the
	// item count to a sane value.
	if count > MaxWitnessItemsPerInput {
		str := fmt.Sprintf("too many witness items to fit into max "+
			"message size [count %d, max %d]", count, MaxWitnessItemsPerInput)
		return nil, Error("readScriptWitness", str)
	}
	if count == 0 {
		return nil, nil
	}

	stack := make(ScriptWitness, count)
	for i := range stack {
		stack[i], err = readWitnessField(r, pver, "script witness item")
		if err != nil {
			return nil, err
		}
	}
	return stack, nil
}

// readWitnessField reads a length prefixed proof or stack item.  Empty
// fields are returned as nil.
func readWitnessField(r io.Reader, pver uint32, fieldName string) ([]byte, error) {
	b, err := ReadVarBytes(r, pver, MaxWitnessItemSize, fieldName)
	if err != nil || len(b) == 0 {
		return nil, err
	}
	return b, nil
}

func copyBytes(src []byte) []byte {
	if src == nil {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}

// TxInWitness is the witness data of a single transaction input.
type TxInWitness struct {
	noCopy noCopy

	IssuanceAmountRangeProof []byte
	InflationKeysRangeProof  []byte
	ScriptWitness            ScriptWitness
}

// IsNull returns true if both range proofs and the script witness are empty.
func (w *TxInWitness) IsNull() bool {
	return len(w.IssuanceAmountRangeProof) == 0 &&
		len(w.InflationKeysRangeProof) == 0 &&
		w.ScriptWitness.IsNull()
}

// SetNull clears every field of the witness.
func (w *TxInWitness) SetNull() {
	w.IssuanceAmountRangeProof = nil
	w.InflationKeysRangeProof = nil
	w.ScriptWitness = nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// input witness.
func (w *TxInWitness) SerializeSize() int {
	return VarBytesSerializeSize(w.IssuanceAmountRangeProof) +
		VarBytesSerializeSize(w.InflationKeysRangeProof) +
		w.ScriptWitness.SerializeSize()
}

// BtcEncode writes the input witness to w.  A null input witness is
// encoded as three zero lengths.
func (w *TxInWitness) BtcEncode(wr io.Writer, pver uint32) error {
	err := WriteVarBytes(wr, pver, w.IssuanceAmountRangeProof)
	if err != nil {
		return err
	}
	err = WriteVarBytes(wr, pver, w.InflationKeysRangeProof)
	if err != nil {
		return err
	}
	return writeScriptWitness(wr, pver, w.ScriptWitness)
}

// BtcDecode reads an input witness from r into the receiver.
func (w *TxInWitness) BtcDecode(r io.Reader, pver uint32) error {
	issuanceProof, err := readWitnessField(r, pver, "issuance amount range proof")
	if err != nil {
		return err
	}
	inflationProof, err := readWitnessField(r, pver, "inflation keys range proof")
	if err != nil {
		return err
	}
	stack, err := readScriptWitness(r, pver)
	if err != nil {
		return err
	}

	w.IssuanceAmountRangeProof = issuanceProof
	w.InflationKeysRangeProof = inflationProof
	w.ScriptWitness = stack
	return nil
}

// WitnessHash returns the double sha256 of the serialized input witness.
func (w *TxInWitness) WitnessHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, w.SerializeSize()))
	_ = w.BtcEncode(buf, ProtocolVersion)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Copy creates a deep copy of the input witness.
func (w *TxInWitness) Copy() *TxInWitness {
	clone := &TxInWitness{}
	w.copyTo(clone)
	return clone
}

func (w *TxInWitness) copyTo(dst *TxInWitness) {
	dst.IssuanceAmountRangeProof = copyBytes(w.IssuanceAmountRangeProof)
	dst.InflationKeysRangeProof = copyBytes(w.InflationKeysRangeProof)
	dst.ScriptWitness = w.ScriptWitness.copyStack()
}

// TxOutWitness is the witness data of a single transaction output.
type TxOutWitness struct {
	noCopy noCopy

	SurjectionProof []byte
	RangeProof      []byte
}

// IsNull returns true if both proofs are empty.
func (w *TxOutWitness) IsNull() bool {
	return len(w.SurjectionProof) == 0 && len(w.RangeProof) == 0
}

// SetNull clears both proofs.
func (w *TxOutWitness) SetNull() {
	w.SurjectionProof = nil
	w.RangeProof = nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// output witness.
func (w *TxOutWitness) SerializeSize() int {
	return VarBytesSerializeSize(w.SurjectionProof) + VarBytesSerializeSize(w.RangeProof)
}

// BtcEncode writes the output witness to w.
func (w *TxOutWitness) BtcEncode(wr io.Writer, pver uint32) error {
	err := WriteVarBytes(wr, pver, w.SurjectionProof)
	if err != nil {
		return err
	}
	return WriteVarBytes(wr, pver, w.RangeProof)
}

// BtcDecode reads an output witness from r into the receiver.
func (w *TxOutWitness) BtcDecode(r io.Reader, pver uint32) error {
	surjectionProof, err := readWitnessField(r, pver, "surjection proof")
	if err != nil {
		return err
	}
	rangeProof, err := readWitnessField(r, pver, "range proof")
	if err != nil {
		return err
	}

	w.SurjectionProof = surjectionProof
	w.RangeProof = rangeProof
	return nil
}

// WitnessHash returns the double sha256 of the serialized output witness.
func (w *TxOutWitness) WitnessHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, w.SerializeSize()))
	_ = w.BtcEncode(buf, ProtocolVersion)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Copy creates a deep copy of the output witness.
func (w *TxOutWitness) Copy() *TxOutWitness {
	clone := &TxOutWitness{}
	w.copyTo(clone)
	return clone
}

func (w *TxOutWitness) copyTo(dst *TxOutWitness) {
	dst.SurjectionProof = copyBytes(w.SurjectionProof)
	dst.RangeProof = copyBytes(w.RangeProof)
}

// TxWitness holds the witnesses of every input and output of a transaction,
// paired with them by position.
//
// A nil *TxWitness is the absent record: every input and output is treated
// as having a null witness.  The record is owned by exactly one transaction;
// hand it over with Take, or clone it with Copy.  It must not be mutated
// while another goroutine encodes or inspects it.
type TxWitness struct {
	noCopy noCopy

	Inputs  []TxInWitness
	Outputs []TxOutWitness
}

// NewTxWitness returns a record of null witnesses sized for a transaction
// with numIn inputs and numOut outputs.  Deserialize relies on this sizing.
func NewTxWitness(numIn, numOut int) *TxWitness {
	return &TxWitness{
		Inputs:  make([]TxInWitness, numIn),
		Outputs: make([]TxOutWitness, numOut),
	}
}

// NumInputs returns the number of input witnesses, zero for an absent record.
func (w *TxWitness) NumInputs() int {
	if w == nil {
		return 0
	}
	return len(w.Inputs)
}

// NumOutputs returns the number of output witnesses, zero for an absent
// record.
func (w *TxWitness) NumOutputs() int {
	if w == nil {
		return 0
	}
	return len(w.Outputs)
}

// IsEmpty returns true if the record holds no entries at all.  This is not
// the same as IsNull: a record can have entries that are all null.
func (w *TxWitness) IsEmpty() bool {
	return w.NumInputs() == 0 && w.NumOutputs() == 0
}

// IsNull returns true if every entry of the record is null.  An empty or
// absent record is null.
func (w *TxWitness) IsNull() bool {
	if w == nil {
		return true
	}
	for i := range w.Inputs {
		if !w.Inputs[i].IsNull() {
			return false
		}
	}
	for i := range w.Outputs {
		if !w.Outputs[i].IsNull() {
			return false
		}
	}
	return true
}

// SetNull drops all entries of the record.
func (w *TxWitness) SetNull() {
	if w == nil {
		return
	}
	w.Inputs = nil
	w.Outputs = nil
}

// InWitness returns the witness of input i.  A null witness is returned when
// the record is absent or does not cover the input.
func (w *TxWitness) InWitness(i int) *TxInWitness {
	if i < 0 || i >= w.NumInputs() {
		return &TxInWitness{}
	}
	return &w.Inputs[i]
}

// OutWitness returns the witness of output i.  A null witness is returned
// when the record is absent or does not cover the output.
func (w *TxWitness) OutWitness(i int) *TxOutWitness {
	if i < 0 || i >= w.NumOutputs() {
		return &TxOutWitness{}
	}
	return &w.Outputs[i]
}

// Take moves the entries into a new record and leaves the receiver empty.
func (w *TxWitness) Take() *TxWitness {
	if w == nil {
		return nil
	}
	moved := &TxWitness{Inputs: w.Inputs, Outputs: w.Outputs}
	w.SetNull()
	return moved
}

// Copy creates a deep copy of the record so that the original does not get
// modified when the copy is manipulated.
func (w *TxWitness) Copy() *TxWitness {
	if w == nil {
		return nil
	}

	clone := NewTxWitness(len(w.Inputs), len(w.Outputs))
	for i := range w.Inputs {
		w.Inputs[i].copyTo(&clone.Inputs[i])
	}
	for i := range w.Outputs {
		w.Outputs[i].copyTo(&clone.Outputs[i])
	}
	return clone
}

// SerializeSize returns the number of bytes it would take to serialize the
// record, regardless of whether it may be serialized.
func (w *TxWitness) SerializeSize() int {
	n := 0
	for i := 0; i < w.NumInputs(); i++ {
		n += w.Inputs[i].SerializeSize()
	}
	for i := 0; i < w.NumOutputs(); i++ {
		n += w.Outputs[i].SerializeSize()
	}
	return n
}

// BtcEncode writes every input witness followed by every output witness to
// w.  The entry counts are not written, they are implied by the transaction.
//
// Encoding a record whose entries are all null is a caller bug: nothing is
// written and ErrSuperfluousWitness is returned.
func (w *TxWitness) BtcEncode(wr io.Writer, pver uint32) error {
	if w.IsNull() {
		log.Error().
			Int("inputs", w.NumInputs()).
			Int("outputs", w.NumOutputs()).
			Msg("refusing to encode superfluous witness record")
		return errors.Wrap(ErrSuperfluousWitness, "TxWitness.BtcEncode")
	}

	for i := range w.Inputs {
		if err := w.Inputs[i].BtcEncode(wr, pver); err != nil {
			return err
		}
	}
	for i := range w.Outputs {
		if err := w.Outputs[i].BtcEncode(wr, pver); err != nil {
			return err
		}
	}
	return nil
}

// BtcDecode reads len(w.Inputs) input witnesses followed by len(w.Outputs)
// output witnesses from r.  The receiver must already be sized to the
// transaction, see NewTxWitness.
//
// Stream and length prefix errors are returned unchanged.  A record that
// decodes to all null entries is rejected with ErrSuperfluousWitness.  The
// receiver is only updated when decoding succeeds.
func (w *TxWitness) BtcDecode(r io.Reader, pver uint32) error {
	if w.IsEmpty() {
		return errors.Wrap(ErrSuperfluousWitness, "TxWitness.BtcDecode: no entries")
	}

	decoded := NewTxWitness(len(w.Inputs), len(w.Outputs))
	for i := range decoded.Inputs {
		if err := decoded.Inputs[i].BtcDecode(r, pver); err != nil {
			return err
		}
	}
	for i := range decoded.Outputs {
		if err := decoded.Outputs[i].BtcDecode(r, pver); err != nil {
			return err
		}
	}

	if decoded.IsNull() {
		return errors.Wrap(ErrSuperfluousWitness, "TxWitness.BtcDecode")
	}

	w.Inputs, w.Outputs = decoded.Inputs, decoded.Outputs
	return nil
}

// Serialize encodes the record to w using the latest protocol version.
func (w *TxWitness) Serialize(wr io.Writer) error {
	return w.BtcEncode(wr, ProtocolVersion)
}

// Deserialize decodes the record from r using the latest protocol version.
func (w *TxWitness) Deserialize(r io.Reader) error {
	return w.BtcDecode(r, ProtocolVersion)
}

// Bytes returns the serialized record.
func (w *TxWitness) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, w.SerializeSize()))
	if err := w.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InWitnessHashes returns the WitnessHash of every input witness.
func (w *TxWitness) InWitnessHashes() []chainhash.Hash {
	hashes := make([]chainhash.Hash, w.NumInputs())
	for i := range hashes {
		hashes[i] = w.Inputs[i].WitnessHash()
	}
	return hashes
}

// OutWitnessHashes returns the WitnessHash of every output witness.
func (w *TxWitness) OutWitnessHashes() []chainhash.Hash {
	hashes := make([]chainhash.Hash, w.NumOutputs())
	for i := range hashes {
		hashes[i] = w.Outputs[i].WitnessHash()
	}
	return hashes
}

// CommitmentRoot commits to the whole record: the fast merkle root of the
// input witness hashes and the fast merkle root of the output witness hashes
// are themselves combined with FastMerkleRoot.
func (w *TxWitness) CommitmentRoot() chainhash.Hash {
	return chainhash.FastMerkleRoot([]chainhash.Hash{
		chainhash.FastMerkleRoot(w.InWitnessHashes()),
		chainhash.FastMerkleRoot(w.OutWitnessHashes()),
	})
}
