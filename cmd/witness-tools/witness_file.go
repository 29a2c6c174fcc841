// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"encoding/hex"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/ctwitness/types/wire"
	"gopkg.in/yaml.v3"
)

// InputWitnessFile is the human editable form of wire.TxInWitness.
// Every byte string is hex-encoded.
type InputWitnessFile struct {
	IssuanceAmountRangeProof string   `yaml:"issuance_amount_range_proof,omitempty"`
	InflationKeysRangeProof  string   `yaml:"inflation_keys_range_proof,omitempty"`
	ScriptWitness            []string `yaml:"script_witness,omitempty"`
}

// OutputWitnessFile is the human editable form of wire.TxOutWitness.
type OutputWitnessFile struct {
	SurjectionProof string `yaml:"surjection_proof,omitempty"`
	RangeProof      string `yaml:"range_proof,omitempty"`
}

// WitnessFile describes a whole witness record, one entry per transaction
// input and output.
type WitnessFile struct {
	Inputs  []InputWitnessFile  `yaml:"inputs"`
	Outputs []OutputWitnessFile `yaml:"outputs"`
}

func readWitnessFile(path string) (*WitnessFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read witness file")
	}

	file := new(WitnessFile)
	if err = yaml.Unmarshal(raw, file); err != nil {
		return nil, errors.Wrap(err, "unable to decode witness file")
	}
	return file, nil
}

func decodeHexField(value, field string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex in %s", field)
	}
	return b, nil
}

func encodeHexField(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return hex.EncodeToString(b)
}

// ToWire converts the description into a witness record.
func (f *WitnessFile) ToWire() (*wire.TxWitness, error) {
	w := wire.NewTxWitness(len(f.Inputs), len(f.Outputs))

	var err error
	for i, in := range f.Inputs {
		dst := &w.Inputs[i]
		dst.IssuanceAmountRangeProof, err = decodeHexField(in.IssuanceAmountRangeProof, "issuance_amount_range_proof")
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		dst.InflationKeysRangeProof, err = decodeHexField(in.InflationKeysRangeProof, "inflation_keys_range_proof")
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		if len(in.ScriptWitness) > 0 {
			dst.ScriptWitness = make(wire.ScriptWitness, len(in.ScriptWitness))
		}
		for j, item := range in.ScriptWitness {
			dst.ScriptWitness[j], err = decodeHexField(item, "script_witness")
			if err != nil {
				return nil, errors.Wrapf(err, "input %d item %d", i, j)
			}
		}
	}

	for i, out := range f.Outputs {
		dst := &w.Outputs[i]
		dst.SurjectionProof, err = decodeHexField(out.SurjectionProof, "surjection_proof")
		if err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
		dst.RangeProof, err = decodeHexField(out.RangeProof, "range_proof")
		if err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
	}

	return w, nil
}

// witnessFileFromWire converts a record back into its editable form.
func witnessFileFromWire(w *wire.TxWitness) *WitnessFile {
	f := &WitnessFile{
		Inputs:  make([]InputWitnessFile, w.NumInputs()),
		Outputs: make([]OutputWitnessFile, w.NumOutputs()),
	}

	for i := range f.Inputs {
		in := w.InWitness(i)
		f.Inputs[i].IssuanceAmountRangeProof = encodeHexField(in.IssuanceAmountRangeProof)
		f.Inputs[i].InflationKeysRangeProof = encodeHexField(in.InflationKeysRangeProof)
		for _, item := range in.ScriptWitness {
			f.Inputs[i].ScriptWitness = append(f.Inputs[i].ScriptWitness, hex.EncodeToString(item))
		}
	}
	for i := range f.Outputs {
		out := w.OutWitness(i)
		f.Outputs[i].SurjectionProof = encodeHexField(out.SurjectionProof)
		f.Outputs[i].RangeProof = encodeHexField(out.RangeProof)
	}
	return f
}
