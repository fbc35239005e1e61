// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input decodes raw platform key records into normalized
// modifier sets and logical key names.
//
// Decoding is a pure function of the record: the same [RawKey] always
// produces the same [Decoded] value.
//
//	d := input.Decode(input.RawKey{Key: gpucontext.KeyEnter, Text: "\r"})
//	// d.Key == "Enter"
//
// Resolution order for the logical key:
//  1. Non-printable physical keys (Enter, Tab, arrows, F1-F12, modifier
//     keys themselves) map to their symbolic names.
//  2. Composed character data made only of combining marks decodes as
//     "Dead"; otherwise the first scalar of the text is the key.
//  3. Anything else decodes as "Unidentified".
package input
