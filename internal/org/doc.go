// Package org provides structure detection for outline documents with
// property drawers.
//
// A property drawer is a block of record lines between ":PROPERTIES:"
// and ":END:". Each record is a single line of the form
//
//	:NAME: value
//	:NAME+: more value
//
// where the trailing '+' marks a continuation record: a storage-layer
// wrapping device that lets one logical value span several record
// lines. A primary record plus its trailing continuations form a
// logical property; the logical value is the join of the record values
// in order.
//
// Values may embed the literal two-character sequence `\n` to request a
// hard break when the value is reflowed. The sequence is data, never an
// actual newline.
package org
