// Package normalisers holds the pure reconciliation stages that turn
// backend payloads into the canonical preview model:
//
//   - jobshape: raw job JSON in any known shape to a NormalizedJob
//   - photoindex: sector inference and the latest-wins photo index
//   - photourl: display URLs from partial storage keys
//
// None of them perform I/O and none of them return errors for malformed
// input. Services reach them through the driven ports.
package normalisers
