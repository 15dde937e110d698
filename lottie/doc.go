// Package lottie provides an in-memory model of a Lottie (bodymovin)
// animation document: layers, shapes, transforms and keyframed
// properties, with JSON marshalling in both directions.
//
// The model covers the subset of the format needed to host glyph
// geometry inside an animation template. Shape and layer types outside
// that subset survive a parse/serialize round trip verbatim as raw
// passthrough nodes.
//
// # Determinism
//
// Serialization is order-stable: fields are emitted in struct order and
// raw passthrough nodes are emitted byte-for-byte, so serializing the
// same document twice yields identical bytes.
//
// All coordinates and keyframe times are rounded to three decimal
// places via [Round] at the point where values enter the model. The
// precision is visually irrelevant at canvas scale but keeps output
// free of floating point noise between runs.
package lottie
