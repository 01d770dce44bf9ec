package protocol

// AuxId identifies a connection within a Chan. Zero is the primary
// connection; auxiliaries may only exist once the primary is established.
type AuxId uint8

// Primary is the reserved AuxId of a channel's main connection.
const Primary AuxId = 0

// MaxAuxId is the largest legal auxiliary id; a Chan may therefore hold
// at most 256 connections (Primary plus MaxAuxId auxiliaries).
const MaxAuxId AuxId = 255

// XId is a 32-bit OpenFlow transaction id. Sync XIds are allocated by the
// embedder before issuing a request; async XIds are allocated by the
// library for spontaneous messages such as Echo-Request.
type XId uint32
