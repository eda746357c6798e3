// Package protocol implements the binary wire format vtree uses to stream
// reconciliation results to live preview clients.
//
// # Wire Format
//
// Every message is a frame with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameSnapshot (0x01): full HTML of the tree at a version
//   - FramePatches (0x02): the op log of one patch
//   - FramePing (0x03): heartbeat, empty payload
//   - FrameError (0x04): a tree that failed to load
//
// # Encoding
//
//   - Varint: node ids, counts and versions (protobuf-style)
//   - Length-prefixed: strings prefixed with their varint length
//   - Big-endian: fixed-width integers in the frame header
//
// # Patches
//
// A patch payload is the tree version followed by the recorded ops. Each op
// is its kind byte and the fields that kind uses:
//
//	[Version: varint][Count: varint]
//	[Kind: 0x08][Node: varint][Name: string][Value: string]   SetAttr
//	[Kind: 0x04][Node: varint][Parent: varint][Ref: varint]   InsertBefore
//
// Node ids are the ones dom.Recorder assigned; 0 stands for "no node".
package protocol
