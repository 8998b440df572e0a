// Package coder reads and writes byte buffers using the encoding rules of
// .NET's System.IO.BinaryWriter and BinaryReader.
//
// Fixed-size values are stored little-endian. Integers written with
// WriteVarint32 or WriteVarint64 use 7 value bits per byte with the high bit
// set on every byte but the last. Strings are a varint32 byte count followed
// by the UTF-8 bytes or the little-endian UTF-16 code units. Nothing on the
// wire says which string encoding was used, so readers must call the
// matching method.
//
// A Decoder never copies the byte slices it returns; they alias the buffer
// passed to NewDecoder and stay valid only as long as that buffer does.
//
// Decoding from an incremental source is possible by saving Remaining before
// a read. If the read fails with ErrNeedsMoreData, the Decoder may already
// have consumed part of the value, so build a new Decoder from the saved
// bytes plus the newly arrived ones and read again.
package coder
