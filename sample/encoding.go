// SPDX-License-Identifier: EPL-2.0

package sample

// Encoding names a raw PCM layout accepted by LoadData.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	U8
	I8
	I16LE
	I16BE
	I24LE
	I24BE
	I32LE
	I32BE
	F32LE
	F32BE
	F64LE
	F64BE
)

// BytesPerSample is the packed size of one value.
func (e Encoding) BytesPerSample() int {
	switch e {
	case U8, I8:
		return 1
	case I16LE, I16BE:
		return 2
	case I24LE, I24BE:
		return 3
	case I32LE, I32BE, F32LE, F32BE:
		return 4
	case F64LE, F64BE:
		return 8
	default:
		return 0
	}
}

// Storage returns the in-memory representation the encoding normalizes to.
func (e Encoding) Storage() Storage {
	switch e {
	case U8, I8, I16LE, I16BE:
		return StorageInt16
	case EncodingUnknown:
		return StorageNone
	default:
		if e > F64BE {
			return StorageNone
		}
		return StorageFloat32
	}
}

func (e Encoding) String() string {
	switch e {
	case U8:
		return "u8"
	case I8:
		return "i8"
	case I16LE:
		return "i16le"
	case I16BE:
		return "i16be"
	case I24LE:
		return "i24le"
	case I24BE:
		return "i24be"
	case I32LE:
		return "i32le"
	case I32BE:
		return "i32be"
	case F32LE:
		return "f32le"
	case F32BE:
		return "f32be"
	case F64LE:
		return "f64le"
	case F64BE:
		return "f64be"
	default:
		return "unknown"
	}
}

// Storage is the normalized in-memory sample type.
type Storage int

const (
	StorageNone Storage = iota
	StorageInt16
	StorageFloat32
)

func (s Storage) String() string {
	switch s {
	case StorageInt16:
		return "int16"
	case StorageFloat32:
		return "float32"
	default:
		return "none"
	}
}
