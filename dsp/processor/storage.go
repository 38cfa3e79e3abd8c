// SPDX-License-Identifier: EPL-2.0

package processor

// Storage holds the parameters of one chain slot. Zones own the persisted
// copy; voices keep a live copy the modulation matrix writes into.
type Storage struct {
	Type        Type
	Mix         float32
	FloatParams [MaxFloatParams]float32
	IntParams   [MaxIntParams]int32
}

// DefaultStorage returns storage for t with every parameter at its default.
func DefaultStorage(t Type) Storage {
	st := Storage{Type: t}
	st.LoadDefaults()
	return st
}

// LoadDefaults resets the mix and every declared parameter of st.Type.
// Undeclared slots are zeroed.
func (st *Storage) LoadDefaults() {
	st.Mix = 1
	st.FloatParams = [MaxFloatParams]float32{}
	st.IntParams = [MaxIntParams]int32{}
	if !st.Type.Valid() {
		return
	}
	def := &definitions[st.Type]
	for i, md := range def.floats {
		st.FloatParams[i] = md.DefaultValue
	}
	for i, md := range def.ints {
		st.IntParams[i] = int32(md.DefaultValue)
	}
}
