// SPDX-License-Identifier: EPL-2.0

// Package modulation implements the per-voice modulation matrix.
//
// Sources and targets are named by Identifiers: a four character group code,
// a four character element code and an index. A RoutingTable of MaxRoutings
// entries connects them with a depth and an optional Curve:
//
//	var m modulation.Matrix
//	m.Attach(&zone.Routings)
//	_ = m.BindSource(lfo1, &lfoValue)
//	_ = m.BindTarget(pan, &zonePan, &livePan, panMeta, nil)
//	m.Process() // livePan = zonePan + curve(lfoValue) * depth * span(panMeta)
//
// Depth is expressed as a fraction of the target's range, so a depth of 1
// on a bipolar percent target sweeps it by its full span. The span comes
// from the target's metadata unless an explicit Range override is given
// at bind time.
//
// Binding and Attach may allocate nothing but are meant for the control
// path; Process is allocation free and runs once per block.
package modulation
