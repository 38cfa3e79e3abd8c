// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// rawLoader stands in for a real decoder and reads a tiny container: "RAW1", uint32 frames, then
// little endian int16 mono PCM.
type rawLoader struct {
	calls atomic.Int32
}

var errBadRaw = errors.New("not a raw file")

func (l *rawLoader) Load(r io.ReadSeeker, s *Sample) error {
	l.calls.Add(1)

	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return err
	}
	if string(hdr[:4]) != "RAW1" {
		return errBadRaw
	}
	frames := int(binary.LittleEndian.Uint32(hdr[4:]))
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := s.SetMeta(1, 44100, frames); err != nil {
		return err
	}
	return s.LoadData(0, I16LE, data, 0)
}

func writeRaw(t *testing.T, dir, name string, values ...int16) string {
	t.Helper()

	buf := make([]byte, 8+2*len(values))
	copy(buf, "RAW1")
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(values)))
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[8+2*i:], uint16(v))
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func newTestManager() (*Manager, *rawLoader) {
	l := &rawLoader{}
	reg := NewRegistry()
	reg.Register(FormatWAV, l)
	return NewManager(reg), l
}

func TestManagerLoad(t *testing.T) {
	t.Parallel()

	m, l := newTestManager()
	p := writeRaw(t, t.TempDir(), "a.wav", 0, 16384, -16384)

	id, err := m.Load(context.Background(), p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if id != IDFromPath(p) {
		t.Errorf("id = %v, want IDFromPath", id)
	}

	s, ok := m.Get(id)
	if !ok || s.Frames() != 3 || s.DisplayName != "a.wav" || s.Format != FormatWAV {
		t.Fatalf("Get() = %+v, %v", s, ok)
	}

	again, err := m.LoadFormat(context.Background(), p, FormatWAV)
	if err != nil || again != id {
		t.Fatalf("reload of published path = %v, %v", again, err)
	}
	if l.calls.Load() != 1 {
		t.Errorf("loader called %d times, want 1", l.calls.Load())
	}
}

func TestManagerUnknownFormat(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager()
	p := writeRaw(t, t.TempDir(), "a.xyz", 1)

	if _, err := m.Load(context.Background(), p); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load() error = %v, want ErrUnknownFormat", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after failed load", m.Len())
	}
}

func TestManagerReloadFailureKeepsPublishedSample(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager()
	dir := t.TempDir()
	p := writeRaw(t, dir, "a.wav", 1, 2, 3)

	id, err := m.Load(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := m.Get(id)

	if err := os.WriteFile(p, []byte("garbage!"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Reload(context.Background(), id); err == nil {
		t.Fatal("Reload() of a corrupt file succeeded")
	}

	after, _ := m.Get(id)
	if after != before || after.Frames() != 3 {
		t.Error("failed reload replaced the published sample")
	}
}

func TestManagerRefCounting(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager()
	var s Sample
	_ = s.SetMeta(1, 44100, 2)
	_ = s.LoadFloats(0, []float32{0, 1}, 0, 1)
	id := m.Add(&s)
	if id == NilID {
		t.Fatal("Add() returned nil id")
	}

	h := m.Acquire(id)
	if h == nil || h.RefCount() != 1 {
		t.Fatalf("Acquire() = %v", h)
	}
	h.Retain()

	if err := m.Remove(id); !errors.Is(err, ErrSampleInUse) {
		t.Errorf("Remove() in use = %v, want ErrSampleInUse", err)
	}
	if err := m.Reload(context.Background(), id); !errors.Is(err, ErrSampleInUse) {
		t.Errorf("Reload() in use = %v, want ErrSampleInUse", err)
	}

	h.Release()
	h.Release()
	h.Release() // extra release is ignored
	if h.RefCount() != 0 {
		t.Fatalf("RefCount() = %d, want 0", h.RefCount())
	}

	if err := m.Remove(id); err != nil {
		t.Errorf("Remove() = %v", err)
	}
	if m.Acquire(id) != nil {
		t.Error("Acquire() after Remove returned a handle")
	}
	if err := m.Remove(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove() = %v, want ErrNotFound", err)
	}

	var nilHandle *Shared
	nilHandle.Retain()
	nilHandle.Release()
	if nilHandle.Sample() != nil || nilHandle.RefCount() != 0 {
		t.Error("nil handle should be inert")
	}
}

func TestManagerLoadAll(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager()
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"a.wav", "b.wav", "c.wav", "d.wav"} {
		paths = append(paths, writeRaw(t, dir, name, 1, 2))
	}

	ids, err := m.LoadAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	for i, id := range ids {
		if id != IDFromPath(paths[i]) {
			t.Errorf("ids[%d] does not match its path", i)
		}
	}
	if m.Len() != len(paths) {
		t.Errorf("Len() = %d, want %d", m.Len(), len(paths))
	}

	_, err = m.LoadAll(context.Background(), []string{filepath.Join(dir, "missing.wav")})
	if err == nil {
		t.Error("LoadAll() with a missing file succeeded")
	}
}

func TestManagerMissingList(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager()
	a, b := NewID(), NewID()

	m.NoteMissing(a, "a.wav")
	m.NoteMissing(a, "a.wav")
	m.NoteMissing(b, "b.wav")
	if got := m.Missing(); len(got) != 2 {
		t.Fatalf("Missing() = %v, want 2 entries", got)
	}

	var s Sample
	_ = s.SetMeta(1, 44100, 1)
	_ = s.LoadFloats(0, []float32{0}, 0, 1)
	s.ID = a
	m.Add(&s)
	if got := m.Missing(); len(got) != 1 || got[0].ID != b {
		t.Errorf("Missing() after Add = %v", got)
	}

	m.ResetMissingList()
	if len(m.Missing()) != 0 {
		t.Error("ResetMissingList() left entries")
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		header []byte
		want   string
	}{
		{"riff", "x.bin", []byte("RIFF\x00\x00\x00\x00WAVE"), FormatWAV},
		{"aiff", "x.bin", []byte("FORM\x00\x00\x00\x00AIFF"), FormatAIFF},
		{"aifc", "x.bin", []byte("FORM\x00\x00\x00\x00AIFC"), FormatAIFF},
		{"ogg", "x.bin", []byte("OggS\x00\x02"), FormatVorbis},
		{"id3", "x.bin", []byte("ID3\x04"), FormatMP3},
		{"mpeg sync", "x.bin", []byte{0xFF, 0xFB, 0x90}, FormatMP3},
		{"extension", "Kick.WAV", []byte("junk"), FormatWAV},
		{"aif extension", "pad.aif", nil, FormatAIFF},
		{"unknown", "notes.txt", []byte("hello world!"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectFormat(tt.path, tt.header); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIDFromPathIsStable(t *testing.T) {
	t.Parallel()

	if IDFromPath("a/b.wav") != IDFromPath("a/b.wav") {
		t.Error("IDFromPath not deterministic")
	}
	if IDFromPath("a/b.wav") == IDFromPath("a/c.wav") {
		t.Error("distinct paths share an id")
	}
}

func TestRegistryFormats(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("wav", LoaderFunc(func(io.ReadSeeker, *Sample) error { return nil }))
	r.Register("aiff", LoaderFunc(func(io.ReadSeeker, *Sample) error { return nil }))

	got := r.Formats()
	if len(got) != 2 || got[0] != "aiff" || got[1] != "wav" {
		t.Errorf("Formats() = %v", got)
	}
	if _, ok := r.Get("mp3"); ok {
		t.Error("Get() found an unregistered format")
	}
}
