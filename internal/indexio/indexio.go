// Package indexio persists seed indexes.
//
// Layout: magic "PBIX", version u16, fingerprint u64, payload length u64,
// CRC-32 of the payload u32, then the gob-encoded seed.Snapshot. Loading
// verifies the checksum and recomputes the fingerprint.
package indexio

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/snksoft/crc"

	"pblast/core/seed"
	"pblast/internal/matrixio"
)

var (
	ErrBadMagic    = errors.New("indexio: not a seed index file")
	ErrChecksum    = errors.New("indexio: checksum mismatch")
	ErrFingerprint = errors.New("indexio: fingerprint mismatch")
)

var magic = [4]byte{'P', 'B', 'I', 'X'}

const version uint16 = 1

type header struct {
	Version     uint16
	Fingerprint uint64
	Length      uint64
	CRC         uint32
}

// Write serializes idx to w.
func Write(w io.Writer, idx *seed.Index) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(idx.Snapshot()); err != nil {
		return fmt.Errorf("indexio: encode: %w", err)
	}
	h := header{
		Version:     version,
		Fingerprint: idx.Fingerprint(),
		Length:      uint64(payload.Len()),
		CRC:         uint32(crc.CalculateCRC(crc.CRC32, payload.Bytes())),
	}
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	_, err := w.Write(payload.Bytes())
	return err
}

// Read deserializes and verifies an index.
func Read(r io.Reader) (*seed.Index, error) {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil || m != magic {
		return nil, ErrBadMagic
	}
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("indexio: header: %w", err)
	}
	if h.Version != version {
		return nil, fmt.Errorf("indexio: unsupported version %d", h.Version)
	}
	const maxPayload = 1 << 40
	if h.Length > maxPayload {
		return nil, fmt.Errorf("indexio: implausible payload length %d", h.Length)
	}
	payload := make([]byte, h.Length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("indexio: truncated payload: %w", err)
	}
	if got := uint32(crc.CalculateCRC(crc.CRC32, payload)); got != h.CRC {
		return nil, fmt.Errorf("%w: stored %08x, computed %08x", ErrChecksum, h.CRC, got)
	}
	var snap seed.Snapshot
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("indexio: decode: %w", err)
	}
	idx, err := seed.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	if fp := idx.Fingerprint(); fp != h.Fingerprint {
		return nil, fmt.Errorf("%w: stored %016x, computed %016x", ErrFingerprint, h.Fingerprint, fp)
	}
	return idx, nil
}

// Save writes idx to path (".gz" compresses, "-" is stdout).
func Save(path string, idx *seed.Index) (err error) {
	wc, err := matrixio.CreateOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Write(wc, idx)
}

// Load reads an index from path.
func Load(path string) (*seed.Index, error) {
	rc, err := matrixio.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	idx, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}
