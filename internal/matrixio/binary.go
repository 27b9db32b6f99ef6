// internal/matrixio/binary.go
package matrixio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/snksoft/crc"

	"pblast/core/probmat"
)

var (
	ErrBadMagic = errors.New("matrixio: not a binary matrix file")
	ErrChecksum = errors.New("matrixio: checksum mismatch")
	ErrFormat   = errors.New("matrixio: malformed matrix input")
)

var binaryMagic = [4]byte{'P', 'B', 'M', 'X'}

const binaryVersion uint16 = 1

// header: magic[4] version u16 rows u64; payload: rows×4 float64; trailer: crc32 u32

// WriteBinary writes m in the binary format.
func WriteBinary(w io.Writer, m *probmat.Matrix) error {
	payload := make([]byte, 0, m.Len()*probmat.Size*8)
	for _, r := range m.Rows() {
		for _, v := range r {
			payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(v))
		}
	}
	var hdr bytes.Buffer
	hdr.Write(binaryMagic[:])
	_ = binary.Write(&hdr, binary.LittleEndian, binaryVersion)
	_ = binary.Write(&hdr, binary.LittleEndian, uint64(m.Len()))
	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	sum := uint32(crc.CalculateCRC(crc.CRC32, payload))
	return binary.Write(w, binary.LittleEndian, sum)
}

// ReadBinary parses the binary format and verifies its checksum.
func ReadBinary(r io.Reader) (*probmat.Matrix, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if magic != binaryMagic {
		return nil, ErrBadMagic
	}
	var version uint16
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != binaryVersion {
		return nil, fmt.Errorf("%w: unsupported binary version %d", ErrFormat, version)
	}
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	const maxRows = 1 << 36
	if n == 0 || n > maxRows {
		return nil, fmt.Errorf("%w: implausible row count %d", ErrFormat, n)
	}
	payload := make([]byte, n*probmat.Size*8)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrFormat, err)
	}
	var want uint32
	if err := binary.Read(r, binary.LittleEndian, &want); err != nil {
		return nil, fmt.Errorf("%w: missing checksum: %v", ErrFormat, err)
	}
	if got := uint32(crc.CalculateCRC(crc.CRC32, payload)); got != want {
		return nil, fmt.Errorf("%w: stored %08x, computed %08x", ErrChecksum, want, got)
	}
	rows := make([]probmat.Row, n)
	for i := range rows {
		for j := 0; j < probmat.Size; j++ {
			off := (i*probmat.Size + j) * 8
			rows[i][j] = math.Float64frombits(binary.LittleEndian.Uint64(payload[off:]))
		}
	}
	return probmat.New(rows)
}
