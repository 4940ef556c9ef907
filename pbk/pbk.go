// Package pbk encodes a phone book in the PBK1 binary layout:
//
//	magic      "PBK1"
//	count      uint32, little-endian
//	count times:
//	  name       uint16 length + UTF-8 bytes
//	  phoneCount uint16
//	  phoneCount times:
//	    number   uint16 length + UTF-8 bytes
//	    type     uint16 length + UTF-8 bytes
//
// All integers are little-endian.
package pbk

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"phonebook/contact"
)

// Magic opens every PBK1 stream.
const Magic = "PBK1"

var (
	ErrBadMagic      = errors.New("pbk: bad magic")
	ErrTrailingData  = errors.New("pbk: trailing data after last contact")
	ErrFieldTooLong  = errors.New("pbk: field longer than 65535 bytes")
	ErrTooManyPhones = errors.New("pbk: more than 65535 phones in a contact")
	ErrInvalidText   = errors.New("pbk: text field is not valid UTF-8")
)

// Marshal encodes contacts, skipping nil entries.
func Marshal(contacts []*contact.Contact) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, contacts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a whole PBK1 blob. An empty blob is an empty book.
func Unmarshal(data []byte) ([]*contact.Contact, error) {
	return Decode(bytes.NewReader(data))
}

func Encode(w io.Writer, contacts []*contact.Contact) error {
	var kept []*contact.Contact
	for _, c := range contacts {
		if c != nil {
			kept = append(kept, c)
		}
	}
	if uint64(len(kept)) > math.MaxUint32 {
		return fmt.Errorf("pbk: %d contacts do not fit the count field", len(kept))
	}

	bw := bufio.NewWriter(w)
	enc := encoder{w: bw}
	enc.raw([]byte(Magic))
	enc.u32(uint32(len(kept)))
	for _, c := range kept {
		enc.str(c.Name)
		if len(c.Phones) > math.MaxUint16 {
			return fmt.Errorf("contact %q: %w", c.Name, ErrTooManyPhones)
		}
		enc.u16(uint16(len(c.Phones)))
		for _, p := range c.Phones {
			enc.str(p.Number())
			enc.str(string(p.Type()))
		}
		if enc.err != nil {
			return fmt.Errorf("contact %q: %w", c.Name, enc.err)
		}
	}
	if enc.err != nil {
		return enc.err
	}
	return bw.Flush()
}

// Decode reads a whole PBK1 stream. A stream that ends before the magic is
// an empty book; any other truncation is an error, as is data left after the
// last contact.
func Decode(r io.Reader) ([]*contact.Contact, error) {
	dec := decoder{r: bufio.NewReader(r)}

	magic := make([]byte, len(Magic))
	n, err := io.ReadFull(dec.r, magic)
	if n == 0 && errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pbk: read magic: %w", err)
	}
	if string(magic) != Magic {
		return nil, ErrBadMagic
	}

	count := dec.u32()
	// The count comes from the file; do not trust it for allocation.
	contacts := make([]*contact.Contact, 0, min(count, 1024))
	for i := uint32(0); i < count && dec.err == nil; i++ {
		name := dec.str()
		phoneCount := dec.u16()
		phones := make([]*contact.PhoneNumber, 0, phoneCount)
		for j := uint16(0); j < phoneCount && dec.err == nil; j++ {
			number := dec.str()
			kind := dec.str()
			phones = append(phones, contact.NewPhoneNumber(number, contact.Type(kind)))
		}
		contacts = append(contacts, contact.New(name, phones...))
	}
	if dec.err != nil {
		return nil, fmt.Errorf("pbk: decode contact %d: %w", len(contacts), dec.err)
	}

	if _, err := dec.r.ReadByte(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return contacts, nil
}

type encoder struct {
	w   io.Writer
	err error
	buf [4]byte
}

func (e *encoder) raw(b []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(b)
	}
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.buf[:2], v)
	e.raw(e.buf[:2])
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[:4], v)
	e.raw(e.buf[:4])
}

func (e *encoder) str(s string) {
	if len(s) > math.MaxUint16 {
		if e.err == nil {
			e.err = ErrFieldTooLong
		}
		return
	}
	e.u16(uint16(len(s)))
	e.raw([]byte(s))
}

type decoder struct {
	r   *bufio.Reader
	err error
	buf [4]byte
}

func (d *decoder) full(b []byte) {
	if d.err != nil {
		return
	}
	if _, err := io.ReadFull(d.r, b); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		d.err = err
	}
}

func (d *decoder) u16() uint16 {
	d.full(d.buf[:2])
	if d.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(d.buf[:2])
}

func (d *decoder) u32() uint32 {
	d.full(d.buf[:4])
	if d.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(d.buf[:4])
}

func (d *decoder) str() string {
	n := d.u16()
	if d.err != nil || n == 0 {
		return ""
	}
	b := make([]byte, n)
	d.full(b)
	if d.err == nil && !utf8.Valid(b) {
		d.err = ErrInvalidText
	}
	return string(b)
}
