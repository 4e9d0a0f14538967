package embroidery

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// colFormat is the plain text color list: a line with the thread count
// followed by one "index,r,g,b" line per thread.
type colFormat struct{}

func (colFormat) Read(p *Pattern, r io.Reader) error {
	sc := bufio.NewScanner(r)
	count := -1
	var threads []Thread
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if count < 0 {
			n, err := strconv.Atoi(line)
			if err != nil || n < 0 {
				return fmt.Errorf("col: invalid thread count %q", line)
			}
			count = n
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return fmt.Errorf("col: expected index,r,g,b, got %q", line)
		}
		var rgb [3]uint8
		for i, f := range fields[1:] {
			v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
			if err != nil {
				return fmt.Errorf("col: invalid color component %q: %w", f, err)
			}
			rgb[i] = uint8(v)
		}
		threads = append(threads, Thread{Color: Color{R: rgb[0], G: rgb[1], B: rgb[2]}})
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if count < 0 {
		return errors.New("col: missing thread count")
	}
	if len(threads) != count {
		return fmt.Errorf("col: header announces %d threads, found %d", count, len(threads))
	}
	p.threads.Append(threads...)
	return nil
}

func (colFormat) Write(p *Pattern, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\r\n", p.threads.Len())
	for i, t := range p.threads.All() {
		fmt.Fprintf(bw, "%d,%d,%d,%d\r\n", i, t.Color.R, t.Color.G, t.Color.B)
	}
	return bw.Flush()
}

// rgbaColorFormat is the binary color list shared by .edr and .rgb files:
// four bytes per thread, red, green, blue and a zero pad byte.
type rgbaColorFormat struct{}

func (rgbaColorFormat) Read(p *Pattern, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data)%4 != 0 {
		return fmt.Errorf("color file length %d is not a multiple of 4", len(data))
	}
	threads := make([]Thread, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		threads = append(threads, Thread{Color: Color{R: data[i], G: data[i+1], B: data[i+2]}})
	}
	p.threads.Append(threads...)
	return nil
}

func (rgbaColorFormat) Write(p *Pattern, w io.Writer) error {
	buf := make([]byte, 0, 4*p.threads.Len())
	for _, t := range p.threads.All() {
		buf = append(buf, t.Color.R, t.Color.G, t.Color.B, 0)
	}
	_, err := w.Write(buf)
	return err
}

// infFormat is the binary thread information file. All integers are big
// endian. The header holds four uint32 values: 1, 8, the file size and the
// thread count. Each thread record starts with its length (uint16, not
// counting the length field itself) followed by the record number
// (uint16), red, green, blue, the needle number (uint16) and two
// nul-terminated strings, the thread type and the thread name.
type infFormat struct{}

const infThreadType = "RayonSE"

// infMinRecord is the size of the smallest thread record: the length field
// and nine bytes of fixed fields.
const infMinRecord = 2 + 9

func (infFormat) Read(p *Pattern, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(data) < 16 {
		return errors.New("inf: short header")
	}
	count := binary.BigEndian.Uint32(data[12:16])
	rest := data[16:]
	if uint64(count) > uint64(len(rest)/infMinRecord) {
		return fmt.Errorf("inf: header announces %d threads, file holds at most %d", count, len(rest)/infMinRecord)
	}
	threads := make([]Thread, 0, count)
	for i := 0; i < int(count); i++ {
		if len(rest) < 2 {
			return fmt.Errorf("inf: record %d truncated", i)
		}
		n := int(binary.BigEndian.Uint16(rest))
		rec := rest[2:]
		if n < 9 || len(rec) < n {
			return fmt.Errorf("inf: record %d has invalid length %d", i, n)
		}
		rec, rest = rec[:n], rec[n:]
		t := Thread{Color: Color{R: rec[2], G: rec[3], B: rec[4]}}
		strs := bytes.Split(rec[7:], []byte{0})
		if len(strs) > 1 {
			t.Description = string(strs[1])
		}
		threads = append(threads, t)
	}
	p.threads.Append(threads...)
	return nil
}

func (infFormat) Write(p *Pattern, w io.Writer) error {
	var body bytes.Buffer
	for i, t := range p.threads.All() {
		name := t.Description
		if name == "" {
			name = fmt.Sprintf("RA ACS %d", i)
		}
		n := 2 + 3 + 2 + len(infThreadType) + 1 + len(name) + 1
		if n > 0xffff {
			return fmt.Errorf("inf: thread %d name too long", i)
		}
		binary.Write(&body, binary.BigEndian, uint16(n))
		binary.Write(&body, binary.BigEndian, uint16(i))
		body.Write([]byte{t.Color.R, t.Color.G, t.Color.B})
		binary.Write(&body, binary.BigEndian, uint16(i))
		body.WriteString(infThreadType)
		body.WriteByte(0)
		body.WriteString(name)
		body.WriteByte(0)
	}

	header := make([]byte, 16)
	binary.BigEndian.PutUint32(header[0:], 1)
	binary.BigEndian.PutUint32(header[4:], 8)
	binary.BigEndian.PutUint32(header[8:], uint32(len(header)+body.Len()))
	binary.BigEndian.PutUint32(header[12:], uint32(p.threads.Len()))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := body.WriteTo(w)
	return err
}
