// Package pdftrace is a minimal PDF reader used by tests to verify the
// documents this module generates: page count, page dimensions, and
// image placements. It understands exactly the subset our assembler
// emits (classic xref tables, direct /Length values, FlateDecode) and
// nothing more.
package pdftrace

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type of a PDF object value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindName
	KindArray
	KindDict
	KindStream
	KindRef
)

// Value holds any PDF object value.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Real   float64
	Str    []byte
	Name   string
	Arr    []Value
	Dict   Dict
	Stream []byte // raw, possibly compressed stream data
	Ref    Ref
}

// Ref is an indirect object reference.
type Ref struct {
	Num, Gen int
}

// Dict is a PDF dictionary.
type Dict map[string]Value

// Float returns a numeric value as float64.
func (v Value) Float() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Real
}

// Document is a parsed PDF, just deep enough for verification.
type Document struct {
	data    []byte
	xref    map[int]int64
	trailer Dict
	cache   map[int]Value
}

// Load parses a PDF from raw bytes.
func Load(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("pdftrace: not a PDF")
	}
	d := &Document{
		data:  data,
		xref:  make(map[int]int64),
		cache: make(map[int]Value),
	}
	if err := d.loadXRef(); err != nil {
		return nil, fmt.Errorf("pdftrace: loading xref: %w", err)
	}
	return d, nil
}

// loadXRef locates startxref and parses the classic xref table plus trailer.
func (d *Document) loadXRef() error {
	tail := len(d.data) - 1024
	if tail < 0 {
		tail = 0
	}
	idx := bytes.LastIndex(d.data[tail:], []byte("startxref"))
	if idx < 0 {
		return fmt.Errorf("startxref not found")
	}
	lx := newLexer(d.data, tail+idx+len("startxref"))
	lx.skipSpace()
	offset, err := strconv.ParseInt(lx.token(), 10, 64)
	if err != nil {
		return fmt.Errorf("bad startxref offset: %w", err)
	}

	for offset > 0 {
		prev, err := d.loadXRefSection(offset)
		if err != nil {
			return err
		}
		offset = prev
	}
	return nil
}

// loadXRefSection parses one xref table and trailer, returning the /Prev
// offset if present.
func (d *Document) loadXRefSection(offset int64) (int64, error) {
	if offset < 0 || int(offset) >= len(d.data) {
		return 0, fmt.Errorf("xref offset %d out of bounds", offset)
	}
	lx := newLexer(d.data, int(offset))
	lx.skipSpace()
	if !lx.expect("xref") {
		return 0, fmt.Errorf("no xref table at offset %d", offset)
	}

	for {
		lx.skipSpace()
		if bytes.HasPrefix(d.data[lx.pos:], []byte("trailer")) {
			lx.pos += len("trailer")
			break
		}
		first, err1 := strconv.Atoi(lx.token())
		lx.skipSpace()
		count, err2 := strconv.Atoi(lx.token())
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("bad xref subsection header")
		}
		lx.skipSpace()
		// Entries are exactly 20 bytes: "nnnnnnnnnn ggggg n\r\n"
		for i := 0; i < count; i++ {
			if lx.pos+20 > len(d.data) {
				return 0, fmt.Errorf("truncated xref entry")
			}
			entry := string(d.data[lx.pos : lx.pos+20])
			lx.pos += 20
			if entry[17] == 'n' {
				off, _ := strconv.ParseInt(strings.TrimSpace(entry[:10]), 10, 64)
				id := first + i
				if _, seen := d.xref[id]; !seen {
					d.xref[id] = off
				}
			}
		}
	}

	lx.skipSpace()
	trailer, err := lx.value()
	if err != nil {
		return 0, fmt.Errorf("parsing trailer: %w", err)
	}
	if trailer.Kind != KindDict {
		return 0, fmt.Errorf("trailer is not a dict")
	}
	if d.trailer == nil {
		d.trailer = trailer.Dict
	}
	if prev, ok := trailer.Dict["Prev"]; ok && prev.Kind == KindInt {
		return prev.Int, nil
	}
	return 0, nil
}

// resolve follows an indirect reference, if v is one.
func (d *Document) resolve(v Value) (Value, error) {
	if v.Kind != KindRef {
		return v, nil
	}
	if obj, ok := d.cache[v.Ref.Num]; ok {
		return obj, nil
	}
	off, ok := d.xref[v.Ref.Num]
	if !ok {
		return Value{}, fmt.Errorf("pdftrace: unresolved ref %d", v.Ref.Num)
	}
	if off < 0 || int(off) >= len(d.data) {
		return Value{}, fmt.Errorf("pdftrace: ref %d offset out of bounds", v.Ref.Num)
	}

	lx := newLexer(d.data, int(off))
	lx.skipSpace()
	lx.token() // object number
	lx.skipSpace()
	lx.token() // generation
	lx.skipSpace()
	if !lx.expect("obj") {
		return Value{}, fmt.Errorf("pdftrace: expected obj for ref %d", v.Ref.Num)
	}
	obj, err := lx.value()
	if err != nil {
		return Value{}, fmt.Errorf("pdftrace: parsing object %d: %w", v.Ref.Num, err)
	}
	d.cache[v.Ref.Num] = obj
	return obj, nil
}

// catalog returns the document catalog.
func (d *Document) catalog() (Dict, error) {
	root, ok := d.trailer["Root"]
	if !ok {
		return nil, fmt.Errorf("pdftrace: no /Root in trailer")
	}
	obj, err := d.resolve(root)
	if err != nil {
		return nil, err
	}
	if obj.Kind != KindDict {
		return nil, fmt.Errorf("pdftrace: catalog is not a dict")
	}
	return obj.Dict, nil
}

// Pages returns all page dictionaries in document order.
func (d *Document) Pages() ([]Dict, error) {
	cat, err := d.catalog()
	if err != nil {
		return nil, err
	}
	rootRef, ok := cat["Pages"]
	if !ok {
		return nil, fmt.Errorf("pdftrace: no /Pages in catalog")
	}
	root, err := d.resolve(rootRef)
	if err != nil {
		return nil, err
	}
	if root.Kind != KindDict {
		return nil, fmt.Errorf("pdftrace: pages root is not a dict")
	}
	var pages []Dict
	if err := d.collect(root.Dict, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (d *Document) collect(node Dict, pages *[]Dict) error {
	if t, ok := node["Type"]; ok && t.Kind == KindName && t.Name == "Page" {
		*pages = append(*pages, node)
		return nil
	}
	kids, ok := node["Kids"]
	if !ok {
		return nil
	}
	resolved, err := d.resolve(kids)
	if err != nil || resolved.Kind != KindArray {
		return err
	}
	for _, kidRef := range resolved.Arr {
		kid, err := d.resolve(kidRef)
		if err != nil {
			return err
		}
		if kid.Kind == KindDict || kid.Kind == KindStream {
			if err := d.collect(kid.Dict, pages); err != nil {
				return err
			}
		}
	}
	return nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() (int, error) {
	pages, err := d.Pages()
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// MediaBox returns the page width and height, following /Parent when the
// box is inherited.
func (d *Document) MediaBox(page Dict) (w, h float64, err error) {
	node := page
	for depth := 0; node != nil && depth < 32; depth++ {
		if mb, ok := node["MediaBox"]; ok {
			box, err := d.resolve(mb)
			if err != nil {
				return 0, 0, err
			}
			if box.Kind != KindArray || len(box.Arr) < 4 {
				return 0, 0, fmt.Errorf("pdftrace: malformed /MediaBox")
			}
			w = box.Arr[2].Float() - box.Arr[0].Float()
			h = box.Arr[3].Float() - box.Arr[1].Float()
			return w, h, nil
		}
		parent, ok := node["Parent"]
		if !ok {
			break
		}
		p, err := d.resolve(parent)
		if err != nil || p.Kind != KindDict {
			break
		}
		node = p.Dict
	}
	return 0, 0, fmt.Errorf("pdftrace: no /MediaBox")
}
