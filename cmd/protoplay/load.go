package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/phanxgames/protoplay"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// loadDocument reads an exported document from path. Compressed exports
// are recognised by the zstd frame magic rather than the file extension.
func loadDocument(path string) (*protoplay.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return decodeDocument(f)
}

func decodeDocument(r io.Reader) (*protoplay.Document, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(zstdMagic))
	if !bytes.Equal(head, zstdMagic) {
		return protoplay.LoadDocument(br)
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()
	return protoplay.LoadDocument(dec)
}
