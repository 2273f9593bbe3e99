package cosmwasm

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotWasm          = errors.New("file is not a wasm binary")
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")

	wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}
)

// Artifact is a contract binary ready to store: the code is gzipped (the
// chain transparently unzips it) and the checksum is the sha256 of the raw
// wasm, which is what the chain records and the registry compares against.
type Artifact struct {
	Name     string
	Code     []byte
	Checksum string
	Size     int
}

func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}
	if len(raw) < len(wasmMagic) || !bytes.Equal(raw[:len(wasmMagic)], wasmMagic) {
		return nil, fmt.Errorf("%w: %s", ErrNotWasm, path)
	}

	checksum := sha256.Sum256(raw)

	var compressed bytes.Buffer
	writer := gzip.NewWriter(&compressed)
	if _, err := writer.Write(raw); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), ".wasm")
	return &Artifact{
		Name:     name,
		Code:     compressed.Bytes(),
		Checksum: hex.EncodeToString(checksum[:]),
		Size:     len(raw),
	}, nil
}

// VerifyChecksum aborts a store operation when the artifact on disk is not
// the binary the operator reviewed. Empty expected skips the check.
func (a *Artifact) VerifyChecksum(expected string) error {
	if expected == "" {
		return nil
	}
	if !strings.EqualFold(strings.TrimPrefix(expected, "0x"), a.Checksum) {
		return fmt.Errorf("%w: artifact %s: expected %s, computed %s",
			ErrChecksumMismatch, a.Name, expected, a.Checksum)
	}
	return nil
}
