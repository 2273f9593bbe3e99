package cosmwasm_test

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/axelarnetwork/axelar-contract-deployments/cosmwasm"
	"github.com/stretchr/testify/require"
)

func writeFakeWasm(t *testing.T, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	content := append([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, body...)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestLoadArtifact(t *testing.T) {
	path := writeFakeWasm(t, "voting_verifier.wasm", []byte("module body"))

	artifact, err := cosmwasm.LoadArtifact(path)
	require.NoError(t, err)
	require.Equal(t, "voting_verifier", artifact.Name)

	// Code is gzipped; uncompressing must give back the original bytes.
	reader, err := gzip.NewReader(bytes.NewReader(artifact.Code))
	require.NoError(t, err)
	raw, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, artifact.Size, len(raw))

	checksum := sha256.Sum256(raw)
	require.Equal(t, hex.EncodeToString(checksum[:]), artifact.Checksum)
}

func TestLoadArtifactRejectsNonWasm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_wasm.wasm")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0644))

	_, err := cosmwasm.LoadArtifact(path)
	require.ErrorIs(t, err, cosmwasm.ErrNotWasm)
}

func TestVerifyChecksum(t *testing.T) {
	path := writeFakeWasm(t, "router.wasm", []byte("router body"))

	artifact, err := cosmwasm.LoadArtifact(path)
	require.NoError(t, err)

	require.NoError(t, artifact.VerifyChecksum(""))
	require.NoError(t, artifact.VerifyChecksum(artifact.Checksum))
	require.NoError(t, artifact.VerifyChecksum("0x"+artifact.Checksum))
	require.ErrorIs(t, artifact.VerifyChecksum("deadbeef"), cosmwasm.ErrChecksumMismatch)
}

func TestSaltIsDeterministicAndScoped(t *testing.T) {
	require.Equal(t, cosmwasm.Salt("VotingVerifier", "avalanche"), cosmwasm.Salt("VotingVerifier", "avalanche"))
	require.NotEqual(t, cosmwasm.Salt("VotingVerifier", "avalanche"), cosmwasm.Salt("VotingVerifier", "fantom"))
	require.NotEqual(t, cosmwasm.Salt("VotingVerifier", ""), cosmwasm.Salt("Gateway", ""))
	require.Len(t, cosmwasm.Salt("Router", ""), 32)
	require.Len(t, cosmwasm.SaltHex("Router", ""), 64)
}
