package cosmosclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProposalMsgSigner(t *testing.T) {
	// The gov module address is deterministic; every execute-by-governance
	// message must name it as sender or the proposal fails on execution.
	signer := GetProposalMsgSigner()
	assert.NotEmpty(t, signer)
	assert.Equal(t, signer, GetProposalMsgSigner())
}
