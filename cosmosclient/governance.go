package cosmosclient

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	v1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"

	"github.com/axelarnetwork/axelar-contract-deployments/logging"
)

type ProposalData struct {
	Metadata  string
	Title     string
	Summary   string
	Deposit   sdk.Coins
	Expedited bool
}

// SubmitProposal wraps msgs in a gov v1 proposal and waits for inclusion,
// returning the assigned proposal id so operators can vote on it.
func (c *Client) SubmitProposal(msgs []sdk.Msg, proposalData ProposalData) (uint64, error) {
	proposalMsg, err := v1.NewMsgSubmitProposal(
		msgs,
		proposalData.Deposit,
		c.GetAddress(),
		proposalData.Metadata,
		proposalData.Title,
		proposalData.Summary,
		proposalData.Expedited,
	)
	if err != nil {
		return 0, err
	}

	result, err := c.manager.SendTransactionBlocking(proposalMsg)
	if err != nil {
		return 0, err
	}

	var resp v1.MsgSubmitProposalResponse
	if err := ParseMsgResponse(result.TxResult.Data, 0, &resp); err != nil {
		return 0, err
	}
	logging.Info("Submitted governance proposal", logging.Proposals,
		"proposal_id", resp.ProposalId, "title", proposalData.Title, "tx_hash", result.Hash.String())
	return resp.ProposalId, nil
}

// VoteProposal casts this account's vote on an open proposal.
func (c *Client) VoteProposal(proposalID uint64, option v1.VoteOption) error {
	voteMsg := v1.NewMsgVote(sdk.MustAccAddressFromBech32(c.GetAddress()), proposalID, option, "")
	_, err := c.manager.SendTransactionBlocking(voteMsg)
	return err
}

// GetProposalMsgSigner is the gov module account: the executor of every
// message inside a passed proposal.
func GetProposalMsgSigner() string {
	return authtypes.NewModuleAddress(govtypes.ModuleName).String()
}
