package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tron-wallet-core/internal/layout"
	"tron-wallet-core/internal/tron"
	"tron-wallet-core/internal/tron/trontest"
	"tron-wallet-core/pkg/address"
)

var owner = mustDecode(trontest.AddressAbandon)

func mustDecode(s string) address.Address {
	addr, err := address.Decode(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func seg(style layout.Style, text string) layout.Segment {
	return layout.Segment{Style: style, Text: text}
}

func TestBuildEveryKind(t *testing.T) {
	type want struct {
		title string
		icon  layout.Icon
		lines []layout.Segment
	}

	cases := map[tron.Kind]want{
		tron.KindTransfer: {"Confirm sending", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "5 TRX"),
			seg(layout.Mono, "To: TMVQGm1qAQYV"),
			seg(layout.Mono, "detCeGRRkTWYYrLX"),
			seg(layout.Mono, "uHK2HC"),
		}},
		tron.KindTransferAsset: {"Confirm sending", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "42 1002000"),
			seg(layout.Mono, "To: TMVQGm1qAQYV"),
			seg(layout.Mono, "detCeGRRkTWYYrLX"),
			seg(layout.Mono, "uHK2HC"),
		}},
		tron.KindVoteWitness: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "SR Voting"),
			seg(layout.Normal, "N. Candidates: 2"),
			seg(layout.Normal, "Total Votes: 15"),
		}},
		tron.KindWitnessCreate: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Apply for SR"),
			seg(layout.Mono, "URL: https://witne"),
			seg(layout.Mono, "ss.example.org"),
		}},
		tron.KindAssetIssue: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Create Token"),
			seg(layout.Normal, "TestToken"),
			seg(layout.Normal, "1000000 TT"),
			seg(layout.Mono, "Ratio 1:10"),
		}},
		tron.KindWitnessUpdate: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Update Witness"),
			seg(layout.Normal, trontest.AddressAbandon),
			seg(layout.Mono, "URL: https://new"),
			seg(layout.Mono, ".example.org"),
		}},
		tron.KindParticipateAssetIssue: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Token Participate:"),
			seg(layout.Mono, "1002000"),
			seg(layout.Bold, "Amount:"),
			seg(layout.Mono, "300"),
		}},
		tron.KindAccountUpdate: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Account Update"),
			seg(layout.Mono, "Name:"),
			seg(layout.Mono, "savings"),
		}},
		tron.KindFreezeBalance: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Freeze Balance"),
			seg(layout.Mono, "Amount:"),
			seg(layout.Bold, "2.5 TRX"),
			seg(layout.Mono, "Days: 3"),
		}},
		tron.KindUnfreezeBalance: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Unfreeze Balance"),
			seg(layout.Mono, "Total frozen balan"),
			seg(layout.Mono, "ce will be unfreez"),
			seg(layout.Mono, "e."),
		}},
		tron.KindWithdrawBalance: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Withdraw Balance"),
			seg(layout.Mono, "Total allowance wi"),
			seg(layout.Mono, "thdraw to your acc"),
			seg(layout.Mono, "ount."),
		}},
		tron.KindUnfreezeAsset: {"Confirm transaction", layout.IconSend, []layout.Segment{
			seg(layout.Bold, "Unfreeze Assets"),
			seg(layout.Mono, "Unfreeze expired f"),
			seg(layout.Mono, "rozen assets."),
		}},
		tron.KindUpdateAsset: {"Confirm transaction", layout.IconConfirm, []layout.Segment{
			seg(layout.Bold, "Update Token"),
			seg(layout.Mono, "updated descriptio"),
			seg(layout.Mono, "n"),
			seg(layout.Mono, "https://token.example.org"),
		}},
		tron.KindProposalApprove: {"Confirm transaction", layout.IconConfirm, []layout.Segment{
			seg(layout.Bold, "Proposal Approval"),
			seg(layout.Mono, "ID: 7"),
			seg(layout.Mono, "Approve: true"),
		}},
		tron.KindProposalDelete: {"Confirm transaction", layout.IconConfirm, []layout.Segment{
			seg(layout.Bold, "Proposal Delete"),
			seg(layout.Mono, "ID: 7"),
		}},
	}

	contracts := trontest.Contracts()
	for _, kind := range tron.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			prompts, err := layout.Build(trontest.Transaction(contracts[kind]), owner)
			require.NoError(t, err)
			require.NotEmpty(t, prompts)

			if kind == tron.KindProposalCreate {
				// 单独测试
				return
			}

			w, ok := cases[kind]
			require.True(t, ok, "缺少 %s 的期望内容", kind)
			require.Len(t, prompts, 1)
			p := prompts[0]
			assert.Equal(t, w.title, p.Title)
			assert.Equal(t, w.icon, p.Icon)
			assert.Equal(t, layout.ColorGreen, p.IconColor)
			assert.Equal(t, layout.ButtonSignTx, p.Button)
			assert.Equal(t, w.lines, p.Lines)
		})
	}
}

func TestBuildProposalCreate(t *testing.T) {
	tx := trontest.Transaction(trontest.Contracts()[tron.KindProposalCreate])
	prompts, err := layout.Build(tx, owner)
	require.NoError(t, err)
	require.Len(t, prompts, 3)

	for _, p := range prompts {
		assert.Equal(t, "Confirm proposal", p.Title)
		assert.Equal(t, layout.IconConfirm, p.Icon)
		assert.Equal(t, layout.ButtonSignTx, p.Button)
	}

	assert.Equal(t, []layout.Segment{
		seg(layout.Normal, "Parameter: Allow c"),
		seg(layout.Normal, "reation of contrac"),
		seg(layout.Normal, "ts"),
		seg(layout.Mono, "Value: 1"),
	}, prompts[0].Lines)
	assert.Equal(t, []string{"Parameter: Transac", "tion fee", "Value: 10"}, prompts[1].Texts())
	assert.Equal(t, []string{"Parameter: Energy ", "fee", "Value: 40"}, prompts[2].Texts())
}

func TestBuildUnknownProposalParameter(t *testing.T) {
	tx := &tron.Transaction{Contract: &tron.ProposalCreate{
		Parameters: []tron.ProposalParameter{{Key: 99, Value: -5}},
	}}
	prompts, err := layout.Build(tx, owner)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, []string{"Parameter: Invalid", " parameter", "Value: -5"}, prompts[0].Texts())
}

func TestBuildDataAttached(t *testing.T) {
	tx := trontest.Transaction(trontest.Contracts()[tron.KindWithdrawBalance])
	tx.Data = []byte("payment for invoice #42")

	prompts, err := layout.Build(tx, owner)
	require.NoError(t, err)
	require.Len(t, prompts, 2)

	data := prompts[0]
	assert.Equal(t, "Data attached", data.Title)
	assert.Equal(t, layout.IconConfirm, data.Icon)
	assert.Equal(t, layout.ButtonConfirmOutput, data.Button)
	assert.Equal(t, []layout.Segment{
		seg(layout.Normal, "payment for invoic"),
		seg(layout.Normal, "e #42"),
	}, data.Lines)
	assert.Equal(t, "Confirm transaction", prompts[1].Title)
}

func TestBuildProposalApproveFalse(t *testing.T) {
	tx := &tron.Transaction{Contract: &tron.ProposalApprove{ProposalID: 3}}
	prompts, err := layout.Build(tx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"Proposal Approval", "ID: 3", "Approve: false"}, prompts[0].Texts())
}

func TestBuildNothing(t *testing.T) {
	_, err := layout.Build(nil, owner)
	assert.Error(t, err)
	_, err = layout.Build(&tron.Transaction{}, owner)
	assert.Error(t, err)
}

func TestAddressPrompt(t *testing.T) {
	p := layout.AddressPrompt(trontest.AddressAbandon, "m/44'/195'/0'/0/0")
	assert.Equal(t, "Confirm address", p.Title)
	assert.Equal(t, layout.ButtonAddress, p.Button)
	assert.Equal(t, []layout.Segment{
		seg(layout.Mono, "TUEZSdKsoDHQMeZw"),
		seg(layout.Mono, "ihtdoBiN46zxhGWY"),
		seg(layout.Mono, "dH"),
		seg(layout.Normal, "m/44'/195'/0'/0/0"),
	}, p.Lines)
	assert.Equal(t, "Address", p.Button.String())
}
