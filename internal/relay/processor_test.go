package relay

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/bpl-lane/mosaic-relayer/internal/chain/mocks"
	"github.com/bpl-lane/mosaic-relayer/internal/domain/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testOperator  = "0xbbbb567890abcdef1234567890abcdef12345678"
	testNativeID  = "0x1111111111111111111111111111111111111111111111111111111111111111"
	testBrandedID = "0xcccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
)

func newTestEntry(intent model.StakeIntent) *Entry {
	return &Entry{
		ID:             uuid.New(),
		Intent:         intent,
		ObservedHeight: 100,
		State:          model.StateProcessing,
	}
}

func operatorIntent(tokenID string) model.StakeIntent {
	return model.StakeIntent{
		IntentHash:  "0xdddd000000000000000000000000000000000000000000000000000000000001",
		Staker:      testOperator,
		Beneficiary: "0xeeee567890abcdef1234567890abcdef12345678",
		TokenID:     tokenID,
	}
}

func TestProcessor_UnauthorizedStakerIssuesNoChainCalls(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)
	// No EXPECT calls: any chain interaction fails the test.

	intent := operatorIntent(testNativeID)
	intent.Staker = "0xaaaa567890abcdef1234567890abcdef12345678"

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	assert.Equal(t, CodeUnauthorized, result.Code)
	assert.Equal(t, intent.IdentityKey(), result.IntentHash)
	require.Error(t, result.Err)
}

func TestProcessor_AuthorizationIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)

	intent := operatorIntent(testNativeID)
	intent.Staker = "0xBBBB567890ABCDEF1234567890ABCDEF12345678"

	value.EXPECT().ProcessStaking(gomock.Any(), intent.IntentHash).Return("0xtx1", nil)
	utility.EXPECT().ProcessMinting(gomock.Any(), intent.IntentHash).Return("0xtx2", nil)

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	assert.Equal(t, CodeSuccess, result.Code)
}

func TestProcessor_Stage1FailureShortCircuits(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)

	intent := operatorIntent(testBrandedID)
	value.EXPECT().ProcessStaking(gomock.Any(), intent.IntentHash).Return("", fmt.Errorf("execution reverted"))
	// ProcessMinting, TokenAddress and ClaimToken must never run.

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	assert.Equal(t, CodeStage1Failed, result.Code)
	assert.Empty(t, result.StakeTxHash)
	require.Error(t, result.Err)
}

func TestProcessor_Stage2FailureShortCircuitsClaim(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)

	intent := operatorIntent(testBrandedID)
	value.EXPECT().ProcessStaking(gomock.Any(), intent.IntentHash).Return("0xtx1", nil)
	utility.EXPECT().ProcessMinting(gomock.Any(), intent.IntentHash).Return("", fmt.Errorf("nonce too low"))

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	assert.Equal(t, CodeStage2Failed, result.Code)
	assert.Equal(t, "0xtx1", result.StakeTxHash)
	assert.Empty(t, result.MintTxHash)
}

func TestProcessor_NativeTokenSkipsLookupAndClaim(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)

	intent := operatorIntent(testNativeID)
	value.EXPECT().ProcessStaking(gomock.Any(), intent.IntentHash).Return("0xtx1", nil)
	utility.EXPECT().ProcessMinting(gomock.Any(), intent.IntentHash).Return("0xtx2", nil)
	// No TokenAddress or ClaimToken expectations.

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	require.Equal(t, CodeSuccess, result.Code)
	assert.Equal(t, "0xtx1", result.StakeTxHash)
	assert.Equal(t, "0xtx2", result.MintTxHash)
	assert.Empty(t, result.ClaimTxHash)
}

func TestProcessor_BrandedTokenClaimsExactlyOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)

	intent := operatorIntent(testBrandedID)
	resolved := "0xdddd567890abcdef1234567890abcdef12345678"

	value.EXPECT().ProcessStaking(gomock.Any(), intent.IntentHash).Return("0xtx1", nil)
	utility.EXPECT().ProcessMinting(gomock.Any(), intent.IntentHash).Return("0xtx2", nil)
	utility.EXPECT().TokenAddress(gomock.Any(), testBrandedID).Return(resolved, nil)
	utility.EXPECT().ClaimToken(gomock.Any(), resolved, intent.Beneficiary).Return("0xtx3", nil).Times(1)

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	require.Equal(t, CodeSuccess, result.Code)
	assert.Equal(t, "0xtx3", result.ClaimTxHash)
}

func TestProcessor_LookupFailureReportsClaimFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)

	intent := operatorIntent(testBrandedID)
	value.EXPECT().ProcessStaking(gomock.Any(), intent.IntentHash).Return("0xtx1", nil)
	utility.EXPECT().ProcessMinting(gomock.Any(), intent.IntentHash).Return("0xtx2", nil)
	utility.EXPECT().TokenAddress(gomock.Any(), testBrandedID).Return("", fmt.Errorf("token not registered"))

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	assert.Equal(t, CodeClaimFailed, result.Code)
	// Stage hashes up to the failure are preserved for the reporter.
	assert.Equal(t, "0xtx1", result.StakeTxHash)
	assert.Equal(t, "0xtx2", result.MintTxHash)
}

func TestProcessor_ClaimFailureReportsClaimFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	value := mocks.NewMockValueChain(ctrl)
	utility := mocks.NewMockUtilityChain(ctrl)

	intent := operatorIntent(testBrandedID)
	resolved := "0xdddd567890abcdef1234567890abcdef12345678"

	value.EXPECT().ProcessStaking(gomock.Any(), intent.IntentHash).Return("0xtx1", nil)
	utility.EXPECT().ProcessMinting(gomock.Any(), intent.IntentHash).Return("0xtx2", nil)
	utility.EXPECT().TokenAddress(gomock.Any(), testBrandedID).Return(resolved, nil)
	utility.EXPECT().ClaimToken(gomock.Any(), resolved, intent.Beneficiary).Return("", fmt.Errorf("execution reverted"))

	p := NewProcessor(value, utility, testOperator, testNativeID, slog.Default())
	result := p.Process(context.Background(), newTestEntry(intent))

	assert.Equal(t, CodeClaimFailed, result.Code)
	assert.Empty(t, result.ClaimTxHash)
	require.Error(t, result.Err)
}
