package relay

// ResultCode tags the outcome of one pipeline run. Failure codes name the
// step that failed; retryability is the caller's decision.
type ResultCode string

const (
	CodeSuccess      ResultCode = "SUCCESS"
	CodeUnauthorized ResultCode = "UNAUTHORIZED"
	CodeStage1Failed ResultCode = "STAGE1_FAILED"
	CodeStage2Failed ResultCode = "STAGE2_FAILED"
	CodeClaimFailed  ResultCode = "CLAIM_FAILED"
)

// Result is the pipeline outcome for one claimed entry. The processor always
// materializes one; no error crosses the pipeline boundary any other way.
type Result struct {
	IntentHash string
	Code       ResultCode
	Err        error

	// Transaction hashes of the stages that ran, empty when a stage was
	// skipped or never reached.
	StakeTxHash string
	MintTxHash  string
	ClaimTxHash string
}

func (r Result) Succeeded() bool {
	return r.Code == CodeSuccess
}

func failure(intentHash string, code ResultCode, err error) Result {
	return Result{
		IntentHash: intentHash,
		Code:       code,
		Err:        err,
	}
}
