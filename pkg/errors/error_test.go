package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidTrade, "invalid trade")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidTrade, err.Code)
	suite.Equal("invalid trade", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeBacktestNotFound, "backtest %s not found", "bt-1")
	suite.NotNil(err)
	suite.Equal(ErrCodeBacktestNotFound, err.Code)
	suite.Equal("backtest bt-1 not found", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "failed to load trades", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal("failed to load trades", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeImportFailed, cause, "failed to import %s", "trades.csv")
	suite.NotNil(err)
	suite.Equal(ErrCodeImportFailed, err.Code)
	suite.Equal("failed to import trades.csv", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeBacktestNotFound, "backtest not found", cause)
	suite.Equal("[200] backtest not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	suite.Equal(cause, err.Unwrap())
	suite.Nil(New(ErrCodeInvalidParameter, "invalid").Unwrap())
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeQueryFailed, "query failed")
	err := Wrap(ErrCodeBacktestNotFound, "backtest not found", cause)
	// the outermost code wins
	suite.Equal(ErrCodeBacktestNotFound, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromStandardError() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeLastBacktest, "cannot delete the last backtest")
	suite.True(HasCode(err, ErrCodeLastBacktest))
	suite.False(HasCode(err, ErrCodeBacktestNotFound))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeExportFailed, "export failed", cause)
	suite.True(Is(err, cause))

	var journalErr *Error
	suite.True(As(err, &journalErr))
	suite.Equal(ErrCodeExportFailed, journalErr.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeBacktestNotFound)
	suite.Equal(ErrorCode(300), ErrCodeImportFailed)
	suite.Equal(ErrorCode(400), ErrCodeStoreInitFailed)
	suite.Equal(ErrorCode(500), ErrCodeReportFailed)
}

func (suite *ErrorTestSuite) TestFieldError() {
	err := NewFieldError("row 3", "pnl", -10.0, "pnl must be positive for a profit")
	suite.Equal("row 3.pnl: pnl must be positive for a profit", err.Error())
	suite.Equal(-10.0, err.Value)

	noRecord := NewFieldErrorf("", "risk", 0.0, "risk must be > %d", 0)
	suite.Equal("risk: risk must be > 0", noRecord.Error())
}

func (suite *ErrorTestSuite) TestIsFieldError() {
	fieldErr := NewFieldError("t-1", "time", "", "missing time")
	suite.True(IsFieldError(fieldErr))
	suite.True(IsFieldError(Wrap(ErrCodeInvalidRow, "invalid row", fieldErr)))
	suite.False(IsFieldError(errors.New("standard error")))
	suite.False(IsFieldError(New(ErrCodeInvalidTrade, "invalid trade")))
	suite.False(IsFieldError(nil))
}
