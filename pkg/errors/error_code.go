package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidTrade         ErrorCode = 102
	ErrCodeInvalidBacktest      ErrorCode = 103
	ErrCodeInvalidFilter        ErrorCode = 104
	ErrCodeInvalidMonth         ErrorCode = 105
	ErrCodeInvalidPnlSign       ErrorCode = 106
	ErrCodeInvalidVersion       ErrorCode = 108

	// Data/Resource errors (200-299)
	ErrCodeBacktestNotFound ErrorCode = 200
	ErrCodeTradeNotFound    ErrorCode = 201
	ErrCodeQueryFailed      ErrorCode = 202
	ErrCodeLastBacktest     ErrorCode = 203
	ErrCodeNothingToUndo    ErrorCode = 204

	// Import/export errors (300-399)
	ErrCodeImportFailed ErrorCode = 300
	ErrCodeExportFailed ErrorCode = 301
	ErrCodeInvalidRow   ErrorCode = 302

	// Store errors (400-499)
	ErrCodeStoreInitFailed  ErrorCode = 400
	ErrCodeStoreClosed      ErrorCode = 401
	ErrCodeVersionMismatch  ErrorCode = 402
	ErrCodeTransactionAbort ErrorCode = 403

	// Report errors (500-599)
	ErrCodeReportFailed      ErrorCode = 500
	ErrCodeReportWriteFailed ErrorCode = 501
)
