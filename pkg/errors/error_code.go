package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidInput         ErrorCode = 100
	ErrCodeInvalidParameter     ErrorCode = 101
	ErrCodeInsufficientHistory  ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105
	ErrCodeInvalidThreshold     ErrorCode = 106
	ErrCodeInvalidMultiplier    ErrorCode = 107
	ErrCodeInvalidInstrumentKey ErrorCode = 108

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeImportFailed          ErrorCode = 203
	ErrCodeWriteFailed           ErrorCode = 204
	ErrCodeInstrumentNotFound    ErrorCode = 205
	ErrCodeUnsupportedFormat     ErrorCode = 206

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Classifier errors (400-499)
	ErrCodeClassificationFailed ErrorCode = 400
	ErrCodeStreamOutOfOrder     ErrorCode = 401

	// Report errors (500-599)
	ErrCodeReportInitFailed  ErrorCode = 500
	ErrCodeReportWriteFailed ErrorCode = 501
	ErrCodeReportNotReady    ErrorCode = 502

	// Configuration errors (600-699)
	ErrCodeInvalidConfiguration ErrorCode = 600
	ErrCodeConfigReadFailed     ErrorCode = 601
	ErrCodeInvalidVersion       ErrorCode = 602
	ErrCodeVersionMismatch      ErrorCode = 603
)
