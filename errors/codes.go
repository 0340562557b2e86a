package errors

// ErrorCode identifies an error category in API responses and logs
type ErrorCode string

const (
	ErrorCode_INTERNAL                  ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT          ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND                 ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS            ErrorCode = "ALREADY_EXISTS"
	ErrorCode_RATE_LIMIT_EXCEEDED       ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCode_INVALID_CLASSIFIER_OUTPUT ErrorCode = "INVALID_CLASSIFIER_OUTPUT"
	ErrorCode_INGEST_FAILED             ErrorCode = "INGEST_FAILED"
	ErrorCode_STORAGE_UNAVAILABLE       ErrorCode = "STORAGE_UNAVAILABLE"
)

// String returns the string representation of the code
func (c ErrorCode) String() string {
	return string(c)
}
