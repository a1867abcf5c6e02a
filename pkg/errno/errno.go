package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage 返回附带详细信息的同码错误
func (e Errno) WithMessage(msg string) Errno {
	return Errno{Code: e.Code, Message: e.Message + ": " + msg}
}

// Decode tries to convert an error to Errno.
// 被 %w 包装过的错误也能解析出原始错误码，消息保留完整的包装链。
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, err.Error()
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, err.Error()
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
)

// Signing Errors (30000+)
var (
	ErrInvalidTransaction  = Errno{Code: 30001, Message: "Invalid transaction"}
	ErrUserRejected        = Errno{Code: 30002, Message: "Rejected by user"}
	ErrSerializationFailed = Errno{Code: 30003, Message: "Serialization failed"}
	ErrSigningFailed       = Errno{Code: 30004, Message: "Signing failed"}
	ErrDerivationFailed    = Errno{Code: 30005, Message: "Key derivation failed"}
	ErrActionCancelled     = Errno{Code: 30006, Message: "Action cancelled"}
)
