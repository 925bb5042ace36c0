package errorx

import (
	"errors"
	"fmt"

	"gasmethod/infra/errorx/errCode"

	pkgerrors "github.com/pkg/errors"
)

// Error 带错误码的错误
// New 创建的错误只在 stack 里保留调用栈, Wrap 的 cause 为被包装的错误
type Error struct {
	Code  errCode.Code
	Msg   string
	cause error
	stack error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Msg, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Format 支持 %+v 打印调用栈
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			switch {
			case e.cause != nil:
				fmt.Fprintf(s, "[%s] %s: %+v", e.Code, e.Msg, e.cause)
				return
			case e.stack != nil:
				// pkg/errors 的 %+v 为 "msg\n调用栈"
				fmt.Fprintf(s, "[%s] %+v", e.Code, e.stack)
				return
			}
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func New(code errCode.Code, msg string) error {
	return &Error{Code: code, Msg: msg, stack: pkgerrors.New(msg)}
}

func Newf(code errCode.Code, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 为已有错误附加错误码, err 为 nil 时返回 nil
func Wrap(code errCode.Code, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Msg: msg, cause: pkgerrors.WithStack(err)}
}

// CodeOf 取错误链上第一个错误码, 非 errorx 错误返回 OK
func CodeOf(err error) errCode.Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return errCode.OK
}

func Is(err error, code errCode.Code) bool {
	return err != nil && CodeOf(err) == code
}
