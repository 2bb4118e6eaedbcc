package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func asBusiness(err error, target *BusinessError) bool {
	return errors.As(err, target)
}

func asPartial(err error) (*PartialWriteError, bool) {
	var pw *PartialWriteError
	ok := errors.As(err, &pw)
	return pw, ok
}
