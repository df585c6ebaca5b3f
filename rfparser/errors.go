package rfparser

import (
	"errors"
	"fmt"
)

// Code identifies the hardware constraint a configuration violated. Codes
// are negative and stable so firmware-side callers can branch on them.
type Code int32

const (
	CodeNumTxAntennas                Code = -1
	CodeNumVirtualAntennas           Code = -2
	CodeNumSubFrames                 Code = -3
	CodeChirpThreshGreaterThanMax    Code = -4
	CodeNumUniqueChirpsMoreThan32    Code = -5
	CodeNonComplexADCFormat          Code = -6
	CodeNon16BitsADC                 Code = -7
	CodeNonOneNumOfBurstForAdvFrame  Code = -8
	CodeNegativeFreqSlope            Code = -9
	CodeNonDivisibilityOfChirpThresh Code = -10
	CodeNonComplexADCBufFormat       Code = -11
	CodeChirpNotConfigured           Code = -12
	CodeMultipleProfiles             Code = -13
)

var codeNames = map[Code]string{
	CodeNumTxAntennas:                "EINVAL_NUM_TX_ANTENNAS",
	CodeNumVirtualAntennas:           "EINVAL__NUM_VIRTUAL_ANTENNAS",
	CodeNumSubFrames:                 "EINVAL__NUM_SUBFRAMES",
	CodeChirpThreshGreaterThanMax:    "EINVAL__CHIRP_THRESH_GREATER_THAN_MAX_ALLOWED",
	CodeNumUniqueChirpsMoreThan32:    "ENOIMPL__NUM_UNIQUE_CHIRPS_MORE_THAN_32",
	CodeNonComplexADCFormat:          "ENOTSUPPORT__NON_COMPLEX_ADC_FORMAT",
	CodeNon16BitsADC:                 "ENOTSUPPORT__NON_16BITS_ADC",
	CodeNonOneNumOfBurstForAdvFrame:  "ENOTSUPPORT__NON_ONE_NUMOFBURST_FOR_ADVANCED_FRAME",
	CodeNegativeFreqSlope:            "ENOTSUPPORT__NEGATIVE_FREQ_SLOPE",
	CodeNonDivisibilityOfChirpThresh: "ENOTSUPPORT__NON_DIVISIBILITY_OF_CHIRP_THRESH",
	CodeNonComplexADCBufFormat:       "ENOTSUPPORT__NONCOMPLEX_ADC_FORMAT",
	CodeChirpNotConfigured:           "EINVAL__CHIRP_NOT_CONFIGURED",
	CodeMultipleProfiles:             "ENOTSUPPORT__MULTIPLE_PROFILES",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int32(c))
}

// Error is returned by Parse. Detail describes the offending values and is
// ignored when comparing errors.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("rfparser: %s (%d)", e.Code, int32(e.Code))
	}
	return fmt.Sprintf("rfparser: %s (%d): %s", e.Code, int32(e.Code), e.Detail)
}

// Is makes errors.Is match on the code alone, so the sentinels below can be
// compared against errors carrying a detail message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrNumTxAntennas                = &Error{Code: CodeNumTxAntennas}
	ErrNumVirtualAntennas           = &Error{Code: CodeNumVirtualAntennas}
	ErrNumSubFrames                 = &Error{Code: CodeNumSubFrames}
	ErrChirpThreshGreaterThanMax    = &Error{Code: CodeChirpThreshGreaterThanMax}
	ErrNumUniqueChirpsMoreThan32    = &Error{Code: CodeNumUniqueChirpsMoreThan32}
	ErrNonComplexADCFormat          = &Error{Code: CodeNonComplexADCFormat}
	ErrNon16BitsADC                 = &Error{Code: CodeNon16BitsADC}
	ErrNonOneNumOfBurstForAdvFrame  = &Error{Code: CodeNonOneNumOfBurstForAdvFrame}
	ErrNegativeFreqSlope            = &Error{Code: CodeNegativeFreqSlope}
	ErrNonDivisibilityOfChirpThresh = &Error{Code: CodeNonDivisibilityOfChirpThresh}
	ErrNonComplexADCBufFormat       = &Error{Code: CodeNonComplexADCBufFormat}
	ErrChirpNotConfigured           = &Error{Code: CodeChirpNotConfigured}
	ErrMultipleProfiles             = &Error{Code: CodeMultipleProfiles}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from an error returned by Parse, or 0 when err is
// nil or did not come from this package.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
