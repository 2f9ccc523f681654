package core

// # Error Codes Reference
//
// Errors shown to the reviewer carry a code for support reference. Codes are
// grouped by category:
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - Data source not found: the configured dataset file does not exist
//	          Action: Check DATA_FILE or export the dataset again
//	          Matches: ErrMissingDataSource
//
//	DATA002 - Schema mismatch: required columns are missing from the header
//	          Action: Rename the columns or extend the alias table (SCHEMA_FILE)
//	          Matches: *SchemaMismatchError
//
//	DATA003 - Unreadable file: the dataset could not be opened or parsed
//	          Action: Check file permissions and that the file is delimited text
//	          Matches: ErrNoHeader, "permission denied", "parse error"
//
// # Exclusion Errors (EXC001-EXC099)
//
//	EXC001 - Store write failed: the not-relevant list could not be saved
//	         Action: Check that the exclusion file or database is writable
//	         Matches: "exclusion store"
//
//	EXC002 - Invalid request: the url to exclude is missing or malformed
//	         Action: Submit a non-empty url
//	         Matches: ErrEmptyURL, "invalid exclusion"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid filter: a date filter value could not be parsed
//	         Action: Use YYYY-MM-DD dates
//	         Matches: *InvalidDateError
//
//	REQ002 - Request timeout
//	         Matches: context.DeadlineExceeded, "timeout"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests
//	          Matches: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application log for the
// technical error when a reviewer reports ERR000.
//
// Typed and sentinel errors are checked first with errors.Is and errors.As.
// The pattern table is then matched case-insensitively with strings.Contains;
// the first matching pattern wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingDataSource is returned by Loader.Load when the data file does
// not exist. The returned dataset is empty but carries the full schema.
var ErrMissingDataSource = errors.New("data source not found")

// ErrNoHeader is returned when a data file is empty.
var ErrNoHeader = errors.New("data file has no header row")

// ErrEmptyURL is returned when an exclusion is requested without a url.
var ErrEmptyURL = errors.New("invalid exclusion: url is empty")

// SchemaMismatchError reports canonical columns that no header resolved to.
type SchemaMismatchError struct {
	Path    string
	Missing []string // canonical names, in schema order
	Found   []string // headers as they appear in the file
}

func (e *SchemaMismatchError) Error() string {
	msg := "missing required columns: " + strings.Join(e.Missing, ", ")
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	return msg
}

// InvalidDateError reports a date filter value that could not be parsed.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date filter %q: want YYYY-MM-DD", e.Value)
}

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

var (
	msgMissingSource = UserMessage{
		Message: "The dataset file was not found",
		Action:  "Check DATA_FILE or export the dataset again",
		Code:    "DATA001",
	}
	msgSchemaMismatch = UserMessage{
		Message: "The dataset is missing required columns",
		Action:  "Rename the columns or extend the alias table (SCHEMA_FILE)",
		Code:    "DATA002",
	}
	msgUnreadable = UserMessage{
		Message: "The dataset file could not be read",
		Action:  "Check file permissions and that the file is delimited text",
		Code:    "DATA003",
	}
	msgInvalidExclusion = UserMessage{
		Message: "The url to exclude is missing or malformed",
		Action:  "Submit a non-empty url",
		Code:    "EXC002",
	}
	msgInvalidDate = UserMessage{
		Message: "A date filter could not be understood",
		Action:  "Use YYYY-MM-DD dates",
		Code:    "REQ001",
	}
	msgTimeout = UserMessage{
		Message: "The request timed out",
		Action:  "Please try again",
		Code:    "REQ002",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// Order matters: specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{pattern: "invalid exclusion", msg: msgInvalidExclusion},
	{
		pattern: "exclusion store",
		msg: UserMessage{
			Message: "The not-relevant list could not be saved",
			Action:  "Check that the exclusion file or database is writable",
			Code:    "EXC001",
		},
	},
	{pattern: "permission denied", msg: msgUnreadable},
	{pattern: "parse error", msg: msgUnreadable},
	{pattern: "timeout", msg: msgTimeout},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := loader.Load(ctx, "missing.csv")
//	msg := MapError(err)
//	// msg.Code == "DATA001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var mismatch *SchemaMismatchError
	var badDate *InvalidDateError
	switch {
	case errors.Is(err, ErrMissingDataSource):
		return msgMissingSource
	case errors.As(err, &mismatch):
		msg := msgSchemaMismatch
		msg.Message = fmt.Sprintf("%s: %s", msg.Message, strings.Join(mismatch.Missing, ", "))
		return msg
	case errors.Is(err, ErrNoHeader):
		return msgUnreadable
	case errors.Is(err, ErrEmptyURL):
		return msgInvalidExclusion
	case errors.As(err, &badDate):
		return msgInvalidDate
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
