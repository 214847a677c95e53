// Package core provides the reporting engine for the food sharing datasets.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Typed errors are matched first with errors.As; anything else
// falls back to case-insensitive pattern matching on the error text.
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - Load failed: A dataset could not be read
//	          Action: Check that the data files exist and are valid CSV
//	          Types: *LoadError
//
//	DATA002 - Missing column: A required column is missing
//	          Action: Compare the file header with the expected columns
//	          Types: *MissingColumnError
//
//	DATA003 - Duplicate key: An ID appears more than once
//	          Action: Remove duplicate IDs from the source data
//	          Types: *DuplicateKeyError
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Unknown report: The requested report does not exist
//	         Action: Pick a report from the catalog
//	         Types: ErrUnknownReport
//
//	REQ002 - Unknown filter: The filter field is not supported
//	         Action: Filter on Location, Provider_Name, Food_Type or Meal_Type
//	         Types: ErrUnknownFilterField
//
//	REQ005 - Duplicate filter: A filter field was given more than once
//	         Action: Select each filter field once
//	         Types: ErrDuplicateFilterField
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgLoadFailed = UserMessage{
		Message: "A dataset could not be loaded",
		Action:  "Check that the data files exist and are valid CSV",
		Code:    "DATA001",
	}
	msgMissingColumn = UserMessage{
		Message: "A required column is missing",
		Action:  "Compare the file header with the expected columns",
		Code:    "DATA002",
	}
	msgDuplicateKey = UserMessage{
		Message: "An ID appears more than once",
		Action:  "Remove duplicate IDs from the source data",
		Code:    "DATA003",
	}
	msgUnknownReport = UserMessage{
		Message: "Report not found",
		Action:  "Pick a report from the catalog",
		Code:    "REQ001",
	}
	msgUnknownFilter = UserMessage{
		Message: "Unsupported filter field",
		Action:  "Filter on Location, Provider_Name, Food_Type or Meal_Type",
		Code:    "REQ002",
	}
	msgDuplicateFilter = UserMessage{
		Message: "Filter field given more than once",
		Action:  "Select each filter field once",
		Code:    "REQ005",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that lost their type on the way here. The first match wins.
var errorPatterns = []errorPattern{
	{pattern: "missing required column", msg: msgMissingColumn},
	{pattern: "duplicate key", msg: msgDuplicateKey},
	{pattern: "unknown report", msg: msgUnknownReport},
	{pattern: "unknown filter field", msg: msgUnknownFilter},
	{pattern: "duplicate filter field", msg: msgDuplicateFilter},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ004",
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
//	err := &DuplicateKeyError{Table: "providers", Column: "Provider_ID", Value: "7"}
//	msg := MapError(err)
//	// msg.Code == "DATA003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	// Most specific first: a LoadError usually wraps a MissingColumnError.
	var missing *MissingColumnError
	if errors.As(err, &missing) {
		return msgMissingColumn
	}
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return msgDuplicateKey
	}
	var load *LoadError
	if errors.As(err, &load) {
		return msgLoadFailed
	}
	if errors.Is(err, ErrUnknownReport) {
		return msgUnknownReport
	}
	if errors.Is(err, ErrUnknownFilterField) {
		return msgUnknownFilter
	}
	if errors.Is(err, ErrDuplicateFilterField) {
		return msgDuplicateFilter
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

// IsUserFacing reports whether an error maps to a specific message rather
// than the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
