package ui

import (
	"errors"

	"github.com/fastygo/taskdesk/domain"
)

// errorDialog picks what the user sees for a failed action. Classified errors
// show their own message; anything unclassified is a storage failure and is
// shown raw under a generic title.
func errorDialog(action string, err error) *dialog {
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Code == domain.ErrCodeInternal {
		return &dialog{kind: dialogError, title: "Error", body: err.Error()}
	}

	var title string
	switch dErr.Code {
	case domain.ErrCodeInvalid:
		title = action + ": Invalid Input"
	case domain.ErrCodeConflict:
		title = action + ": Already Exists"
	case domain.ErrCodeNotFound:
		title = action + ": Not Found"
	default:
		title = action + " Failed"
	}
	return &dialog{kind: dialogError, title: title, body: dErr.Message}
}
