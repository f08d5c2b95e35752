// Copyright (c) 2026 The orgchart Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package ui contains the interactive terminal prompts.
package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/golang/base"
)

// Confirm asks a yes or no question.  It returns base.ErrOpCancelled if the
// user pressed Ctrl+C.
func Confirm(msg string) (bool, error) {
	var b bool
	if err := huh.NewConfirm().Title(msg).Value(&b).Run(); err != nil {
		return false, cancelled(err)
	}
	return b, nil
}

// Input shows a text input field with a validator, nil validateFn accepts
// any input.
func Input(msg, help string, validateFn func(s string) error) (string, error) {
	if validateFn == nil {
		validateFn = NoValidation
	}
	var resp string
	if err := huh.NewInput().
		Title(msg).
		Description(help).
		Validate(validateFn).
		Value(&resp).
		Run(); err != nil {
		return "", cancelled(err)
	}
	return strings.TrimSpace(resp), nil
}

// NoValidation is a no-op validation function.
func NoValidation(s string) error {
	return nil
}

func cancelled(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return base.ErrOpCancelled
	}
	return err
}
