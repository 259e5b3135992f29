// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"errors"

	"github.com/gogpu/ink/internal/stroke"
)

var (
	// ErrInvalidSettings is returned when settings fail validation.
	ErrInvalidSettings = errors.New("ink: invalid settings")

	// ErrUnknownFormat is returned for configuration files whose format
	// cannot be determined.
	ErrUnknownFormat = errors.New("ink: unknown settings format")

	// ErrInvalidCenterline reports smoother output rejected at the tool
	// boundary.
	ErrInvalidCenterline = stroke.ErrInvalidCenterline
)
