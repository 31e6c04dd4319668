// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/vault-guard/internal/adapter"
	"github.com/MKhiriev/vault-guard/internal/service"
)

var ErrUserQuit = errors.New("вышел из программы")

// humanizeError turns a service error into the text shown to the user.
// Backend messages are shown as-is.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrTransport):
		return "Отсутствует сеть или Сервер недоступен"
	case errors.Is(err, service.ErrNotAuthenticated):
		return "Сессия завершена, войдите снова"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
