// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PasswordRecord is the resting representation of a vault entry on the
// client. The secret is deliberately absent: it only ever exists inside a
// [RevealResponse] and the reveal scheduler's transient state.
type PasswordRecord struct {
	// ID is the backend-assigned identifier, unique within a user's vault.
	ID string `json:"id"`

	// AccountName names the service the credential belongs to (e.g. "Gmail").
	AccountName string `json:"accountName"`

	// Username is the login used at that service.
	Username string `json:"username"`
}

// PasswordList is the authoritative list snapshot returned by GET /password.
type PasswordList []PasswordRecord

// Dedup returns a copy of the list keeping the first occurrence of every id.
func (l PasswordList) Dedup() PasswordList {
	seen := make(map[string]struct{}, len(l))
	out := make(PasswordList, 0, len(l))
	for _, rec := range l {
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// Find returns the record with the given id.
func (l PasswordList) Find(id string) (PasswordRecord, bool) {
	for _, rec := range l {
		if rec.ID == id {
			return rec, true
		}
	}
	return PasswordRecord{}, false
}
