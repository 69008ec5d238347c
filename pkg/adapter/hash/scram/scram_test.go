// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/momeni/sitetrack/pkg/adapter/hash/scram"
	iscram "github.com/momeni/sitetrack/pkg/core/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ iscram.Hasher = (*scram.Mechanism)(nil)

var hashFormat = regexp.MustCompile(
	`^(SCRAM-SHA-1|SCRAM-SHA-256)\$(\d+):([A-Za-z0-9+/=]+)\$([A-Za-z0-9+/=]+):([A-Za-z0-9+/=]+)$`,
)

func TestHashFormat(t *testing.T) {
	for _, tc := range []struct {
		name   string
		m      *scram.Mechanism
		keyLen int
	}{
		{"SCRAM-SHA-1", scram.SHA1(), 20},
		{"SCRAM-SHA-256", scram.SHA256(), 32},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h, err := tc.m.Hash("secret", "", 4096)
			require.NoError(t, err)
			parts := hashFormat.FindStringSubmatch(h)
			require.NotNil(t, parts, "unexpected format: %q", h)
			assert.Equal(t, tc.name, parts[1])
			assert.Equal(t, "4096", parts[2])
			salt, err := base64.StdEncoding.DecodeString(parts[3])
			require.NoError(t, err)
			assert.Len(t, salt, tc.keyLen, "random salt length")
			for _, k := range parts[4:] {
				key, err := base64.StdEncoding.DecodeString(k)
				require.NoError(t, err)
				assert.Len(t, key, tc.keyLen)
			}
		})
	}
}

func TestHashIsDeterministicForFixedSalt(t *testing.T) {
	m := scram.SHA256()
	salt := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
	h1, err := m.Hash("secret", salt, 15000)
	require.NoError(t, err)
	h2, err := m.Hash("secret", salt, 15000)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	h3, err := m.Hash("other", salt, 15000)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	r1, err := m.Hash("secret", "", 15000)
	require.NoError(t, err)
	r2, err := m.Hash("secret", "", 15000)
	require.NoError(t, err)
	assert.NotEqual(t, r1, r2, "random salts must differ")
}

func TestHashRejectsInvalidArguments(t *testing.T) {
	m := scram.SHA1()
	_, err := m.Hash("", "", 4096)
	assert.Error(t, err, "empty password")
	_, err = m.Hash("secret", "", 4095)
	assert.Error(t, err, "too few iterations")
	_, err = m.Hash("secret", "not base64!", 4096)
	assert.Error(t, err, "invalid salt")
}

func TestByName(t *testing.T) {
	for _, name := range []string{"scram-sha-256", "SCRAM-SHA-1"} {
		m, err := scram.ByName(name)
		require.NoError(t, err, name)
		h, err := m.Hash("secret", "", 4096)
		require.NoError(t, err)
		assert.Contains(t, h, "SCRAM-SHA-")
	}
	_, err := scram.ByName("md5")
	assert.Error(t, err)
}
