package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswords(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)
	var out bytes.Buffer

	failed := hashPasswords(&out, hasher, []string{"testpassword123", "short", "тест12345"})

	assert.Equal(t, 1, failed)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	hash := strings.TrimPrefix(lines[0], "#1: ")
	assert.NoError(t, hasher.Compare(hash, "testpassword123"))
	assert.True(t, strings.HasPrefix(lines[1], "#2: error:"))
	assert.NoError(t, hasher.Compare(strings.TrimPrefix(lines[2], "#3: "), "тест12345"))
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("one\n\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}
