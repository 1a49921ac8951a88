package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	names []string
	err   error
}

func (s stubLister) ListModels(context.Context) ([]string, error) {
	return s.names, s.err
}

func TestPrintGeminiModels(t *testing.T) {
	var out bytes.Buffer
	err := printGeminiModels(context.Background(), stubLister{
		names: []string{"gemini-2.5-flash-lite", "text-embedding-004", "gemini-2.5-pro"},
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "\"gemini-2.5-flash-lite\"\n\"gemini-2.5-pro\"\n", out.String())
}

func TestPrintGeminiModels_Errors(t *testing.T) {
	var out bytes.Buffer

	err := printGeminiModels(context.Background(), stubLister{err: errors.New("permission denied")}, &out)
	require.EqualError(t, err, "permission denied")

	err = printGeminiModels(context.Background(), stubLister{names: []string{"imagen-3"}}, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}
