// Package main tests for the AlgoViz CLI application
package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout output during test execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestMain_Version(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"algoviz", "version"}
	defer func() { os.Args = oldArgs }()

	output := captureOutput(func() {
		main()
	})

	assert.True(t, strings.HasPrefix(output, "AlgoViz "))
	assert.Contains(t, output, "commit:")
	assert.Contains(t, output, "built:")
}

func TestRun_BinarySearch(t *testing.T) {
	output := captureOutput(func() {
		err := run([]string{"-algorithm", "binary-search", "-data", "1,3,5,7,9", "-target", "5"})
		require.NoError(t, err)
	})

	assert.Contains(t, output, "found=true index=2")
	assert.Contains(t, output, "[init")
	assert.Contains(t, output, "[compare")
	assert.Contains(t, output, "[found")
}

func TestRun_LinearSearchNotFound(t *testing.T) {
	output := captureOutput(func() {
		err := run([]string{"-algorithm", "linear-search", "-data", "4,2,7", "-target", "5"})
		require.NoError(t, err)
	})

	assert.Contains(t, output, "found=false index=-1")
}

func TestRun_List(t *testing.T) {
	output := captureOutput(func() {
		err := run([]string{"-list"})
		require.NoError(t, err)
	})

	assert.Contains(t, output, "binary-search")
	assert.Contains(t, output, "linear-search")
}

func TestRun_UnknownAlgorithm(t *testing.T) {
	err := run([]string{"-algorithm", "bogo-search", "-data", "1,2,3", "-target", "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogo-search")
}

func TestParseData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{name: "basic", input: "1,3,5", want: []float64{1, 3, 5}},
		{name: "spaces", input: " 1 , 3 , 5 ", want: []float64{1, 3, 5}},
		{name: "empty", input: "", want: []float64{}},
		{name: "floats", input: "1.5,2.25", want: []float64{1.5, 2.25}},
		{name: "garbage", input: "1,two,3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseData(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
