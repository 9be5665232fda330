package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer

	assert.Empty(t, Run(&out, "--schema", "testdata/schema.json", "--document", "testdata/valid.json"))
	assert.Contains(t, out.String(), "ok")

	assert.NotEmpty(t, Run(&out, "--document", "testdata/valid.json"))
	assert.NotEmpty(t, Run(&out, "--schema", "testdata/schema.json"))
	assert.NotEmpty(t, Run(&out, "--schema", "testdata/does-not-exist.json", "--document", "testdata/valid.json"))
	assert.NotEmpty(t, Run(&out, "--schema", "testdata/schema.json", "--document", "testdata/does-not-exist.json"))
}

func TestRun_ReportsValidationError(t *testing.T) {
	var out bytes.Buffer

	errs := Run(&out, "--schema", "testdata/schema.json", "-d", "testdata/invalid.json")
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Error(), "Composite types must have subselections")
	}
}
