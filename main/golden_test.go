/*
File    : cgoc/main/golden_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Golden scenarios live in testdata/golden.yaml rather than inline Go
literals so a new case can be added without touching this file. Each
scenario is checked structurally (the emitted assembly contains the
instruction shapes its lowering requires) since no assembler or linker
runs during the test.
*/
package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type goldenScenario struct {
	Name           string   `yaml:"name"`
	Source         string   `yaml:"source"`
	ExpectedReturn int      `yaml:"expectedReturn"`
	ExpectContains []string `yaml:"expectContains"`
}

type goldenFile struct {
	Scenarios []goldenScenario `yaml:"scenarios"`
}

func loadGoldenScenarios(t *testing.T) []goldenScenario {
	t.Helper()
	data, err := os.ReadFile("../testdata/golden.yaml")
	require.NoError(t, err)

	var gf goldenFile
	require.NoError(t, yaml.Unmarshal(data, &gf))
	require.NotEmpty(t, gf.Scenarios)
	return gf.Scenarios
}

func TestGoldenScenarios_EmitExpectedInstructionShapes(t *testing.T) {
	for _, sc := range loadGoldenScenarios(t) {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			asm, code := compileSource(sc.Source, options{})
			require.Equal(t, exitSuccess, code)
			for _, want := range sc.ExpectContains {
				assert.Contains(t, asm, want)
			}
		})
	}
}
