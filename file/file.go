/*
File    : cgoc/file/file.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package file owns every filesystem and external-process interaction the
driver needs: reading a source file, running it through the system C
preprocessor, and writing the emitted assembly back out. The
preprocessor, assembler, and linker are external collaborators invoked as
subprocesses, never reimplemented here.
*/
package file

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ReadSource reads the translation unit at path.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Preprocess runs path through the system C preprocessor (cpp) and returns
// the expanded source text. A missing cpp on PATH is reported as an error
// rather than silently skipping preprocessing, since this subset's
// grammar assumes macro-free, directive-free input.
func Preprocess(cppPath, path string) (string, error) {
	cmd := exec.Command(cppPath, "-P", path)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("preprocessing %s: %s: %s", path, err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("preprocessing %s: %w", path, err)
	}
	return string(out), nil
}

// WriteAssembly writes text to path, creating or truncating it.
func WriteAssembly(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// AssemblyPathFor derives the `.s` output path for a given source path,
// replacing its extension.
func AssemblyPathFor(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(sourcePath, ext)
	return base + ".s"
}

// BinaryPathFor derives the default executable output path for a given
// source path: its base name with no extension.
func BinaryPathFor(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext)
}

// AssembleAndLink runs assemblyPath through the external assembler to
// produce an object file, then through the external linker to produce the
// final executable at outputPath. The object file is a sibling of
// assemblyPath and is removed once linking succeeds.
func AssembleAndLink(assemblerPath, linkerPath, assemblyPath, outputPath string) error {
	objPath := strings.TrimSuffix(assemblyPath, filepath.Ext(assemblyPath)) + ".o"

	asCmd := exec.Command(assemblerPath, assemblyPath, "-o", objPath)
	if out, err := asCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("assembling %s: %w: %s", assemblyPath, err, string(out))
	}
	defer os.Remove(objPath)

	linkCmd := exec.Command(linkerPath, objPath, "-o", outputPath)
	if out, err := linkCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("linking %s: %w: %s", objPath, err, string(out))
	}
	return nil
}

// Exists reports whether path names an existing, readable file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
