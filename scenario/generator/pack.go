package generator

import (
	"os"
	"path/filepath"

	"github.com/crisisbench/crisisbench/internal/canonicaljson"
	"github.com/crisisbench/crisisbench/scenario"
)

const dirPerm = 0o755
const filePerm = 0o644

// Pack writes pkg to disk under outputDir, using the on-disk layout from
// §4.2.9/§6.1: one directory per scenario package, containing manifest.json,
// scenario.json, heartbeats.json, tools.json, persona.md, and a memories/
// subdirectory holding one file per bootstrapped MemoryFile.
func Pack(pkg *scenario.ScenarioPackage, outputDir string) (string, error) {
	dir := filepath.Join(outputDir, pkg.DirectoryName())
	if err := os.MkdirAll(filepath.Join(dir, "memories"), dirPerm); err != nil {
		return "", err
	}

	manifestJSON, err := pkg.Manifest().MarshalJSON()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), manifestJSON, filePerm); err != nil {
		return "", err
	}

	scenarioJSONBytes, err := pkg.MarshalScenarioJSON()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "scenario.json"), scenarioJSONBytes, filePerm); err != nil {
		return "", err
	}

	heartbeatsJSON, err := canonicaljson.Marshal(pkg.Heartbeats())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "heartbeats.json"), heartbeatsJSON, filePerm); err != nil {
		return "", err
	}

	toolsJSON, err := canonicaljson.Marshal(pkg.ToolDefinitions())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "tools.json"), toolsJSON, filePerm); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, "persona.md"), []byte(pkg.PersonaDocument()), filePerm); err != nil {
		return "", err
	}

	for _, mf := range pkg.MemoryFiles() {
		path := filepath.Join(dir, "memories", mf.Key()+".md")
		if err := os.WriteFile(path, []byte(mf.Content()), filePerm); err != nil {
			return "", err
		}
	}

	return dir, nil
}
