package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-spheres", "Glass Spheres"},
		{"metal_row", "Metal Row"},
		{"spheregrid", "Spheregrid"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		file        string
		content     string
		name        string
		displayName string
		description string
	}{
		{
			file:        "with_metadata.json",
			content:     `{"name": "Glass Row", "description": "Three glass spheres", "spheres": []}`,
			name:        "Glass Row",
			displayName: "Glass Row",
			description: "Three glass spheres",
		},
		{
			file:        "no-metadata.json",
			content:     `{"spheres": []}`,
			name:        "no-metadata",
			displayName: "No Metadata",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.file, tc.content)

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}
			if result.Name != tc.name {
				t.Errorf("Name = %q, want %q", result.Name, tc.name)
			}
			if result.DisplayName != tc.displayName {
				t.Errorf("DisplayName = %q, want %q", result.DisplayName, tc.displayName)
			}
			if result.Description != tc.description {
				t.Errorf("Description = %q, want %q", result.Description, tc.description)
			}
			if result.Type != TypeJSON || result.FilePath != path || result.ID != path {
				t.Errorf("Unexpected identity fields: %+v", result)
			}
		})
	}
}

func TestParseSceneMetadata_InvalidFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := ParseSceneMetadata(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := writeSceneFile(t, dir, "broken.json", `{"name": `)
	if _, err := ParseSceneMetadata(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "zeta.json", `{"spheres": []}`)
	writeSceneFile(t, dir, "alpha.json", `{"spheres": []}`)
	writeSceneFile(t, dir, "notes.txt", `not a scene`)

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scene files, got %d", len(scenes))
	}
	if scenes[0].Name != "alpha" || scenes[1].Name != "zeta" {
		t.Errorf("Expected sorted scenes, got %q, %q", scenes[0].Name, scenes[1].Name)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "custom.json", `{"spheres": []}`)

	scenes, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	names := Names()
	if len(scenes) != len(names)+1 {
		t.Fatalf("Expected %d scenes, got %d", len(names)+1, len(scenes))
	}
	for i, name := range names {
		if scenes[i].ID != name || scenes[i].Type != TypeBuiltin {
			t.Errorf("Scene %d: expected builtin %q, got %+v", i, name, scenes[i])
		}
		if scenes[i].Description == "" {
			t.Errorf("Builtin %q has no description", name)
		}
	}
	if last := scenes[len(scenes)-1]; last.Type != TypeJSON || last.Name != "custom" {
		t.Errorf("Expected custom scene file last, got %+v", last)
	}
}
