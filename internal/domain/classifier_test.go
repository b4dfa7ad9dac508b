package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/glossdev/gloss/internal/model"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	t.Run("maps known extensions", func(t *testing.T) {
		cases := map[string]m.LanguageID{
			"script.py":        "python",
			"app.js":           "javascript",
			"component.tsx":    "typescript",
			"Main.java":        "java",
			"engine.cpp":       "cpp",
			"util.c":           "c",
			"Program.cs":       "csharp",
			"server.go":        "go",
			"model.rb":         "ruby",
			"index.php":        "php",
			"View.swift":       "swift",
			"Main.kt":          "kotlin",
			"lib.rs":           "rust",
			"deploy.sh":        "shell",
			"dir/nested/f.py":  "python",
			"UPPERCASE.PY":     "python",
			"weird.name.v2.go": "go",
		}

		for path, want := range cases {
			profile, ok := c.Classify(m.Path(path))
			require.True(t, ok, "expected %s to be supported", path)
			assert.Equal(t, want, profile.ID, path)
		}
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		for _, path := range []string{"README.md", "data.json", "noext", "archive.tar.gz", ".gitignore"} {
			_, ok := c.Classify(m.Path(path))
			assert.False(t, ok, path)
		}
	})

	t.Run("python has line comments only", func(t *testing.T) {
		profile, ok := c.Classify(m.Path("x.py"))
		require.True(t, ok)
		assert.Equal(t, "#", profile.LineComment)
		assert.Empty(t, profile.BlockStart)
	})

	t.Run("go has line and block comments", func(t *testing.T) {
		profile, ok := c.Classify(m.Path("x.go"))
		require.True(t, ok)
		assert.Equal(t, "//", profile.LineComment)
		assert.Equal(t, "/*", profile.BlockStart)
		assert.Equal(t, "*/", profile.BlockEnd)
	})
}

func TestProfiles(t *testing.T) {
	profiles := NewClassifier().Profiles()

	require.GreaterOrEqual(t, len(profiles), 12)

	// Sorted by ID for stable listing output.
	for i := 1; i < len(profiles); i++ {
		assert.Less(t, profiles[i-1].ID, profiles[i].ID)
	}
}
