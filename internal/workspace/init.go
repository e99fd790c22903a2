package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExamplePaperID is the identifier of the sample paper written into a new
// papers directory.
const ExamplePaperID = "example"

const (
	examplePaper = `{
  "title": "Readable Research: An Example Paper",
  "authors": ["Ada Example"],
  "abstract": "This paper was generated when the papers directory was created. Replace it with your own documents.",
  "sections": [
    {
      "title": "Introduction",
      "content": "Every file named <id>.json in this directory is served at /api/papers/<id>."
    },
    {
      "title": "Conclusion",
      "content": "Documents must contain a single well-formed JSON value."
    }
  ]
}
`

	readme = `# Papers

Each file in this directory is one paper. A file named

    <id>.json

is served at

    GET /api/papers/<id>

Files must contain a single well-formed JSON value. Identifiers cannot
contain path separators.

Run %s to verify every document before deploying.
`
)

// InitializePapersDir creates a papers directory at path containing a sample
// paper and a README. Existing files are left untouched.
func InitializePapersDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	files := map[string]string{
		ExamplePaperID + ".json": examplePaper,
		"README.md":              fmt.Sprintf(readme, "`readable operator check-papers`"),
	}

	for name, content := range files {
		p := filepath.Join(path, name)
		if _, err := os.Stat(p); err == nil {
			continue
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}

	return nil
}
