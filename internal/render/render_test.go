package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/career-copilot/internal/types"
)

func fullResume() *types.CustomizedResume {
	return &types.CustomizedResume{
		Summary: "Backend developer with a data focus.",
		Skills:  []string{"Python", "SQL", "Docker"},
		Projects: []types.Project{
			{Name: "Tracker", Description: "Inventory tracker", Tech: []string{"Python", "PostgreSQL"}},
		},
		Experience: []types.Experience{
			{Role: "Intern", Company: "TechCorp", Duration: "2023", Description: "Built reports"},
		},
		Education: &types.Education{
			Degree:      "B.Tech",
			Field:       "Computer Science",
			Institution: "Example University",
			Year:        "2023",
		},
		MissingSkillsNote: []string{"AWS"},
	}
}

func TestRender_PDF(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	path, err := r.Render(fullResume(), FormatPDF, "resume_test")
	require.NoError(t, err)

	assert.Equal(t, "resume_test.pdf", filepath.Base(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_DOCX(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	path, err := r.Render(fullResume(), FormatDOCX, "resume_test")
	require.NoError(t, err)

	assert.Equal(t, "resume_test.docx", filepath.Base(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_DOCXReadsBack(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	path, err := r.Render(fullResume(), FormatDOCX, "readback")
	require.NoError(t, err)

	doc, err := docx.ReadDocxFile(path)
	require.NoError(t, err)
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	assert.Contains(t, content, "Backend developer with a data focus.")
	assert.Contains(t, content, "Python, SQL, Docker")
	assert.Contains(t, content, "Intern - TechCorp (2023)")
	assert.Contains(t, content, "B.Tech in Computer Science - Example University (2023)")
}

func TestRender_SparseResume(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	// No education, no summary, empty sections. Missing data is omitted,
	// never an error.
	sparse := &types.CustomizedResume{Skills: []string{"Go"}}

	for _, format := range []Format{FormatPDF, FormatDOCX} {
		path, err := r.Render(sparse, format, "sparse")
		require.NoError(t, err, "format=%s", format)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	_, err = r.Render(fullResume(), Format("txt"), "resume")
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "txt", unsupported.Format)
}

func TestNewRenderer_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := NewRenderer(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEducationLine(t *testing.T) {
	assert.Equal(t, "", educationLine(nil))
	assert.Equal(t, "B.Tech in Computer Science - Example University (2023)",
		educationLine(&types.Education{
			Degree: "B.Tech", Field: "Computer Science",
			Institution: "Example University", Year: "2023",
		}))
	assert.Equal(t, "B.Tech", educationLine(&types.Education{Degree: "B.Tech"}))
}

func TestHeaderLine(t *testing.T) {
	assert.Equal(t, "Intern - TechCorp (2023)", headerLine("Intern", "TechCorp", "2023"))
	assert.Equal(t, "Intern", headerLine("Intern", "", ""))
	assert.Equal(t, "N/A - TechCorp", headerLine("", "TechCorp", ""))
}

func TestProjectLine(t *testing.T) {
	assert.Equal(t, "Tracker - Python, PostgreSQL", projectLine(types.Project{
		Name: "Tracker", Tech: []string{"Python", "PostgreSQL"},
	}))
	assert.Equal(t, "Project", projectLine(types.Project{}))
}

func TestRenderError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &RenderError{Path: "/tmp/x.pdf", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/x.pdf")
}
