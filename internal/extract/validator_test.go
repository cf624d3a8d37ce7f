package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorExtractorDocstringBelow(t *testing.T) {
	content := `
class SchemaValidator:
    """Checks documents against their JSON schemas."""

    def validate(self, doc):
        pass

class Helper:
    pass
`
	ext := &ValidatorExtractor{cats: testCategorizer()}
	records, err := ext.Extract(content, "validators/schema.py", "local")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "SchemaValidator", records[0].Name)
	assert.Equal(t, "Checks documents against their JSON schemas.", records[0].Description)
}

func TestValidatorExtractorMultilineDocstring(t *testing.T) {
	content := `
class ReportValidator(Base):
    """
    Validates generated report files.
    """
`
	ext := &ValidatorExtractor{cats: testCategorizer()}
	records, err := ext.Extract(content, "validators/report.py", "local")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Validates generated report files.", records[0].Description)
}

func TestValidatorExtractorPlaceholder(t *testing.T) {
	content := `
class CsvValidator:
    def run(self):
        pass
`
	ext := &ValidatorExtractor{cats: testCategorizer()}
	records, err := ext.Extract(content, "validators/csv.py", "local")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Validator for csv", records[0].Description)
}

func TestValidatorExtractorIgnoresOtherClasses(t *testing.T) {
	ext := &ValidatorExtractor{cats: testCategorizer()}
	records, err := ext.Extract("class Runner:\n    pass\n", "validators/runner.py", "local")
	require.NoError(t, err)
	assert.Empty(t, records)
}
