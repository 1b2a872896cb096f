package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

const reportSchema = "analysis_report.schema.json"

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		reportSchema,
		filepath.Join("..", "internal", "taxonomy", "taxonomy.schema.json"),
	}

	for _, schemaFile := range schemaFiles {
		t.Run(filepath.Base(schemaFile), func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare type and $schema")
		})
	}
}

func sampleReport() *types.AnalysisReport {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &types.AnalysisReport{
		ID:        "6f1c2a4e-8d3b-4f7a-9c1e-2b5d7e9f0a13",
		CreatedAt: &now,
		Source:    "resume.pdf",
		ATSScore:  72.5,
		ATSLabel:  "Good Match",
		ATSBreakdown: types.ScoreBreakdown{
			KeywordMatch:     types.ComponentScore{Score: 60, Weight: 40},
			SkillCoverage:    types.ComponentScore{Score: 75, Weight: 30},
			SectionStructure: types.ComponentScore{Score: 100, Weight: 15},
			Achievements:     types.ComponentScore{Score: 70, Weight: 15},
		},
		MatchedKeywords:   []string{"Python"},
		MissingKeywords:   []string{"Terraform"},
		MatchedSkills:     []string{"Python"},
		MissingSkills:     []string{"Terraform"},
		ExtraSkills:       []string{},
		SkillMatchPercent: 50,
		TotalJobSkills:    2,
		TotalMatched:      1,
		TotalMissing:      1,
		WordCount:         420,
		Semantic: &types.MatchResult{
			Score:                 81.2,
			Label:                 "Good Match",
			MostRelevantSections:  []types.ChunkScore{{Text: "Python services", Score: 84}},
			LeastRelevantSections: []types.ChunkScore{{Text: "Hobbies", Score: 12}},
			AllChunks:             []types.ChunkScore{{Text: "Python services", Score: 84}, {Text: "Hobbies", Score: 12}},
		},
	}
}

func TestAnalysisReport_ValidatesMarshaledReport(t *testing.T) {
	schema, err := os.ReadFile(reportSchema)
	require.NoError(t, err)

	doc, err := json.Marshal(sampleReport())
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateBytes(reportSchema, schema, doc))

	lexical := sampleReport()
	lexical.ID, lexical.CreatedAt, lexical.Semantic = "", nil, nil
	doc, err = json.Marshal(lexical)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateBytes(reportSchema, schema, doc))
}

func TestAnalysisReport_RejectsInvalid(t *testing.T) {
	schema, err := os.ReadFile(reportSchema)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(m map[string]any)
		field  string
	}{
		{"score above 100", func(m map[string]any) { m["ats_score"] = 120.0 }, "ats_score"},
		{"unknown label", func(m map[string]any) { m["ats_label"] = "Great" }, "ats_label"},
		{"missing skills list", func(m map[string]any) { delete(m, "missing_skills") }, "(root)"},
		{"unexpected field", func(m map[string]any) { m["bullets"] = []string{} }, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(sampleReport())
			require.NoError(t, err)
			var m map[string]any
			require.NoError(t, json.Unmarshal(raw, &m))
			tt.mutate(m)

			err = schemas.ValidateGo(reportSchema, schema, m)
			require.Error(t, err)

			var vErr *schemas.ValidationError
			require.ErrorAs(t, err, &vErr)
			fields := make([]string, 0, len(vErr.Errors))
			for _, e := range vErr.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateJSON_ReportFile(t *testing.T) {
	doc, err := json.MarshalIndent(sampleReport(), "", "  ")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, doc, 0644))

	assert.NoError(t, schemas.ValidateJSON(reportSchema, path))

	err = schemas.ValidateJSON(reportSchema, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}
