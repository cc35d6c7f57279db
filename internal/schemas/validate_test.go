package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantFields []string
	}{
		{name: "empty object", doc: `{}`},
		{
			name: "full document",
			doc: `{"contact":{"name":"Ada","email":"ada@example.com"},
				"experience":[{"title":"Engineer","dates":"2020 - Present","description":"- Built things"}],
				"skills":["Go"],"metadata":{"wordCount":420,"hasTables":false}}`,
		},
		{name: "null sections", doc: `{"contact":null,"experience":null,"skills":null}`},
		{name: "skills not array", doc: `{"skills":"Go, Rust"}`, wantFields: []string{"skills"}},
		{name: "negative word count", doc: `{"metadata":{"wordCount":-3}}`, wantFields: []string{"metadata.wordCount"}},
		{name: "experience item wrong type", doc: `{"experience":["Engineer"]}`, wantFields: []string{"experience.0"}},
		{name: "root not object", doc: `[]`, wantFields: []string{"(root)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.doc))
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			fields := make([]string, 0, len(vErr.Errors))
			for _, fe := range vErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidateResume_MalformedJSON(t *testing.T) {
	err := ValidateResume([]byte(`{"skills": [`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "invalid JSON")
}

func TestDecodeResume(t *testing.T) {
	resume, err := DecodeResume([]byte(`{"skills":["Go","SQL"],"contact":{"email":"a@b.co"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, resume.Skills)
	assert.Equal(t, "a@b.co", resume.Contact.Email)

	_, err = DecodeResume([]byte(`{"skills":42}`))
	assert.Error(t, err)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))

	err := ValidateJSONString(schema, `{}`)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Errors, 1)
	assert.Equal(t, "(root)", vErr.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
