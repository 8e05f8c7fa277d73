package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCatalogItemValidation(t *testing.T) {
	errs := CreateCatalogItemRequest{Title: "", Description: strings.Repeat("x", 1026)}.Validate()

	title := errs.For("title")
	require.Len(t, title, 1)
	assert.Equal(t, RuleRequiredField, title[0].Rule)
	assert.Equal(t, "We need a title", title[0].Message)

	description := errs.For("description")
	require.Len(t, description, 1)
	assert.Equal(t, RuleTooLong, description[0].Rule)
}

func TestCreateCatalogItemValidationBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		req         CreateCatalogItemRequest
		wantInvalid []string
	}{
		{name: "minimal", req: CreateCatalogItemRequest{Title: "x"}},
		{name: "description at limit", req: CreateCatalogItemRequest{Title: "x", Description: strings.Repeat("d", 1024)}},
		{name: "multibyte at limit", req: CreateCatalogItemRequest{Title: "x", Description: strings.Repeat("é", 1024)}},
		{name: "description over limit", req: CreateCatalogItemRequest{Title: "x", Description: strings.Repeat("d", 1025)}, wantInvalid: []string{"description"}},
		{name: "missing title", req: CreateCatalogItemRequest{Description: "ok"}, wantInvalid: []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			if len(tt.wantInvalid) == 0 {
				assert.Empty(t, fields)
				return
			}
			assert.Equal(t, tt.wantInvalid, fields)
		})
	}
}

func TestFieldErrorsToMap(t *testing.T) {
	errs := CreateCatalogItemRequest{}.Validate()
	assert.Equal(t, map[string][]string{"title": {"We need a title"}}, errs.ToMap())
}

func TestCreateIssueValidation(t *testing.T) {
	assert.Empty(t, CreateIssueRequest{Description: "it crashes"}.Validate())
	assert.Empty(t, CreateIssueRequest{}.Validate())
	assert.Len(t, CreateIssueRequest{Description: strings.Repeat("x", 2000)}.Validate(), 1)
}
