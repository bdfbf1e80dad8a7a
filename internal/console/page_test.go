package console

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/rbac-console/internal/shared"
	"github.com/odyssey-erp/rbac-console/internal/table"
	"github.com/odyssey-erp/rbac-console/internal/view"
)

func TestTablePageRendersEverySection(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	data := pageData{
		Title:      "Roles",
		Singular:   "Role",
		Base:       "/roles",
		CSRFToken:  "tok",
		Headers:    []header{{Key: "name", Label: "Name", Href: "/roles?sort=name", Active: true}},
		Rows:       []row{{ID: "r1", Cells: []string{"Auditor"}}},
		Colspan:    2,
		Pagination: shared.NewPagination(0, 10, 1),
		Form: &formData{Inputs: []table.InputState{
			{Field: table.Field{Name: "name", Label: "Name", Required: true}, Error: "Name is required"},
			{Field: table.Field{Name: "tags", Label: "Tags", Input: table.InputMultiSelect}, Choices: []table.Choice{{Value: "a", Selected: true}}},
		}},
		Confirm: &confirmData{ID: "r1", Label: "Auditor"},
	}

	rr := httptest.NewRecorder()
	require.NoError(t, engine.RenderStatus(rr, http.StatusOK, pageTemplate, view.TemplateData{Title: "Roles", CurrentPath: "/roles", Data: data}))

	body := rr.Body.String()
	assert.Contains(t, body, "<td>Auditor</td>")
	assert.Contains(t, body, `action="/roles/r1/delete"`)
	assert.Contains(t, body, "Page 1 of 1 · 1 total")
	assert.Contains(t, body, "Name is required")
	assert.Contains(t, body, `<option value="a" selected>a</option>`)
	assert.Contains(t, body, "Confirm Action")
	assert.Contains(t, body, "<strong>Auditor</strong>")
	assert.Contains(t, body, "</html>")
}

func TestTablePageRendersEmptyState(t *testing.T) {
	engine, err := view.NewEngine()
	require.NoError(t, err)

	data := pageData{Title: "Users", Base: "/users", Colspan: 4, Pagination: shared.NewPagination(0, 10, 0)}
	rr := httptest.NewRecorder()
	require.NoError(t, engine.RenderStatus(rr, http.StatusOK, pageTemplate, view.TemplateData{Title: "Users", Data: data}))

	body := rr.Body.String()
	assert.Contains(t, body, `colspan="4">No results.`)
	assert.Contains(t, body, "Page 1 of 1 · 0 total")
	assert.NotContains(t, body, "Confirm Action")
}
