package endpoint_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z]+)\}`)

func TestTable(t *testing.T) {
	t.Parallel()

	all := endpoint.All()
	require.Len(t, all, 21)

	seen := make(map[string]bool)

	for index, descriptor := range all {
		t.Run(descriptor.Name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, endpoint.ID(index), descriptor.ID)
			assert.Equal(t, descriptor.Name, descriptor.ID.String())
			assert.Same(t, descriptor, endpoint.Lookup(descriptor.ID))

			byName, ok := endpoint.ByName(descriptor.Name)
			require.True(t, ok)
			assert.Same(t, descriptor, byName)

			assert.Contains(t, []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}, descriptor.Method)
			assert.Regexp(t, `^v1/apps`, descriptor.Template)
			assert.NotEqual(t, appengine.SchemaNone, descriptor.ResponseSchema)
			assert.NotNil(t, endpoint.NewValue(descriptor.ResponseSchema))

			var placeholders []string
			for _, match := range placeholderPattern.FindAllStringSubmatch(descriptor.Template, -1) {
				placeholders = append(placeholders, match[1])
			}

			assert.Equal(t, placeholders, descriptor.PathParams, "path params must follow template order")

			if descriptor.Method == http.MethodGet || descriptor.Method == http.MethodDelete {
				assert.Equal(t, appengine.SchemaNone, descriptor.RequestSchema)
			} else {
				assert.NotEqual(t, appengine.SchemaNone, descriptor.RequestSchema)
			}
		})

		assert.False(t, seen[descriptor.Name], "duplicate name %s", descriptor.Name)
		seen[descriptor.Name] = true
	}
}

func TestLookup_OutOfRange(t *testing.T) {
	t.Parallel()

	assert.Nil(t, endpoint.Lookup(endpoint.ID(-1)))
	assert.Nil(t, endpoint.Lookup(endpoint.ID(1000)))
	assert.Equal(t, "unknown", endpoint.ID(1000).String())

	_, ok := endpoint.ByName("apps.delete")
	assert.False(t, ok)
}

func TestDescriptor_Accepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       endpoint.ID
		accepted []string
		rejected []string
	}{
		{
			id:       endpoint.AppsGet,
			accepted: []string{"fields", "quotaUser", "key"},
			rejected: []string{"pageToken", "updateMask", "view"},
		},
		{
			id:       endpoint.AppsPatch,
			accepted: []string{"updateMask"},
			rejected: []string{"migrateTraffic"},
		},
		{
			id:       endpoint.ServicesPatch,
			accepted: []string{"updateMask", "migrateTraffic"},
			rejected: []string{"view"},
		},
		{
			id:       endpoint.OperationsList,
			accepted: []string{"pageToken", "pageSize", "filter"},
			rejected: []string{"view"},
		},
		{
			id:       endpoint.ServicesList,
			accepted: []string{"pageToken", "pageSize"},
			rejected: []string{"filter"},
		},
		{
			id:       endpoint.VersionsList,
			accepted: []string{"pageToken", "pageSize", "view"},
			rejected: []string{"filter", "updateMask"},
		},
		{
			id:       endpoint.VersionsGet,
			accepted: []string{"view"},
			rejected: []string{"pageToken"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.id.String(), func(t *testing.T) {
			t.Parallel()

			descriptor := endpoint.Lookup(testCase.id)
			for _, name := range testCase.accepted {
				assert.True(t, descriptor.Accepts(name), name)
			}

			for _, name := range testCase.rejected {
				assert.False(t, descriptor.Accepts(name), name)
			}
		})
	}
}
