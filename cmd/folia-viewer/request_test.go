package main

import (
	"testing"

	"github.com/ritzau/folia-viewer/pkg/model"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRequestFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addRequestFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestRequestFromFlags(t *testing.T) {
	t.Run("general", func(t *testing.T) {
		req := requestFromFlags(parseRequestFlags(t, "--projects", "p1,p2", "--relationships", "work_created_by"))

		assert.Equal(t, model.GraphGeneral, req.GraphType)
		assert.Equal(t, []string{"p1", "p2"}, req.Projects)
		require.NotNil(t, req.GeneralFilters)
		assert.Equal(t, []string{"work", "person"}, req.GeneralFilters.EntityTypes)
		assert.Nil(t, req.MentionsFilters)
		assert.NoError(t, req.Validate())
	})

	t.Run("mentions", func(t *testing.T) {
		req := requestFromFlags(parseRequestFlags(t, "--projects", "p1", "--graph-type", "mentions"))

		require.NotNil(t, req.MentionsFilters)
		assert.Equal(t, []string{"Mentioning", "Mentioned by"}, req.MentionsFilters.MentionDirections)
		assert.Nil(t, req.GeneralFilters)
		assert.NoError(t, req.Validate())
	})

	t.Run("person", func(t *testing.T) {
		req := requestFromFlags(parseRequestFlags(t,
			"--graph-type", "person_authorship_ownership",
			"--person-names", "Ada",
			"--relationships", "owns"))

		require.NotNil(t, req.PersonAuthorshipOwnershipFilters)
		assert.Equal(t, []string{"Ada"}, req.PersonAuthorshipOwnershipFilters.PersonNames)
	})

	t.Run("unknown type", func(t *testing.T) {
		req := requestFromFlags(parseRequestFlags(t, "--graph-type", "timeline"))

		assert.Nil(t, req.GeneralFilters)
		assert.Error(t, req.Validate())
	})
}
