package main

import (
	"github.com/ritzau/folia-viewer/pkg/layout"
	"github.com/ritzau/folia-viewer/pkg/model"
	"github.com/ritzau/folia-viewer/pkg/provider"
	"github.com/spf13/pflag"
)

// addProviderFlags registers the flags selecting where graphs come from.
func addProviderFlags(fs *pflag.FlagSet) {
	fs.String("provider-url", "", "Base URL of the catalog graph API")
	fs.String("provider-file", "", "Read graphs from a recorded JSON response instead")
	fs.Uint64("seed", 0, "Layout random seed (0 picks a random one)")
	fs.Int("iterations", layout.DefaultConfig().Iterations, "Solver iterations per component")
}

// addRequestFlags registers the graph search flags.
func addRequestFlags(fs *pflag.FlagSet) {
	fs.StringSlice("projects", nil, "Projects to search")
	fs.String("graph-type", string(model.GraphGeneral), "Graph type: general, mentions, person_authorship_ownership")
	fs.StringSlice("entity-types", []string{string(model.EntityWork), string(model.EntityPerson)}, "Entity types to include")
	fs.StringSlice("relationships", nil, "Relationships to include (general and person graphs)")
	fs.StringSlice("mention-directions", []string{provider.MentionDirectionMentioning, provider.MentionDirectionMentionedBy}, "Mention directions (mentions graph)")
	fs.StringSlice("person-names", nil, "Person names (person graph)")
}

// requestFromFlags builds a search with the filter block matching the
// selected graph type. Validation is left to the viewer.
func requestFromFlags(fs *pflag.FlagSet) provider.Request {
	projects, _ := fs.GetStringSlice("projects")
	graphType, _ := fs.GetString("graph-type")
	entityTypes, _ := fs.GetStringSlice("entity-types")
	relationships, _ := fs.GetStringSlice("relationships")

	req := provider.Request{
		Projects:  projects,
		GraphType: model.GraphType(graphType),
	}

	switch req.GraphType {
	case model.GraphGeneral:
		req.GeneralFilters = &provider.GeneralFilter{
			EntityTypes:   entityTypes,
			Relationships: relationships,
		}
	case model.GraphMentions:
		directions, _ := fs.GetStringSlice("mention-directions")
		req.MentionsFilters = &provider.MentionsFilter{
			EntityTypes:       entityTypes,
			MentionDirections: directions,
		}
	case model.GraphPersonAuthorshipOwnership:
		names, _ := fs.GetStringSlice("person-names")
		req.PersonAuthorshipOwnershipFilters = &provider.PersonAuthorshipOwnershipFilter{
			PersonNames:   names,
			EntityTypes:   entityTypes,
			Relationships: relationships,
		}
	}
	return req
}
