package model

// EntityType is the catalog class of a node (e.g. "work", "manifestation").
// Unknown values are kept verbatim.
type EntityType string

const (
	EntityPerson              EntityType = "person"
	EntityWork                EntityType = "work"
	EntityExpression          EntityType = "expression"
	EntityManifestation       EntityType = "manifestation"
	EntityManifestationVolume EntityType = "manifestation_volume"
	EntityItem                EntityType = "item"
	EntityPageSummary         EntityType = "page_summary"
	EntityPage                EntityType = "page"
	EntityInstitution         EntityType = "institution"
	EntityPhysicalObject      EntityType = "physical_object"
	EntityVisualObject        EntityType = "visual_object"
	EntityEvent               EntityType = "event"
	EntityAbstractCharacter   EntityType = "abstract_character"
	EntityPlace               EntityType = "place"
	EntityHypothesis          EntityType = "hypothesis"
)

// Direction tells which way a relation record was emitted by the provider.
// Each relation usually arrives twice, once per direction.
type Direction string

const (
	DirectionOutgoing   Direction = "outgoing"
	DirectionIncoming   Direction = "incoming"
	DirectionTransitive Direction = "transitive"
)

// GraphType selects the provider's graph projection.
type GraphType string

const (
	GraphGeneral                   GraphType = "general"
	GraphMentions                  GraphType = "mentions"
	GraphPersonAuthorshipOwnership GraphType = "person_authorship_ownership"
)

// Node is an entity as returned by the graph data provider.
type Node struct {
	ID         string     `json:"id"`
	Label      string     `json:"label,omitempty"`
	Title      string     `json:"title,omitempty"`
	EntityType EntityType `json:"entity_type"`
	Projects   []string   `json:"projects,omitempty"`
}

// Edge is a typed, directed relation record as returned by the provider.
type Edge struct {
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Type      string    `json:"type"`
	Direction Direction `json:"direction"`
}

// GraphData is the provider response: the raw node and edge lists.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// IsEmpty reports whether the response holds no nodes.
func (d *GraphData) IsEmpty() bool {
	return d == nil || len(d.Nodes) == 0
}
