package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ritzau/folia-viewer/pkg/model"
)

// FileProvider serves a recorded provider response from a JSON file. The
// file is re-read on every fetch so edits show up on the next load.
type FileProvider struct {
	path string
}

// NewFileProvider returns a provider reading path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Path returns the backing file.
func (p *FileProvider) Path() string {
	return p.path
}

// Fetch implements Provider. The request is not interpreted: the file holds
// the answer to whatever was asked when it was recorded.
func (p *FileProvider) Fetch(ctx context.Context, _ Request) (*model.GraphData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	var data model.GraphData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse graph file %s: %w", p.path, err)
	}
	return &data, nil
}
