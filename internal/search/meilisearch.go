package search

import (
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"property-marketplace/internal/models"
)

const (
	defaultIndex = "listings"
	batchSize    = 500
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  defaultIndex,
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && !strings.Contains(err.Error(), "index_already_exists") {
		return fmt.Errorf("failed to create index %s: %w", s.index, err)
	}

	index := s.client.Index(s.index)

	if _, err := index.UpdateSearchableAttributes(&searchableAttributes); err != nil {
		return fmt.Errorf("failed to update searchable attributes: %w", err)
	}

	filterable := filterableAttributes()
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		return fmt.Errorf("failed to update filterable attributes: %w", err)
	}

	if _, err := index.UpdateSortableAttributes(&sortableAttributes); err != nil {
		return fmt.Errorf("failed to update sortable attributes: %w", err)
	}

	return nil
}

// IndexListing indexes a single listing
func (s *SearchClient) IndexListing(p models.Property) error {
	return s.IndexListings([]models.Property{p})
}

// IndexListings indexes listings in batches
func (s *SearchClient) IndexListings(listings []models.Property) error {
	if len(listings) == 0 {
		return nil
	}
	for start := 0; start < len(listings); start += batchSize {
		end := start + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		docs := make([]map[string]any, 0, end-start)
		for _, p := range listings[start:end] {
			docs = append(docs, Document(p))
		}
		if _, err := s.client.Index(s.index).AddDocuments(docs, "id"); err != nil {
			return fmt.Errorf("failed to index listings %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// DeleteListing removes one listing from the index
func (s *SearchClient) DeleteListing(id string) error {
	if _, err := s.client.Index(s.index).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to remove listing %s from index: %w", id, err)
	}
	return nil
}

// ReplaceAll drops every indexed document and indexes listings
func (s *SearchClient) ReplaceAll(listings []models.Property) error {
	if _, err := s.client.Index(s.index).DeleteAllDocuments(); err != nil {
		return fmt.Errorf("failed to clear index %s: %w", s.index, err)
	}
	return s.IndexListings(listings)
}

// GetFacets retrieves facet distribution for specified fields
func (s *SearchClient) GetFacets(facets []string) (map[string]interface{}, error) {
	if len(facets) == 0 {
		facets = DefaultFacets
	}
	searchRes, err := s.client.Index(s.index).Search("", &meilisearch.SearchRequest{
		Limit:  0,
		Facets: facets,
	})
	if err != nil {
		return nil, err
	}

	if searchRes.FacetDistribution != nil {
		if facetMap, ok := searchRes.FacetDistribution.(map[string]interface{}); ok {
			return facetMap, nil
		}
	}
	return map[string]interface{}{}, nil
}
