package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for entry documents.
//
// Content gets full English-language analysis with term vectors so hits can
// be highlighted. Day keys use the keyword analyzer for exact filtering, and
// the numeric fields support range queries and recency sorting.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = en.AnalyzerName
	contentFieldMapping.Store = true
	contentFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("content", contentFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	dayFieldMapping := bleve.NewTextFieldMapping()
	dayFieldMapping.Analyzer = keyword.Name
	dayFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("day", dayFieldMapping)

	cryingFieldMapping := bleve.NewBooleanFieldMapping()
	cryingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("was_crying", cryingFieldMapping)

	intensityFieldMapping := bleve.NewNumericFieldMapping()
	intensityFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("intensity", intensityFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
