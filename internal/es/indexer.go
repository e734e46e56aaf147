package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/pawelapps/ecommerce/internal/models"
)

// ProductIndexer keeps the search index in sync with product mutations.
// Sync is best-effort: callers log failures and carry on.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type Indexer struct {
	Client *elasticsearch.Client
	Index  string
}

func NewIndexer(client *elasticsearch.Client, index string) *Indexer {
	return &Indexer{Client: client, Index: index}
}

func (i *Indexer) IndexProduct(ctx context.Context, p models.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("es: json.Marshal failed: %w", err)
	}

	res, err := i.Client.Index(
		i.Index,
		bytes.NewReader(data),
		i.Client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		i.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: index failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es: index error: %s", res.Status())
	}
	return nil
}

func (i *Indexer) DeleteProduct(ctx context.Context, id uint) error {
	res, err := i.Client.Delete(
		i.Index,
		strconv.FormatUint(uint64(id), 10),
		i.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete failed: %w", err)
	}
	defer res.Body.Close()

	// 404 just means the document was never indexed.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete error: %s", res.Status())
	}
	return nil
}
